package catalog

import "strings"

// Search filters the catalog by a case-insensitive substring match against
// integration and entry label+description. An integration is kept when it
// matches itself or when any of its entries match; matching integrations keep
// all their entries, otherwise only the matching entries survive. Empty
// queries return the full catalog.
func Search(ctx Context, query string) []Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return Browse(ctx)
	}

	result := make([]Category, 0)

	for _, category := range Browse(ctx) {
		filtered := Category{ID: category.ID, Label: category.Label}

		for _, integration := range category.Integrations {
			if matches(query, integration.Name, integration.Description) {
				filtered.Integrations = append(filtered.Integrations, integration)

				continue
			}

			kept := Integration{
				ID:          integration.ID,
				Name:        integration.Name,
				Description: integration.Description,
			}

			for _, entry := range integration.Entries {
				if matches(query, entry.Label, entry.Description) {
					kept.Entries = append(kept.Entries, entry)
				}
			}

			if len(kept.Entries) > 0 {
				filtered.Integrations = append(filtered.Integrations, kept)
			}
		}

		if len(filtered.Integrations) > 0 {
			result = append(result, filtered)
		}
	}

	return result
}

func matches(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}
