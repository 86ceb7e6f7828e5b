package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidConfig wraps all entry-config validation failures.
var ErrInvalidConfig = errors.New("invalid node config")

// ValidateConfig checks a node config payload against the catalog entry's
// JSON schema, when the entry declares one. Schedule triggers additionally
// get their cron expression parsed.
func ValidateConfig(ctx Context, integrationID, entryID string, config map[string]any) error {
	_, entry, ok := Find(ctx, integrationID, entryID)
	if !ok {
		return fmt.Errorf("%s/%s in %s context: %w", integrationID, entryID, ctx, ErrEntryNotFound)
	}

	if entry.Schema != nil {
		result, err := gojsonschema.Validate(
			gojsonschema.NewGoLoader(entry.Schema),
			gojsonschema.NewGoLoader(config),
		)
		if err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}

		if !result.Valid() {
			details := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				details = append(details, desc.String())
			}

			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(details, "; "))
		}
	}

	if entry.ID == "schedule" {
		expr, _ := config["cron_expression"].(string)

		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%w: bad cron expression %q: %w", ErrInvalidConfig, expr, err)
		}
	}

	return nil
}
