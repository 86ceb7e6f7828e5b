// Package catalog provides the browsable catalog of integrations and actions
// the composer palette offers, and builds node records from selections.
package catalog

// Context selects which half of the catalog is browsed: entries that can
// start a workflow, or entries that run as steps.
type Context string

const (
	ContextTrigger Context = "trigger"
	ContextAction  Context = "action"
)

// Entry is a selectable leaf in the catalog: one action (or trigger event) of
// an integration.
type Entry struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}

// Integration groups the entries of one provider.
type Integration struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Entries     []Entry `json:"entries"`
}

// Category is the top browse level.
type Category struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Integrations []Integration `json:"integrations"`
}

// triggerCatalog lists everything that can start a workflow.
var triggerCatalog = []Category{
	{
		ID:    "events",
		Label: "Events",
		Integrations: []Integration{
			{
				ID:   "calls",
				Name: "Calls",
				Entries: []Entry{
					{ID: "call_ended", Label: "Call Ended", Description: "Fires when the calling agent finishes a call"},
					{ID: "appointment_booked", Label: "Appointment Booked", Description: "Fires when a call books an appointment"},
				},
			},
			{
				ID:          "facebook",
				Name:        "Facebook",
				Description: "Meta lead ads",
				Entries: []Entry{
					{ID: "facebook_leads", Label: "New Lead", Description: "Fires when a lead form is submitted"},
				},
			},
			{
				ID:   "hubspot",
				Name: "HubSpot",
				Entries: []Entry{
					{ID: "hubspot", Label: "Contact Created", Description: "Fires when a HubSpot contact is created"},
				},
			},
			{
				ID:   "webhook",
				Name: "Webhook",
				Entries: []Entry{
					{ID: "webhook", Label: "Incoming Webhook", Description: "Fires on a POST to the workflow's webhook URL"},
				},
			},
			{
				ID:   "schedule",
				Name: "Schedule",
				Entries: []Entry{
					{
						ID:          "schedule",
						Label:       "Schedule",
						Description: "Fires on a cron schedule",
						Schema: map[string]any{
							"type":     "object",
							"required": []any{"cron_expression"},
							"properties": map[string]any{
								"cron_expression": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

// actionCatalog lists every runnable step.
var actionCatalog = []Category{
	{
		ID:    "communication",
		Label: "Communication",
		Integrations: []Integration{
			{
				ID:          "twilio",
				Name:        "Twilio",
				Description: "SMS messaging",
				Entries: []Entry{
					{
						ID:          "send_sms",
						Label:       "Send SMS",
						Description: "Send a text message to the contact",
						Schema: map[string]any{
							"type":     "object",
							"required": []any{"message"},
							"properties": map[string]any{
								"message":   map[string]any{"type": "string"},
								"to_number": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
			{
				ID:          "call_lead",
				Name:        "Call Lead",
				Description: "Place an outbound call with a calling agent",
				Entries: []Entry{
					{ID: "call_lead", Label: "Call Lead", Description: "Dial the contact with the selected assistant"},
				},
			},
			{
				ID:   "slack",
				Name: "Slack",
				Entries: []Entry{
					{ID: "post_message", Label: "Post Message", Description: "Post a message to a Slack channel"},
				},
			},
		},
	},
	{
		ID:    "crm",
		Label: "CRM",
		Integrations: []Integration{
			{
				ID:   "hubspot",
				Name: "HubSpot",
				Entries: []Entry{
					{ID: "create_contact", Label: "Create Contact", Description: "Create or update a HubSpot contact"},
					{ID: "update_deal", Label: "Update Deal", Description: "Move a deal through the pipeline"},
				},
			},
		},
	},
	{
		ID:    "developer",
		Label: "Developer",
		Integrations: []Integration{
			{
				ID:          "webhook",
				Name:        "Webhook",
				Description: "Call any HTTP endpoint",
				Entries: []Entry{
					{ID: "post_webhook", Label: "Send Webhook", Description: "POST the run payload to a URL"},
					{ID: "get_request", Label: "Fetch URL", Description: "GET a URL and expose the response"},
				},
			},
		},
	},
	{
		ID:    "logic",
		Label: "Logic",
		Integrations: []Integration{
			{
				ID:   "builtin",
				Name: "Built-in",
				Entries: []Entry{
					{ID: "condition", Label: "Condition", Description: "Continue only when comparisons pass"},
					{ID: "router", Label: "Router", Description: "Fork into labeled conditional branches"},
					{ID: "wait", Label: "Wait", Description: "Pause before the next step"},
				},
			},
		},
	},
}

// Browse returns the full catalog for the given context.
func Browse(ctx Context) []Category {
	if ctx == ContextTrigger {
		return triggerCatalog
	}

	return actionCatalog
}

// Find locates an integration and entry by id within a context.
func Find(ctx Context, integrationID, entryID string) (*Integration, *Entry, bool) {
	for _, category := range Browse(ctx) {
		for i := range category.Integrations {
			integration := &category.Integrations[i]
			if integration.ID != integrationID {
				continue
			}

			for j := range integration.Entries {
				if integration.Entries[j].ID == entryID {
					return integration, &integration.Entries[j], true
				}
			}
		}
	}

	return nil, nil, false
}
