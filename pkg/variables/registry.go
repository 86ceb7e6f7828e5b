// Package variables provides the static catalog of interpolation variables
// available to workflow text fields, scoped by the owning trigger's type.
package variables

// Variable is a named placeholder, e.g. {name} or {appointment.status}.
type Variable struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}

// Category groups variables sharing a data source.
type Category struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Variables []Variable `json:"variables"`
}

// Category ids.
const (
	CategoryCallData        = "call_data"
	CategoryAppointmentData = "appointment_data"
	CategoryHubSpotContact  = "hubspot_contact"
	CategoryFacebookLead    = "facebook_lead"
	CategoryCustomVariables = "custom_variables"
)

// catalog is the full fixed set of categories, in display order.
var catalog = []Category{
	{
		ID:    CategoryCallData,
		Label: "Call Data",
		Variables: []Variable{
			{Key: "name", Label: "Contact Name", Example: "Jordan Avery"},
			{Key: "phone_number", Label: "Phone Number", Example: "+15551234567"},
			{Key: "call.status", Label: "Call Status", Description: "Final status reported by the calling agent"},
			{Key: "call.duration", Label: "Call Duration", Example: "02:45"},
			{Key: "call.summary", Label: "Call Summary", Description: "One-line summary of the conversation"},
			{Key: "call.transcript", Label: "Call Transcript"},
		},
	},
	{
		ID:    CategoryAppointmentData,
		Label: "Appointment Data",
		Variables: []Variable{
			{Key: "appointment.status", Label: "Appointment Status", Example: "booked"},
			{Key: "appointment.date", Label: "Appointment Date", Example: "2025-06-12"},
			{Key: "appointment.time", Label: "Appointment Time", Example: "14:30"},
			{Key: "appointment.location", Label: "Appointment Location"},
		},
	},
	{
		ID:    CategoryHubSpotContact,
		Label: "HubSpot Contact",
		Variables: []Variable{
			{Key: "hubspot.email", Label: "Email"},
			{Key: "hubspot.firstname", Label: "First Name"},
			{Key: "hubspot.lastname", Label: "Last Name"},
			{Key: "hubspot.company", Label: "Company"},
			{Key: "hubspot.lifecyclestage", Label: "Lifecycle Stage"},
		},
	},
	{
		ID:    CategoryFacebookLead,
		Label: "Facebook Lead",
		Variables: []Variable{
			{Key: "lead.full_name", Label: "Full Name"},
			{Key: "lead.email", Label: "Email"},
			{Key: "lead.phone_number", Label: "Phone Number"},
			{Key: "lead.campaign_name", Label: "Campaign Name"},
			{Key: "lead.form_name", Label: "Form Name"},
		},
	},
	{
		ID:    CategoryCustomVariables,
		Label: "Custom Variables",
		Variables: []Variable{
			{Key: "custom.source", Label: "Source", Description: "Free-form value supplied by the trigger payload"},
		},
	},
}

// defaultCategoryIDs is the fallback set for unmapped trigger types.
var defaultCategoryIDs = []string{CategoryCallData, CategoryAppointmentData, CategoryCustomVariables}

// triggerCategories maps a trigger type to the category ids it exposes.
var triggerCategories = map[string][]string{
	"facebook_leads": {CategoryFacebookLead, CategoryCustomVariables},
	"hubspot":        {CategoryHubSpotContact, CategoryCustomVariables},
	"call_ended":     {CategoryCallData, CategoryAppointmentData, CategoryCustomVariables},
	"webhook":        {CategoryCustomVariables},
}

// Registry returns the variable categories available to the given trigger
// type, in catalog order. Unknown or empty trigger types get the default set.
func Registry(triggerType string) []Category {
	ids, ok := triggerCategories[triggerType]
	if !ok {
		ids = defaultCategoryIDs
	}

	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}

	categories := make([]Category, 0, len(ids))

	for _, category := range catalog {
		if allowed[category.ID] {
			categories = append(categories, category)
		}
	}

	return categories
}
