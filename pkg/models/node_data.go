package models

// NodeData is the typed payload of a node. Each node kind has exactly one
// concrete implementation; the composer and config panels switch on the
// concrete type rather than reading fields out of an untyped bag.
type NodeData interface {
	Kind() NodeType
	Label() string
}

// CoreVariable is one entry in a trigger's editable mapping of built-in
// output variables. Hidden entries stay in the list so they can be restored.
type CoreVariable struct {
	Key    string `json:"key"`
	Label  string `json:"label,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// TriggerData configures the workflow entry point: the trigger type plus any
// per-trigger extras (Facebook lead page/form, cron schedule) and the
// variable surface the run exposes downstream.
type TriggerData struct {
	NodeLabel         string         `json:"label,omitempty"`
	TriggerType       string         `json:"trigger_type,omitempty"`
	Integration       string         `json:"integration,omitempty"`
	PageID            string         `json:"page_id,omitempty"`
	FormID            string         `json:"form_id,omitempty"`
	CronExpression    string         `json:"cron_expression,omitempty"`
	CoreVariables     []CoreVariable `json:"core_variables,omitempty"`
	ExpectedVariables []string       `json:"expected_variables,omitempty"`
}

func (d *TriggerData) Kind() NodeType { return NodeTypeTrigger }
func (d *TriggerData) Label() string  { return d.NodeLabel }

// ActionData configures a generic integration action, including the webhook
// fields (URL + HTTP method) used by HTTP-backed actions.
type ActionData struct {
	NodeLabel   string `json:"label,omitempty"`
	Integration string `json:"integration,omitempty"`
	ActionID    string `json:"action_id,omitempty"`
	URL         string `json:"url,omitempty"`
	Method      string `json:"method,omitempty"`
}

func (d *ActionData) Kind() NodeType { return NodeTypeAction }
func (d *ActionData) Label() string  { return d.NodeLabel }

// Combinator joins the rows of a condition node.
type Combinator string

const (
	CombinatorAnd Combinator = "and"
	CombinatorOr  Combinator = "or"
)

// ConditionRow is a single comparison inside a condition node.
type ConditionRow struct {
	Variable string   `json:"variable"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// ConditionData configures a condition node: a flat list of comparisons
// joined by a single AND/OR combinator.
type ConditionData struct {
	NodeLabel  string         `json:"label,omitempty"`
	Combinator Combinator     `json:"combinator,omitempty"`
	Conditions []ConditionRow `json:"conditions,omitempty"`
}

func (d *ConditionData) Kind() NodeType { return NodeTypeCondition }
func (d *ConditionData) Label() string  { return d.NodeLabel }

// Evaluate applies the rows against a variable map using the combinator.
// An empty row list evaluates to true, matching the source's permissive
// fallback behavior.
func (d *ConditionData) Evaluate(vars map[string]string) bool {
	if len(d.Conditions) == 0 {
		return true
	}

	combinator := d.Combinator
	if combinator == "" {
		combinator = CombinatorAnd
	}

	for _, row := range d.Conditions {
		matched := row.Operator.Compare(vars[row.Variable], row.Value)

		if combinator == CombinatorOr && matched {
			return true
		}

		if combinator == CombinatorAnd && !matched {
			return false
		}
	}

	return combinator == CombinatorAnd
}

// RouterData configures a router node: labeled conditional branches, each
// with its own downstream edge handle.
type RouterData struct {
	NodeLabel string         `json:"label,omitempty"`
	Branches  []RouterBranch `json:"branches,omitempty"`
}

func (d *RouterData) Kind() NodeType { return NodeTypeRouter }
func (d *RouterData) Label() string  { return d.NodeLabel }

// WaitData configures a wait node: a pause before the next step runs.
type WaitData struct {
	NodeLabel string `json:"label,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Unit      string `json:"unit,omitempty"` // minutes, hours, days
}

func (d *WaitData) Kind() NodeType { return NodeTypeWait }
func (d *WaitData) Label() string  { return d.NodeLabel }

// SMSData configures a Twilio SMS node: message body plus the recipient
// template, which defaults to the {phone_number} variable on creation.
type SMSData struct {
	NodeLabel string `json:"label,omitempty"`
	Message   string `json:"message,omitempty"`
	ToNumber  string `json:"to_number,omitempty"`
}

func (d *SMSData) Kind() NodeType { return NodeTypeTwilioSMS }
func (d *SMSData) Label() string  { return d.NodeLabel }

// CallLeadData configures an outbound call node: which assistant places the
// call and who it dials.
type CallLeadData struct {
	NodeLabel   string `json:"label,omitempty"`
	AssistantID string `json:"assistant_id,omitempty"`
	ToNumber    string `json:"to_number,omitempty"`
	LeadName    string `json:"lead_name,omitempty"`
}

func (d *CallLeadData) Kind() NodeType { return NodeTypeCallLead }
func (d *CallLeadData) Label() string  { return d.NodeLabel }
