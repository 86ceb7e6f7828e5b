package models

// EdgeCondition guards an edge between two nodes.
type EdgeCondition string

const (
	EdgeConditionAlways    EdgeCondition = "always"
	EdgeConditionBooked    EdgeCondition = "booked"
	EdgeConditionNotBooked EdgeCondition = "not_booked"
	EdgeConditionSuccess   EdgeCondition = "success"
	EdgeConditionFailed    EdgeCondition = "failed"
	EdgeConditionCustom    EdgeCondition = "custom"
)

// IsValid reports whether the condition is one of the fixed enum values.
func (c EdgeCondition) IsValid() bool {
	switch c {
	case EdgeConditionAlways, EdgeConditionBooked, EdgeConditionNotBooked,
		EdgeConditionSuccess, EdgeConditionFailed, EdgeConditionCustom:
		return true
	default:
		return false
	}
}

// EdgeData holds the edge guard. CustomCondition is only meaningful when
// Condition is "custom".
type EdgeData struct {
	Condition       EdgeCondition `json:"condition,omitempty"`
	CustomCondition string        `json:"custom_condition,omitempty"`
}

// Edge is a directed connection between two nodes. SourceHandle identifies a
// specific router branch handle ("branch-{index}") when the source is a
// router node; empty otherwise.
type Edge struct {
	ID           string   `json:"id"     validate:"required"`
	Source       string   `json:"source" validate:"required"`
	Target       string   `json:"target" validate:"required"`
	SourceHandle string   `json:"source_handle,omitempty"`
	Data         EdgeData `json:"data"`
}

// Condition returns the edge guard, defaulting to "always" when unset.
func (e *Edge) Condition() EdgeCondition {
	if e.Data.Condition == "" {
		return EdgeConditionAlways
	}

	return e.Data.Condition
}
