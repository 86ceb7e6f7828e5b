package models

import "strings"

// Operator is a string comparison used by condition rows and router branches.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorContains    Operator = "contains"
	OperatorNotContains Operator = "not_contains"
)

// Compare applies the operator to a value and the expected string. Unknown
// operators never match.
func (o Operator) Compare(value, expected string) bool {
	switch o {
	case OperatorEquals:
		return value == expected
	case OperatorNotEquals:
		return value != expected
	case OperatorContains:
		return strings.Contains(value, expected)
	case OperatorNotContains:
		return !strings.Contains(value, expected)
	default:
		return false
	}
}

// BranchCondition is the single comparison guarding a router branch.
type BranchCondition struct {
	Variable string   `json:"variable"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// Evaluate applies the branch condition against a variable map. A branch with
// no variable configured always matches, which is how the catch-all
// "otherwise" branch is expressed.
func (c BranchCondition) Evaluate(vars map[string]string) bool {
	if c.Variable == "" {
		return true
	}

	return c.Operator.Compare(vars[c.Variable], c.Value)
}

// RouterBranch is a labeled conditional path out of a router node.
type RouterBranch struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Condition  BranchCondition `json:"condition"`
	NextNodeID string          `json:"next_node_id,omitempty"`
}

// IsDefault reports whether the branch is the catch-all lane. The match is on
// the literal label, case-insensitive, for parity with the canvas styling.
func (b RouterBranch) IsDefault() bool {
	label := strings.ToLower(strings.TrimSpace(b.Label))

	return label == "otherwise" || label == "default"
}
