// Package models defines the core domain models for the call-automation workflow graph.
package models

import (
	"errors"
	"time"
)

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft  WorkflowStatus = "draft"  // Editable, not running
	WorkflowStatusActive WorkflowStatus = "active" // Live, receiving trigger events
	WorkflowStatusPaused WorkflowStatus = "paused" // Live but suspended
)

// ErrNoTriggerNode is returned when a workflow is activated without exactly
// one trigger node.
var ErrNoTriggerNode = errors.New("workflow must have exactly one trigger node")

// Workflow is the top-level aggregate: a node/edge graph owned by an account,
// optionally bound to the calling agent that runs it.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"                   validate:"required,min=3"`
	Status      WorkflowStatus `json:"status"                 validate:"required"`
	AccountID   string         `json:"account_id"`
	UserID      *string        `json:"user_id,omitempty"`
	AssistantID *string        `json:"assistant_id,omitempty"`
	Nodes       []*Node        `json:"nodes"`
	Edges       []*Edge        `json:"edges"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
}

// Node returns the node with the given id, or nil.
func (w *Workflow) Node(id string) *Node {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}

// TriggerNodes returns all trigger nodes in the graph. A well-formed workflow
// has exactly one, but drafts are allowed to be temporarily inconsistent.
func (w *Workflow) TriggerNodes() []*Node {
	triggers := make([]*Node, 0, 1)

	for _, n := range w.Nodes {
		if n.Type == NodeTypeTrigger {
			triggers = append(triggers, n)
		}
	}

	return triggers
}

// ValidateForActivation checks the loose graph invariants that must hold
// before a workflow leaves draft status. Drafts are never validated this way.
func (w *Workflow) ValidateForActivation() error {
	if len(w.TriggerNodes()) != 1 {
		return ErrNoTriggerNode
	}

	return nil
}
