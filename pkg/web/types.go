// Package web provides the HTTP handlers and REST endpoints of the
// workflow builder API.
package web

import (
	"encoding/json"

	"github.com/voxflow/voxflow/pkg/models"
)

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	Name        string  `json:"name"                   validate:"required,min=3"`
	AssistantID *string `json:"assistant_id,omitempty"`
}

// UpdateWorkflowRequest represents the request body for renaming a workflow
// or rebinding its assistant. Nil fields are left untouched.
type UpdateWorkflowRequest struct {
	Name        *string `json:"name,omitempty"         validate:"omitempty,min=3"`
	AssistantID *string `json:"assistant_id,omitempty"`
}

// SaveGraphRequest carries the whole node/edge document. The save replaces
// the stored graph wholesale.
type SaveGraphRequest struct {
	Nodes []*models.Node `json:"nodes"`
	Edges []*models.Edge `json:"edges"`
}

// SetStatusRequest moves a workflow between draft, active, and paused.
type SetStatusRequest struct {
	Status models.WorkflowStatus `json:"status" validate:"required,oneof=draft active paused"`
}

// CreateNodeRequest adds a catalog entry to the graph, optionally wiring an
// edge from an existing node.
type CreateNodeRequest struct {
	Context       string `json:"context"        validate:"required,oneof=trigger action"`
	IntegrationID string `json:"integration_id" validate:"required"`
	EntryID       string `json:"entry_id"       validate:"required"`
	SourceNodeID  string `json:"source_node_id,omitempty"`
	SourceHandle  string `json:"source_handle,omitempty"`
}

// UpdateNodeRequest is a partial patch of one node's configuration. The
// payload is applied onto the node's existing typed data; omitted fields
// keep their values.
type UpdateNodeRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

// CreateEdgeRequest connects two existing nodes.
type CreateEdgeRequest struct {
	Source          string `json:"source"        validate:"required"`
	Target          string `json:"target"        validate:"required"`
	SourceHandle    string `json:"source_handle,omitempty"`
	Condition       string `json:"condition,omitempty"`
	CustomCondition string `json:"custom_condition,omitempty"`
}

// ValidateConfigRequest checks a node config payload against the catalog
// entry's schema without saving anything.
type ValidateConfigRequest struct {
	Context       string         `json:"context"        validate:"required,oneof=trigger action"`
	IntegrationID string         `json:"integration_id" validate:"required"`
	EntryID       string         `json:"entry_id"       validate:"required"`
	Config        map[string]any `json:"config"`
}

// UpdateSettingsRequest carries whitelabel branding changes.
type UpdateSettingsRequest struct {
	BrandName    *string `json:"brand_name,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
	SupportEmail *string `json:"support_email,omitempty" validate:"omitempty,email"`
	CustomDomain *string `json:"custom_domain,omitempty"`
}

// ActivateSettingsRequest flips the whitelabel published flag.
type ActivateSettingsRequest struct {
	Active bool `json:"active"`
}

// TestLeadRequest asks Facebook to emit a synthetic lead for one form.
type TestLeadRequest struct {
	PageID string `json:"page_id" validate:"required"`
	FormID string `json:"form_id" validate:"required"`
}
