// Package persistence provides the data storage abstraction for workflows,
// users, call history, and tenant settings.
package persistence

import (
	"context"

	"github.com/voxflow/voxflow/pkg/models"
)

// Persistence exposes the per-aggregate repositories of one storage backend.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	UserRepository() UserRepository
	CallRepository() CallRepository
	WhitelabelRepository() WhitelabelRepository
	ConnectionRepository() ConnectionRepository
	SupportSessionRepository() SupportSessionRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// ListWorkflowsOptions filters and pages the workflow list.
type ListWorkflowsOptions struct {
	Limit     int
	Offset    int
	AccountID string
	Status    *models.WorkflowStatus
	SortBy    string // created_at, updated_at, name
	SortOrder string // asc, desc
}

// WorkflowListResult is a page of workflows plus paging metadata.
type WorkflowListResult struct {
	Workflows   []*models.Workflow
	TotalCount  int64
	HasNextPage bool
}

// WorkflowRepository stores workflow aggregates. Saves are whole-document
// overwrites of the nodes and edges blobs; last write wins.
type WorkflowRepository interface {
	ListWorkflows(ctx context.Context, opts ListWorkflowsOptions) (*WorkflowListResult, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores platform users and exposes the per-table primitives
// the admin cascade delete is built from. The cascade itself lives in the
// service layer and is deliberately non-transactional.
type UserRepository interface {
	List(ctx context.Context, accountID string) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error

	// RelatedTables lists the auxiliary tables the cascade sweeps, in no
	// particular order.
	RelatedTables() []string

	// DeleteRelatedRows removes a user's rows from one auxiliary table and
	// reports how many were deleted.
	DeleteRelatedRows(ctx context.Context, table, userID string) (int64, error)

	// Delete removes the user row itself. A referential-integrity failure
	// surfaces as ErrUserHasData.
	Delete(ctx context.Context, id string) error
}

// CallRepository reads raw call and SMS history.
type CallRepository interface {
	ListCalls(ctx context.Context, accountID string) ([]models.CallRecord, error)
	ListMessages(ctx context.Context, accountID string) ([]models.SMSRecord, error)
	ListCallsByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.CallRecord, error)
	ListMessagesByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.SMSRecord, error)
}

// WhitelabelRepository stores tenant branding settings.
type WhitelabelRepository interface {
	Get(ctx context.Context, accountID string) (*models.WebsiteSettings, error)
	Save(ctx context.Context, settings *models.WebsiteSettings) error

	// SlugTaken reports whether another account already owns the slug.
	SlugTaken(ctx context.Context, slug, excludeAccountID string) (bool, error)
}

// ConnectionRepository reads stored OAuth connections.
type ConnectionRepository interface {
	List(ctx context.Context, accountID, provider string) ([]*models.Connection, error)
}

// SupportSessionRepository tracks temporary support-access grants.
type SupportSessionRepository interface {
	End(ctx context.Context, id string) error
}
