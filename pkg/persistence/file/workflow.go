package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// WorkflowRepository stores each workflow as one JSON document on disk.
type WorkflowRepository struct {
	root string
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{root: root}
}

func (r *WorkflowRepository) dir() string {
	return path.Join(r.root, "workflows")
}

func (r *WorkflowRepository) filePath(id string) string {
	return path.Join(r.dir(), id+".json")
}

// GetByID loads one workflow document. Soft-deleted workflows are invisible.
func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	raw, err := os.ReadFile(r.filePath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to read workflow %s: %w", id, err)
	}

	var workflow models.Workflow

	if err := json.Unmarshal(raw, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", id, err)
	}

	if workflow.DeletedAt != nil {
		return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
	}

	return &workflow, nil
}

// Save writes the whole aggregate back to disk. Last write wins.
func (r *WorkflowRepository) Save(_ context.Context, workflow *models.Workflow) error {
	now := time.Now().UTC()

	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	if workflow.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate workflow ID: %w", err)
		}

		workflow.ID = id.String()
	}

	if err := os.MkdirAll(r.dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create workflows directory: %w", err)
	}

	raw, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workflow %s: %w", workflow.ID, err)
	}

	if err := os.WriteFile(r.filePath(workflow.ID), raw, 0o644); err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

// Delete soft-deletes a workflow by stamping deleted_at in the document.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	workflow, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	workflow.DeletedAt = &now

	raw, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workflow %s: %w", id, err)
	}

	if err := os.WriteFile(r.filePath(id), raw, 0o644); err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	return nil
}

// ListWorkflows pages and filters in memory over all documents on disk.
func (r *WorkflowRepository) ListWorkflows(ctx context.Context, opts persistence.ListWorkflowsOptions) (*persistence.WorkflowListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	switch opts.SortBy {
	case "created_at", "updated_at", "name":
	default:
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	pattern := filepath.Join(r.dir(), "*.json")

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow files: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(files))

	for _, file := range files {
		id := filepath.Base(file)
		id = id[:len(id)-len(".json")]

		workflow, err := r.GetByID(ctx, id)
		if err != nil {
			if persistence.IsWorkflowNotFound(err) {
				continue // soft-deleted
			}

			return nil, err
		}

		if opts.AccountID != "" && workflow.AccountID != opts.AccountID {
			continue
		}

		if opts.Status != nil && workflow.Status != *opts.Status {
			continue
		}

		workflows = append(workflows, workflow)
	}

	sortWorkflows(workflows, opts.SortBy, opts.SortOrder)

	total := int64(len(workflows))

	if opts.Offset >= len(workflows) {
		workflows = []*models.Workflow{}
	} else {
		workflows = workflows[opts.Offset:]
	}

	hasNext := false

	if len(workflows) > opts.Limit {
		workflows = workflows[:opts.Limit]
		hasNext = true
	}

	return &persistence.WorkflowListResult{
		Workflows:   workflows,
		TotalCount:  total,
		HasNextPage: hasNext,
	}, nil
}

func sortWorkflows(workflows []*models.Workflow, sortBy, sortOrder string) {
	less := func(a, b *models.Workflow) bool {
		switch sortBy {
		case "name":
			return a.Name < b.Name
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(workflows, func(i, j int) bool {
		if sortOrder == "asc" {
			return less(workflows[i], workflows[j])
		}

		return less(workflows[j], workflows[i])
	})
}
