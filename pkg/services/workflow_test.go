package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence/file"
)

func TestNewWorkflow(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	assert.NotNil(t, service)
	assert.Equal(t, persistence, service.persistence)
}

func TestWorkflow_Create(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	created, err := service.Create(t.Context(), &models.Workflow{
		Name:      "Lead follow-up",
		AccountID: "acct-1",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, models.WorkflowStatusDraft, created.Status)
	assert.NotNil(t, created.Nodes)
	assert.NotNil(t, created.Edges)
}

func TestWorkflow_Create_RequiresName(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	_, err := service.Create(t.Context(), &models.Workflow{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestWorkflow_FetchByID(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	created, err := service.Create(t.Context(), &models.Workflow{Name: "Fetch me"})
	require.NoError(t, err)

	fetched, err := service.FetchByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = service.FetchByID(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestWorkflow_SaveGraph(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	created, err := service.Create(t.Context(), &models.Workflow{Name: "Graph owner"})
	require.NoError(t, err)

	nodes := []*models.Node{
		{ID: "t1", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: "webhook"}},
		{ID: "w1", Type: models.NodeTypeWait, Data: &models.WaitData{Duration: 5, Unit: "minutes"}},
	}
	edges := []*models.Edge{
		{ID: "e1", Source: "t1", Target: "w1", Data: models.EdgeData{Condition: models.EdgeConditionAlways}},
	}

	saved, err := service.SaveGraph(t.Context(), created.ID, nodes, edges)
	require.NoError(t, err)
	assert.Len(t, saved.Nodes, 2)

	// The save overwrites wholesale: a second save with fewer nodes wins.
	saved, err = service.SaveGraph(t.Context(), created.ID, nodes[:1], nil)
	require.NoError(t, err)
	assert.Len(t, saved.Nodes, 1)
	assert.Empty(t, saved.Edges)
}

func TestWorkflow_SetStatus(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	created, err := service.Create(t.Context(), &models.Workflow{Name: "Activation"})
	require.NoError(t, err)

	// No trigger node yet: going live must fail.
	_, err = service.SetStatus(t.Context(), created.ID, models.WorkflowStatusActive)
	assert.ErrorIs(t, err, ErrTriggerRequired)

	_, err = service.SaveGraph(t.Context(), created.ID, []*models.Node{
		{ID: "t1", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: "call_ended"}},
	}, nil)
	require.NoError(t, err)

	updated, err := service.SetStatus(t.Context(), created.ID, models.WorkflowStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusActive, updated.Status)

	updated, err = service.SetStatus(t.Context(), created.ID, models.WorkflowStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusPaused, updated.Status)

	_, err = service.SetStatus(t.Context(), created.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestWorkflow_ListWorkflows(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	for _, name := range []string{"first", "second", "third"} {
		_, err := service.Create(t.Context(), &models.Workflow{Name: name, AccountID: "acct-1"})
		require.NoError(t, err)
	}

	resp, err := service.ListWorkflows(t.Context(), ListWorkflowsRequest{
		AccountID: "acct-1",
		Limit:     2,
		SortBy:    "name",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Workflows, 2)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.True(t, resp.HasNextPage)

	_, err = service.ListWorkflows(t.Context(), ListWorkflowsRequest{SortBy: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestWorkflow_Delete(t *testing.T) {
	persistence := file.NewPersistence(t.TempDir())
	service := NewWorkflow(persistence)

	created, err := service.Create(t.Context(), &models.Workflow{Name: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(t.Context(), created.ID))

	_, err = service.FetchByID(t.Context(), created.ID)
	assert.ErrorIs(t, err, ErrWorkflowNotFound)

	assert.ErrorIs(t, service.Delete(t.Context(), created.ID), ErrWorkflowNotFound)
}
