package postgresql_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
	"github.com/voxflow/voxflow/pkg/persistence/postgresql"
)

var postgresContainer *postgres.PostgresContainer

// dropDb removes all tables so each test starts from a clean schema.
// Children first, parents last.
func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	tables := []string{
		"csv_contacts",
		"csv_files",
		"contact_lists",
		"contacts",
		"campaigns",
		"assistants",
		"knowledge_bases",
		"user_calendar_credentials",
		"user_whatsapp_credentials",
		"user_twilio_credentials",
		"workspace_settings",
		"call_history",
		"sms_messages",
		"workflows",
		"connections",
		"support_sessions",
		"website_settings",
		"users",
		"schema_migrations",
	}

	for _, table := range tables {
		_, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func setupTestDB(t *testing.T) (context.Context, *postgresql.Persistence, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		container, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("voxflow_test"),
			postgres.WithUsername("voxflow"),
			postgres.WithPassword("voxflow"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)

		postgresContainer = container
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err := p.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return ctx, p, databaseURL
}

func TestNewPersistence_HealthCheck(t *testing.T) {
	ctx, p, _ := setupTestDB(t)

	err := p.HealthCheck(ctx)
	assert.NoError(t, err)
}

func TestNewPersistence_SaveAndRetrieveWorkflow(t *testing.T) {
	ctx, p, _ := setupTestDB(t)

	owner := seedUser(ctx, t, p, "acct-1", "owner@example.com")

	workflow := &models.Workflow{
		Name:      "Lead Follow-up",
		Status:    models.WorkflowStatusDraft,
		AccountID: "acct-1",
		UserID:    &owner.ID,
		Nodes: []*models.Node{
			{ID: "start", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: "webhook"}},
			{ID: "pause", Type: models.NodeTypeWait, Data: &models.WaitData{Duration: 5, Unit: "minutes"}},
		},
		Edges: []*models.Edge{
			{ID: "e1", Source: "start", Target: "pause"},
		},
	}

	err := p.WorkflowRepository().Save(ctx, workflow)
	require.NoError(t, err)
	require.NotEmpty(t, workflow.ID)

	got, err := p.WorkflowRepository().GetByID(ctx, workflow.ID)
	require.NoError(t, err)

	assert.Equal(t, workflow.Name, got.Name)
	assert.Equal(t, workflow.Status, got.Status)
	assert.Equal(t, "acct-1", got.AccountID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, owner.ID, *got.UserID)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, models.NodeTypeTrigger, got.Nodes[0].Type)
	require.Len(t, got.Edges, 1)
}

func TestNewPersistence_ListWorkflows(t *testing.T) {
	ctx, p, _ := setupTestDB(t)

	for _, name := range []string{"First Workflow", "Second Workflow"} {
		err := p.WorkflowRepository().Save(ctx, &models.Workflow{
			Name:      name,
			Status:    models.WorkflowStatusDraft,
			AccountID: "acct-1",
		})
		require.NoError(t, err)
	}

	err := p.WorkflowRepository().Save(ctx, &models.Workflow{
		Name:      "Other Tenant Workflow",
		Status:    models.WorkflowStatusDraft,
		AccountID: "acct-2",
	})
	require.NoError(t, err)

	result, err := p.WorkflowRepository().ListWorkflows(ctx, persistence.ListWorkflowsOptions{AccountID: "acct-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalCount)
	assert.Len(t, result.Workflows, 2)
}

func TestNewPersistence_DeleteWorkflow(t *testing.T) {
	ctx, p, _ := setupTestDB(t)

	workflow := &models.Workflow{
		Name:      "Short Lived",
		Status:    models.WorkflowStatusDraft,
		AccountID: "acct-1",
	}

	err := p.WorkflowRepository().Save(ctx, workflow)
	require.NoError(t, err)

	err = p.WorkflowRepository().Delete(ctx, workflow.ID)
	require.NoError(t, err)

	_, err = p.WorkflowRepository().GetByID(ctx, workflow.ID)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

// TestNewPersistence_DeleteUserSweep walks the admin delete flow end to end:
// deleting a user with rows left in the auxiliary tables must fail with
// ErrUserHasData (the foreign key backstop), sweeping the related tables one
// by one must account for every row including the user's workflows, and only
// then does the user delete go through.
func TestNewPersistence_DeleteUserSweep(t *testing.T) {
	ctx, p, databaseURL := setupTestDB(t)

	user := seedUser(ctx, t, p, "acct-1", "leaving@example.com")

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx,
		"INSERT INTO contacts (id, user_id, phone_number, name) VALUES ($1, $2, $3, $4)",
		uuid.NewString(), user.ID, "15550001111", "Alice")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		"INSERT INTO sms_messages (id, user_id, account_id, phone_number, body, direction) VALUES ($1, $2, $3, $4, $5, $6)",
		uuid.NewString(), user.ID, "acct-1", "15550001111", "hello", "outbound")
	require.NoError(t, err)

	workflow := &models.Workflow{
		Name:      "Owned Workflow",
		Status:    models.WorkflowStatusDraft,
		AccountID: "acct-1",
		UserID:    &user.ID,
	}
	err = p.WorkflowRepository().Save(ctx, workflow)
	require.NoError(t, err)

	// Rows still reference the user, so the delete must refuse.
	err = p.UserRepository().Delete(ctx, user.ID)
	assert.ErrorIs(t, err, persistence.ErrUserHasData)

	deleted := make(map[string]int64)

	for _, table := range p.UserRepository().RelatedTables() {
		count, err := p.UserRepository().DeleteRelatedRows(ctx, table, user.ID)
		require.NoError(t, err)

		deleted[table] = count
	}

	assert.Equal(t, int64(1), deleted["contacts"])
	assert.Equal(t, int64(1), deleted["sms_messages"])
	assert.Equal(t, int64(1), deleted["workflows"])

	err = p.UserRepository().Delete(ctx, user.ID)
	require.NoError(t, err)

	_, err = p.UserRepository().GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, persistence.ErrUserNotFound)

	_, err = p.WorkflowRepository().GetByID(ctx, workflow.ID)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

func TestNewPersistence_DeleteRelatedRowsRejectsUnknownTable(t *testing.T) {
	ctx, p, _ := setupTestDB(t)

	_, err := p.UserRepository().DeleteRelatedRows(ctx, "schema_migrations", uuid.NewString())
	require.Error(t, err)
	assert.False(t, errors.Is(err, persistence.ErrUserHasData))
}

func seedUser(ctx context.Context, t *testing.T, p *postgresql.Persistence, accountID, email string) *models.User {
	t.Helper()

	user := &models.User{
		AccountID: accountID,
		Email:     email,
		Name:      "Test User",
		Role:      models.UserRoleMember,
	}

	err := p.UserRepository().Save(ctx, user)
	require.NoError(t, err)

	return user
}
