package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

func TestUserRepository_DeleteRequiresEmptyTables(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	repo.SeedUser(&models.User{ID: "u1", Email: "lead@example.com", Role: models.UserRoleMember})
	repo.SeedRelatedRows("contacts", "u1", 3)
	repo.SeedRelatedRows("campaigns", "u1", 1)

	err := repo.Delete(ctx, "u1")
	assert.ErrorIs(t, err, persistence.ErrUserHasData)

	for _, table := range repo.RelatedTables() {
		_, err := repo.DeleteRelatedRows(ctx, table, "u1")
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, "u1"))

	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, persistence.ErrUserNotFound)
}

func TestUserRepository_DeleteRelatedRowsCounts(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	repo.SeedUser(&models.User{ID: "u2", Email: "x@example.com"})
	repo.SeedRelatedRows("sms_messages", "u2", 7)

	count, err := repo.DeleteRelatedRows(ctx, "sms_messages", "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	// A second pass finds nothing left to remove.
	count, err = repo.DeleteRelatedRows(ctx, "sms_messages", "u2")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSupportSessionRepository_End(t *testing.T) {
	t.Parallel()

	repo := NewSupportSessionRepository()
	ctx := context.Background()

	repo.SeedSession("sess-1")

	require.NoError(t, repo.End(ctx, "sess-1"))
	assert.ErrorIs(t, repo.End(ctx, "sess-1"), persistence.ErrSupportSessionNotFound)
	assert.ErrorIs(t, repo.End(ctx, "nope"), persistence.ErrSupportSessionNotFound)
}
