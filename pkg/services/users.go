package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = persistence.ErrUserNotFound

// Admin provides the administrative user operations, including the full
// account teardown.
type Admin struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

// NewAdmin creates a new admin service.
func NewAdmin(persistence persistence.Persistence, logger *slog.Logger) *Admin {
	return &Admin{
		persistence: persistence,
		logger:      logger,
	}
}

// ListUsers returns all users in an account.
func (a *Admin) ListUsers(ctx context.Context, accountID string) ([]*models.User, error) {
	return a.persistence.UserRepository().List(ctx, accountID)
}

// GetUser returns one user by id.
func (a *Admin) GetUser(ctx context.Context, id string) (*models.User, error) {
	return a.persistence.UserRepository().GetByID(ctx, id)
}

// DeletedTable reports how many rows one auxiliary table lost during a
// user delete. Tables that held nothing are omitted from the result.
type DeletedTable struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// DeleteUserResult summarizes a completed user delete.
type DeleteUserResult struct {
	Message string         `json:"message"`
	Deleted []DeletedTable `json:"deleted,omitempty"`
}

// DeleteUser removes a user and every row they own across the auxiliary
// tables, then the user row itself.
//
// The sweep runs table by table without a surrounding transaction, so a
// failure partway through leaves earlier deletions in place. The final user
// delete is gated by referential integrity: if any table was missed the
// delete fails with ErrUserHasData instead of orphaning rows.
func (a *Admin) DeleteUser(ctx context.Context, id string) (*DeleteUserResult, error) {
	repo := a.persistence.UserRepository()

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteUserResult{Message: "User deleted successfully"}

	for _, table := range repo.RelatedTables() {
		count, err := repo.DeleteRelatedRows(ctx, table, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear %s for user %s: %w", table, user.ID, err)
		}

		if count > 0 {
			a.logger.InfoContext(ctx, "Deleted user data", "table", table, "rows", count, "user_id", user.ID)
			result.Deleted = append(result.Deleted, DeletedTable{Table: table, Rows: count})
		}
	}

	err = repo.Delete(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "User deleted", "user_id", user.ID, "email", user.Email)

	return result, nil
}
