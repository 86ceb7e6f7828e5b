package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// pqForeignKeyViolation is the PostgreSQL error code for a foreign key
// constraint failure (class 23, code 23503).
const pqForeignKeyViolation = "23503"

// relatedTables are the per-user auxiliary tables the admin delete flow
// sweeps before removing the user row. Each entry maps the table name to the
// column holding the owning user's identifier.
var relatedTables = []struct {
	name   string
	column string
}{
	{"assistants", "user_id"},
	{"campaigns", "user_id"},
	{"contacts", "user_id"},
	{"contact_lists", "user_id"},
	{"csv_files", "user_id"},
	{"csv_contacts", "user_id"},
	{"sms_messages", "user_id"},
	{"knowledge_bases", "user_id"},
	{"user_calendar_credentials", "user_id"},
	{"user_whatsapp_credentials", "user_id"},
	{"user_twilio_credentials", "user_id"},
	{"workspace_settings", "user_id"},
	{"call_history", "user_id"},
	{"workflows", "user_id"},
}

// UserRepository handles user-related database operations.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// List returns all users belonging to an account.
func (r *UserRepository) List(ctx context.Context, accountID string) ([]*models.User, error) {
	query := `
		SELECT id, account_id, email, name, role, created_at, updated_at
		FROM users
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	users := make([]*models.User, 0)

	for rows.Next() {
		var user models.User

		err := rows.Scan(&user.ID, &user.AccountID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, &user)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// GetByID returns a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, account_id, email, name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.AccountID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

// Save upserts a user row.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	user.UpdatedAt = now

	if user.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		user.ID = id.String()
	}

	query := `
		INSERT INTO users (id, account_id, email, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.AccountID, user.Email, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// RelatedTables lists the auxiliary tables swept by the admin delete flow.
func (r *UserRepository) RelatedTables() []string {
	names := make([]string, 0, len(relatedTables))
	for _, t := range relatedTables {
		names = append(names, t.name)
	}

	return names
}

// DeleteRelatedRows removes a user's rows from one auxiliary table and
// reports how many were deleted. The table name must come from
// RelatedTables; anything else is rejected.
func (r *UserRepository) DeleteRelatedRows(ctx context.Context, table, userID string) (int64, error) {
	column := ""

	for _, t := range relatedTables {
		if t.name == table {
			column = t.column

			break
		}
	}

	if column == "" {
		return 0, fmt.Errorf("unknown related table: %s", table)
	}

	// Identifiers come from the fixed allowlist above, never from input.
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, column)

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rows from %s: %w", table, err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", table, err)
	}

	return count, nil
}

// Delete removes the user row itself. A foreign key violation means some
// auxiliary table still references the user and surfaces as ErrUserHasData.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
			return fmt.Errorf("delete user %s: %w", id, persistence.ErrUserHasData)
		}

		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.ErrUserNotFound
	}

	return nil
}
