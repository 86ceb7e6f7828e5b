package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// WhitelabelRepository stores tenant branding settings.
type WhitelabelRepository struct {
	db *sql.DB
}

// NewWhitelabelRepository creates a new whitelabel settings repository.
func NewWhitelabelRepository(db *sql.DB) *WhitelabelRepository {
	return &WhitelabelRepository{db: db}
}

// Get returns the settings row for an account.
func (r *WhitelabelRepository) Get(ctx context.Context, accountID string) (*models.WebsiteSettings, error) {
	query := `
		SELECT id, account_id, brand_name, slug, COALESCE(logo_url, ''), COALESCE(support_email, ''),
			COALESCE(custom_domain, ''), active, created_at, updated_at
		FROM website_settings
		WHERE account_id = $1
	`

	var settings models.WebsiteSettings

	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&settings.ID,
		&settings.AccountID,
		&settings.BrandName,
		&settings.Slug,
		&settings.LogoURL,
		&settings.SupportEmail,
		&settings.CustomDomain,
		&settings.Active,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrSettingsNotFound
		}

		return nil, fmt.Errorf("failed to scan website settings: %w", err)
	}

	return &settings, nil
}

// Save upserts the account's settings row.
func (r *WhitelabelRepository) Save(ctx context.Context, settings *models.WebsiteSettings) error {
	now := time.Now().UTC()

	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}

	settings.UpdatedAt = now

	if settings.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate settings ID: %w", err)
		}

		settings.ID = id.String()
	}

	query := `
		INSERT INTO website_settings (id, account_id, brand_name, slug, logo_url, support_email, custom_domain, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id) DO UPDATE SET
			brand_name = EXCLUDED.brand_name,
			slug = EXCLUDED.slug,
			logo_url = EXCLUDED.logo_url,
			support_email = EXCLUDED.support_email,
			custom_domain = EXCLUDED.custom_domain,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		settings.ID,
		settings.AccountID,
		settings.BrandName,
		settings.Slug,
		settings.LogoURL,
		settings.SupportEmail,
		settings.CustomDomain,
		settings.Active,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save website settings: %w", err)
	}

	return nil
}

// SlugTaken reports whether another account already owns the slug.
func (r *WhitelabelRepository) SlugTaken(ctx context.Context, slug, excludeAccountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM website_settings WHERE slug = $1 AND account_id <> $2)`

	var taken bool

	err := r.db.QueryRowContext(ctx, query, slug, excludeAccountID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check slug availability: %w", err)
	}

	return taken, nil
}

// ConnectionRepository reads stored OAuth connections.
type ConnectionRepository struct {
	db *sql.DB
}

// NewConnectionRepository creates a new connection repository.
func NewConnectionRepository(db *sql.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// List returns an account's connections, optionally filtered by provider.
func (r *ConnectionRepository) List(ctx context.Context, accountID, provider string) ([]*models.Connection, error) {
	query := `
		SELECT id, account_id, provider, COALESCE(external_id, ''), COALESCE(display_name, ''), created_at
		FROM connections
		WHERE account_id = $1
	`
	args := []any{accountID}

	if provider != "" {
		query += " AND provider = $2"
		args = append(args, provider)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	connections := make([]*models.Connection, 0)

	for rows.Next() {
		var connection models.Connection

		err := rows.Scan(
			&connection.ID,
			&connection.AccountID,
			&connection.Provider,
			&connection.ExternalID,
			&connection.DisplayName,
			&connection.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}

		connections = append(connections, &connection)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating connections: %w", err)
	}

	return connections, nil
}

// SupportSessionRepository tracks temporary support-access grants.
type SupportSessionRepository struct {
	db *sql.DB
}

// NewSupportSessionRepository creates a new support session repository.
func NewSupportSessionRepository(db *sql.DB) *SupportSessionRepository {
	return &SupportSessionRepository{db: db}
}

// End stamps an active support session as ended. Ending a session that does
// not exist, or was already ended, is an error.
func (r *SupportSessionRepository) End(ctx context.Context, id string) error {
	query := `UPDATE support_sessions SET ended_at = NOW() WHERE id = $1 AND ended_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to end support session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.ErrSupportSessionNotFound
	}

	return nil
}
