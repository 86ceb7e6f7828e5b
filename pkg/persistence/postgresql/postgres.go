// Package postgresql provides the PostgreSQL persistence implementation for
// workflows, users, call history, and tenant settings.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"github.com/voxflow/voxflow/pkg/persistence"
	"github.com/voxflow/voxflow/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger

	workflowRepo       *WorkflowRepository
	userRepo           *UserRepository
	callRepo           *CallRepository
	whitelabelRepo     *WhitelabelRepository
	connectionRepo     *ConnectionRepository
	supportSessionRepo *SupportSessionRepository
}

// NewPersistence creates a new PostgreSQL persistence layer and runs pending
// schema migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	postgres := &Persistence{
		db:                 database,
		logger:             logger,
		workflowRepo:       NewWorkflowRepository(database, logger),
		userRepo:           NewUserRepository(database, logger),
		callRepo:           NewCallRepository(database, logger),
		whitelabelRepo:     NewWhitelabelRepository(database),
		connectionRepo:     NewConnectionRepository(database),
		supportSessionRepo: NewSupportSessionRepository(database),
	}

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return postgres, nil
}

// Close closes the database connection.
func (p *Persistence) Close(ctx context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// WorkflowRepository returns the workflow repository.
func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

// UserRepository returns the user repository.
func (p *Persistence) UserRepository() persistence.UserRepository {
	return p.userRepo
}

// CallRepository returns the call history repository.
func (p *Persistence) CallRepository() persistence.CallRepository {
	return p.callRepo
}

// WhitelabelRepository returns the whitelabel settings repository.
func (p *Persistence) WhitelabelRepository() persistence.WhitelabelRepository {
	return p.whitelabelRepo
}

// ConnectionRepository returns the OAuth connection repository.
func (p *Persistence) ConnectionRepository() persistence.ConnectionRepository {
	return p.connectionRepo
}

// SupportSessionRepository returns the support session repository.
func (p *Persistence) SupportSessionRepository() persistence.SupportSessionRepository {
	return p.supportSessionRepo
}
