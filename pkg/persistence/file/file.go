// Package file provides a file-and-memory persistence implementation used for
// development and tests. Workflows are stored as JSON documents, one per file,
// mirroring the whole-document save semantics of the hosted backend; the
// smaller aggregates live in memory.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/voxflow/voxflow/pkg/persistence"
)

// Persistence implements persistence.Persistence on the local filesystem.
type Persistence struct {
	root           string
	workflowRepo   *WorkflowRepository
	userRepo       *UserRepository
	callRepo       *CallRepository
	whitelabelRepo *WhitelabelRepository
	connectionRepo *ConnectionRepository
	supportRepo    *SupportSessionRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix is tolerated, matching DATABASE_URL conventions.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:           cleanRoot,
		workflowRepo:   NewWorkflowRepository(cleanRoot),
		userRepo:       NewUserRepository(),
		callRepo:       NewCallRepository(),
		whitelabelRepo: NewWhitelabelRepository(),
		connectionRepo: NewConnectionRepository(),
		supportRepo:    NewSupportSessionRepository(),
	}
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) UserRepository() persistence.UserRepository {
	return p.userRepo
}

func (p *Persistence) CallRepository() persistence.CallRepository {
	return p.callRepo
}

func (p *Persistence) WhitelabelRepository() persistence.WhitelabelRepository {
	return p.whitelabelRepo
}

func (p *Persistence) ConnectionRepository() persistence.ConnectionRepository {
	return p.connectionRepo
}

func (p *Persistence) SupportSessionRepository() persistence.SupportSessionRepository {
	return p.supportRepo
}

// Users returns the concrete user repository for test seeding.
func (p *Persistence) Users() *UserRepository {
	return p.userRepo
}

// Calls returns the concrete call repository for test seeding.
func (p *Persistence) Calls() *CallRepository {
	return p.callRepo
}

// Connections returns the concrete connection repository for test seeding.
func (p *Persistence) Connections() *ConnectionRepository {
	return p.connectionRepo
}

// SupportSessions returns the concrete support-session repository for test
// seeding.
func (p *Persistence) SupportSessions() *SupportSessionRepository {
	return p.supportRepo
}
