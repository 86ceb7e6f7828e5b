package file

import (
	"context"
	"fmt"
	"sync"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// The aggregates below are memory-backed: the dev backend only needs durable
// workflow documents, and tests seed these repositories directly.

// relatedTables mirrors the hosted backend's auxiliary tables swept by the
// admin cascade delete.
var relatedTables = []string{
	"assistants",
	"campaigns",
	"contacts",
	"contact_lists",
	"csv_files",
	"csv_contacts",
	"sms_messages",
	"knowledge_bases",
	"user_calendar_credentials",
	"user_whatsapp_credentials",
	"user_twilio_credentials",
	"workspace_settings",
	"call_history",
	"workflows",
}

// UserRepository is an in-memory user store with simulated related tables.
type UserRepository struct {
	mu      sync.Mutex
	users   map[string]*models.User
	related map[string]map[string]int64 // table -> userID -> row count
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	related := make(map[string]map[string]int64, len(relatedTables))
	for _, table := range relatedTables {
		related[table] = make(map[string]int64)
	}

	return &UserRepository{
		users:   make(map[string]*models.User),
		related: related,
	}
}

// SeedUser inserts a user for tests.
func (r *UserRepository) SeedUser(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
}

// SeedRelatedRows records n rows for the user in the given table.
func (r *UserRepository) SeedRelatedRows(table, userID string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.related[table]; !ok {
		r.related[table] = make(map[string]int64)
	}

	r.related[table][userID] = n
}

func (r *UserRepository) List(_ context.Context, accountID string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*models.User, 0, len(r.users))

	for _, user := range r.users {
		if accountID == "" || user.AccountID == accountID {
			users = append(users, user)
		}
	}

	return users, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, persistence.ErrUserNotFound
	}

	return user, nil
}

func (r *UserRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user

	return nil
}

func (r *UserRepository) RelatedTables() []string {
	tables := make([]string, len(relatedTables))
	copy(tables, relatedTables)

	return tables
}

func (r *UserRepository) DeleteRelatedRows(_ context.Context, table, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, ok := r.related[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	count := rows[userID]
	delete(rows, userID)

	return count, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return persistence.ErrUserNotFound
	}

	for _, rows := range r.related {
		if rows[id] > 0 {
			return persistence.ErrUserHasData
		}
	}

	delete(r.users, id)

	return nil
}

// CallRepository is an in-memory call/SMS history store.
type CallRepository struct {
	mu       sync.Mutex
	calls    []models.CallRecord
	messages []models.SMSRecord
}

// NewCallRepository creates an empty in-memory call repository.
func NewCallRepository() *CallRepository {
	return &CallRepository{}
}

// SeedCall appends a call record for tests.
func (r *CallRepository) SeedCall(call models.CallRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call)
}

// SeedMessage appends an SMS record for tests.
func (r *CallRepository) SeedMessage(sms models.SMSRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, sms)
}

func (r *CallRepository) ListCalls(_ context.Context, accountID string) ([]models.CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]models.CallRecord, 0, len(r.calls))

	for _, call := range r.calls {
		if accountID == "" || call.AccountID == accountID {
			calls = append(calls, call)
		}
	}

	return calls, nil
}

func (r *CallRepository) ListMessages(_ context.Context, accountID string) ([]models.SMSRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := make([]models.SMSRecord, 0, len(r.messages))

	for _, sms := range r.messages {
		if accountID == "" || sms.AccountID == accountID {
			messages = append(messages, sms)
		}
	}

	return messages, nil
}

func (r *CallRepository) ListCallsByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.CallRecord, error) {
	calls, err := r.ListCalls(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filtered := calls[:0]

	for _, call := range calls {
		if call.PhoneNumber == phoneNumber {
			filtered = append(filtered, call)
		}
	}

	return filtered, nil
}

func (r *CallRepository) ListMessagesByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.SMSRecord, error) {
	messages, err := r.ListMessages(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filtered := messages[:0]

	for _, sms := range messages {
		if sms.PhoneNumber == phoneNumber {
			filtered = append(filtered, sms)
		}
	}

	return filtered, nil
}

// WhitelabelRepository is an in-memory branding settings store.
type WhitelabelRepository struct {
	mu       sync.Mutex
	settings map[string]*models.WebsiteSettings // by account id
}

// NewWhitelabelRepository creates an empty in-memory whitelabel repository.
func NewWhitelabelRepository() *WhitelabelRepository {
	return &WhitelabelRepository{settings: make(map[string]*models.WebsiteSettings)}
}

func (r *WhitelabelRepository) Get(_ context.Context, accountID string) (*models.WebsiteSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, ok := r.settings[accountID]
	if !ok {
		return nil, persistence.ErrSettingsNotFound
	}

	return settings, nil
}

func (r *WhitelabelRepository) Save(_ context.Context, settings *models.WebsiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.AccountID] = settings

	return nil
}

func (r *WhitelabelRepository) SlugTaken(_ context.Context, slug, excludeAccountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for accountID, settings := range r.settings {
		if accountID != excludeAccountID && settings.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

// ConnectionRepository is an in-memory OAuth connection store.
type ConnectionRepository struct {
	mu          sync.Mutex
	connections []*models.Connection
}

// NewConnectionRepository creates an empty in-memory connection repository.
func NewConnectionRepository() *ConnectionRepository {
	return &ConnectionRepository{}
}

// SeedConnection appends a connection for tests.
func (r *ConnectionRepository) SeedConnection(connection *models.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.connections = append(r.connections, connection)
}

func (r *ConnectionRepository) List(_ context.Context, accountID, provider string) ([]*models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connections := make([]*models.Connection, 0, len(r.connections))

	for _, connection := range r.connections {
		if accountID != "" && connection.AccountID != accountID {
			continue
		}

		if provider != "" && connection.Provider != provider {
			continue
		}

		connections = append(connections, connection)
	}

	return connections, nil
}

// SupportSessionRepository is an in-memory support-session store.
type SupportSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]bool // id -> active
}

// NewSupportSessionRepository creates an empty in-memory session repository.
func NewSupportSessionRepository() *SupportSessionRepository {
	return &SupportSessionRepository{sessions: make(map[string]bool)}
}

// SeedSession registers an active support session for tests.
func (r *SupportSessionRepository) SeedSession(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = true
}

func (r *SupportSessionRepository) End(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sessions[id] {
		return persistence.ErrSupportSessionNotFound
	}

	r.sessions[id] = false

	return nil
}
