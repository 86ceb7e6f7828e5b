package services

import (
	"context"
	"fmt"

	"github.com/voxflow/voxflow/pkg/conversations"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// Conversations builds the per-contact conversation view from raw call and
// SMS history.
type Conversations struct {
	persistence persistence.Persistence
}

// NewConversations creates a new conversations service.
func NewConversations(persistence persistence.Persistence) *Conversations {
	return &Conversations{
		persistence: persistence,
	}
}

// List groups an account's call and SMS history by phone number.
func (s *Conversations) List(ctx context.Context, accountID string) ([]conversations.Conversation, error) {
	repo := s.persistence.CallRepository()

	calls, err := repo.ListCalls(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	messages, err := repo.ListMessages(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return conversations.Aggregate(calls, messages), nil
}

// Get returns the conversation with one phone number, or nil when there is
// no history with it.
func (s *Conversations) Get(ctx context.Context, accountID, phoneNumber string) (*conversations.Conversation, error) {
	repo := s.persistence.CallRepository()

	calls, err := repo.ListCallsByPhone(ctx, accountID, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	messages, err := repo.ListMessagesByPhone(ctx, accountID, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	grouped := conversations.Aggregate(calls, messages)
	if len(grouped) == 0 {
		return nil, nil
	}

	return &grouped[0], nil
}
