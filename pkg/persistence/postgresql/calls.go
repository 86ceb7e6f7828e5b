package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/voxflow/voxflow/pkg/models"
)

// CallRepository reads call and SMS history.
type CallRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCallRepository creates a new call history repository.
func NewCallRepository(db *sql.DB, logger *slog.Logger) *CallRepository {
	return &CallRepository{db: db, logger: logger}
}

const callColumns = `id, account_id, COALESCE(assistant_id, ''), phone_number, COALESCE(contact_name, ''),
	status, COALESCE(transcript, ''), duration_seconds, COALESCE(recording_url, ''), created_at`

// ListCalls returns all calls for an account, newest first.
func (r *CallRepository) ListCalls(ctx context.Context, accountID string) ([]models.CallRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM call_history
		WHERE account_id = $1
		ORDER BY created_at DESC
	`, callColumns)

	return r.queryCalls(ctx, query, accountID)
}

// ListCallsByPhone returns an account's calls with one phone number, newest first.
func (r *CallRepository) ListCallsByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.CallRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM call_history
		WHERE account_id = $1 AND phone_number = $2
		ORDER BY created_at DESC
	`, callColumns)

	return r.queryCalls(ctx, query, accountID, phoneNumber)
}

// ListMessages returns all SMS messages for an account, newest first.
func (r *CallRepository) ListMessages(ctx context.Context, accountID string) ([]models.SMSRecord, error) {
	query := `
		SELECT id, account_id, phone_number, body, direction, created_at
		FROM sms_messages
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	return r.queryMessages(ctx, query, accountID)
}

// ListMessagesByPhone returns an account's SMS messages with one phone number, newest first.
func (r *CallRepository) ListMessagesByPhone(ctx context.Context, accountID, phoneNumber string) ([]models.SMSRecord, error) {
	query := `
		SELECT id, account_id, phone_number, body, direction, created_at
		FROM sms_messages
		WHERE account_id = $1 AND phone_number = $2
		ORDER BY created_at DESC
	`

	return r.queryMessages(ctx, query, accountID, phoneNumber)
}

func (r *CallRepository) queryCalls(ctx context.Context, query string, args ...any) ([]models.CallRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query call history: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	calls := make([]models.CallRecord, 0)

	for rows.Next() {
		var call models.CallRecord

		err := rows.Scan(
			&call.ID,
			&call.AccountID,
			&call.AssistantID,
			&call.PhoneNumber,
			&call.ContactName,
			&call.Status,
			&call.Transcript,
			&call.DurationSeconds,
			&call.RecordingURL,
			&call.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}

		calls = append(calls, call)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating call history: %w", err)
	}

	return calls, nil
}

func (r *CallRepository) queryMessages(ctx context.Context, query string, args ...any) ([]models.SMSRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sms messages: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	messages := make([]models.SMSRecord, 0)

	for rows.Next() {
		var message models.SMSRecord

		err := rows.Scan(
			&message.ID,
			&message.AccountID,
			&message.PhoneNumber,
			&message.Body,
			&message.Direction,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sms record: %w", err)
		}

		messages = append(messages, message)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating sms messages: %w", err)
	}

	return messages, nil
}
