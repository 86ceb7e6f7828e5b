package conversations

import (
	"fmt"
	"sort"
	"time"

	"github.com/voxflow/voxflow/pkg/models"
)

// CallView is one classified call inside a conversation.
type CallView struct {
	ID              string            `json:"id"`
	Status          models.CallStatus `json:"status"`
	Resolution      string            `json:"resolution"`
	Summary         string            `json:"summary"`
	DurationSeconds int               `json:"duration_seconds"`
	RecordingURL    string            `json:"recording_url,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Conversation is the per-phone-number rollup shown in the history list.
type Conversation struct {
	PhoneNumber   string             `json:"phone_number"`
	ContactName   string             `json:"contact_name,omitempty"`
	Calls         []CallView         `json:"calls"`
	Messages      []models.SMSRecord `json:"messages"`
	TotalCalls    int                `json:"total_calls"`
	TotalSMS      int                `json:"total_sms"`
	Outcomes      map[string]int     `json:"outcomes"`
	TotalDuration string             `json:"total_duration"` // mm:ss
	LastActivity  time.Time          `json:"last_activity"`
}

// FormatDuration renders a second count as mm:ss. Minutes do not wrap at an
// hour; a 90-minute total renders as "90:00".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Aggregate groups raw call and SMS records by phone number and computes the
// per-conversation rollups. Conversations are ordered by last activity,
// newest first; calls and messages inside each conversation are newest first.
func Aggregate(calls []models.CallRecord, messages []models.SMSRecord) []Conversation {
	byPhone := make(map[string]*Conversation)

	get := func(phone string) *Conversation {
		conversation, ok := byPhone[phone]
		if !ok {
			conversation = &Conversation{
				PhoneNumber: phone,
				Calls:       []CallView{},
				Messages:    []models.SMSRecord{},
				Outcomes:    make(map[string]int),
			}
			byPhone[phone] = conversation
		}

		return conversation
	}

	totalSeconds := make(map[string]int)

	for _, call := range calls {
		conversation := get(call.PhoneNumber)

		if conversation.ContactName == "" && call.ContactName != "" {
			conversation.ContactName = call.ContactName
		}

		resolution := DetermineCallResolution(call.Status, call.Transcript)

		conversation.Calls = append(conversation.Calls, CallView{
			ID:              call.ID,
			Status:          call.Status,
			Resolution:      resolution,
			Summary:         SummarizeCall(call.Status, call.Transcript),
			DurationSeconds: call.DurationSeconds,
			RecordingURL:    call.RecordingURL,
			CreatedAt:       call.CreatedAt,
		})

		conversation.TotalCalls++
		conversation.Outcomes[resolution]++
		totalSeconds[call.PhoneNumber] += call.DurationSeconds

		if call.CreatedAt.After(conversation.LastActivity) {
			conversation.LastActivity = call.CreatedAt
		}
	}

	for _, sms := range messages {
		conversation := get(sms.PhoneNumber)
		conversation.Messages = append(conversation.Messages, sms)
		conversation.TotalSMS++

		if sms.CreatedAt.After(conversation.LastActivity) {
			conversation.LastActivity = sms.CreatedAt
		}
	}

	result := make([]Conversation, 0, len(byPhone))

	for phone, conversation := range byPhone {
		conversation.TotalDuration = FormatDuration(totalSeconds[phone])

		sort.Slice(conversation.Calls, func(i, j int) bool {
			return conversation.Calls[i].CreatedAt.After(conversation.Calls[j].CreatedAt)
		})
		sort.Slice(conversation.Messages, func(i, j int) bool {
			return conversation.Messages[i].CreatedAt.After(conversation.Messages[j].CreatedAt)
		})

		result = append(result, *conversation)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})

	return result
}
