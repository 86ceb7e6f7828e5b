package models

import "time"

// CallStatus is the telephony provider's final disposition of a call.
type CallStatus string

const (
	CallStatusCompleted CallStatus = "completed"
	CallStatusBusy      CallStatus = "busy"
	CallStatusNoAnswer  CallStatus = "no-answer"
	CallStatusFailed    CallStatus = "failed"
	CallStatusVoicemail CallStatus = "voicemail"
)

// CallRecord is one row of call history as stored by the backend.
type CallRecord struct {
	ID              string     `json:"id"`
	AccountID       string     `json:"account_id"`
	AssistantID     string     `json:"assistant_id,omitempty"`
	PhoneNumber     string     `json:"phone_number"`
	ContactName     string     `json:"contact_name,omitempty"`
	Status          CallStatus `json:"status"`
	Transcript      string     `json:"transcript,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	RecordingURL    string     `json:"recording_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SMSDirection distinguishes inbound from outbound messages.
type SMSDirection string

const (
	SMSDirectionInbound  SMSDirection = "inbound"
	SMSDirectionOutbound SMSDirection = "outbound"
)

// SMSRecord is one row of the sms_messages table.
type SMSRecord struct {
	ID          string       `json:"id"`
	AccountID   string       `json:"account_id"`
	PhoneNumber string       `json:"phone_number"`
	Body        string       `json:"body"`
	Direction   SMSDirection `json:"direction"`
	CreatedAt   time.Time    `json:"created_at"`
}
