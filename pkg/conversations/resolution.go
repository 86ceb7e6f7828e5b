// Package conversations groups raw call and SMS history into per-contact
// conversation aggregates with best-effort keyword classification.
package conversations

import (
	"strings"

	"github.com/voxflow/voxflow/pkg/models"
)

// Resolution labels.
const (
	ResolutionBooked       = "Booked Appointment"
	ResolutionSpam         = "Spam"
	ResolutionNotQualified = "Not Qualified"
	ResolutionCompleted    = "Completed"
	ResolutionVoicemail    = "Voicemail"
	ResolutionNoAnswer     = "No Answer"
	ResolutionBusy         = "Busy"
	ResolutionFailed       = "Failed"
	ResolutionUnknown      = "Unknown"
)

// resolutionRule is one transcript phrase rule. Rules are ordered; the first
// rule with any matching phrase wins, so reordering changes classifications.
type resolutionRule struct {
	phrases    []string
	resolution string
	summary    string
}

var resolutionRules = []resolutionRule{
	{
		phrases:    []string{"appointment", "booked"},
		resolution: ResolutionBooked,
		summary:    "Caller booked an appointment",
	},
	{
		phrases:    []string{"spam", "robocall"},
		resolution: ResolutionSpam,
		summary:    "Call flagged as spam",
	},
	{
		phrases:    []string{"not qualified", "not eligible"},
		resolution: ResolutionNotQualified,
		summary:    "Lead did not qualify",
	},
}

// statusResolutions maps a call status to its fallback resolution when no
// transcript rule matched.
var statusResolutions = map[models.CallStatus]string{
	models.CallStatusCompleted: ResolutionCompleted,
	models.CallStatusVoicemail: ResolutionVoicemail,
	models.CallStatusNoAnswer:  ResolutionNoAnswer,
	models.CallStatusBusy:      ResolutionBusy,
	models.CallStatusFailed:    ResolutionFailed,
}

// DetermineCallResolution classifies a call from its status and transcript.
// Transcript phrase rules are checked in order and the first match wins;
// only when none match is the status fallback used.
func DetermineCallResolution(status models.CallStatus, transcript string) string {
	transcript = strings.ToLower(transcript)

	for _, rule := range resolutionRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(transcript, phrase) {
				return rule.resolution
			}
		}
	}

	if resolution, ok := statusResolutions[status]; ok {
		return resolution
	}

	return ResolutionUnknown
}

// SummarizeCall produces the one-line summary shown in the history list,
// using the same ordered phrase rules as the resolution.
func SummarizeCall(status models.CallStatus, transcript string) string {
	lowered := strings.ToLower(transcript)

	for _, rule := range resolutionRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lowered, phrase) {
				return rule.summary
			}
		}
	}

	switch status {
	case models.CallStatusCompleted:
		return "Call completed"
	case models.CallStatusVoicemail:
		return "Left a voicemail"
	case models.CallStatusNoAnswer:
		return "No answer"
	case models.CallStatusBusy:
		return "Line was busy"
	case models.CallStatusFailed:
		return "Call failed"
	default:
		return "Call ended"
	}
}
