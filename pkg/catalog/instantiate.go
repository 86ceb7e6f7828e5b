package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/voxflow/voxflow/pkg/models"
)

// DefaultToNumber is the recipient template pre-populated on SMS and
// call nodes.
const DefaultToNumber = "{phone_number}"

// ErrEntryNotFound is returned when an integration/entry pair is not in the
// palette for the requested context.
var ErrEntryNotFound = errors.New("catalog entry not found")

// Instantiate builds a fresh node record for the selected catalog entry. The
// node type mapping mirrors the composer's special cases: Twilio selections
// become twilio_sms nodes, the Call Lead integration (or a call_lead entry id)
// becomes a call_lead node, anything picked under the trigger context becomes
// the workflow's trigger, built-in logic entries map to their own node kinds,
// and everything else is a generic action.
func Instantiate(ctx Context, integrationID, entryID string) (*models.Node, error) {
	integration, entry, ok := Find(ctx, integrationID, entryID)
	if !ok {
		return nil, fmt.Errorf("%s/%s in %s context: %w", integrationID, entryID, ctx, ErrEntryNotFound)
	}

	node := &models.Node{ID: uuid.New().String()}

	switch {
	case ctx == ContextTrigger:
		node.Type = models.NodeTypeTrigger
		node.Data = &models.TriggerData{
			NodeLabel:   entry.Label,
			TriggerType: entry.ID,
			Integration: integration.Name,
		}

	case strings.EqualFold(integration.Name, "Twilio"):
		node.Type = models.NodeTypeTwilioSMS
		node.Data = &models.SMSData{
			NodeLabel: entry.Label,
			ToNumber:  DefaultToNumber,
		}

	case entry.ID == "call_lead" || strings.EqualFold(integration.Name, "Call Lead"):
		node.Type = models.NodeTypeCallLead
		node.Data = &models.CallLeadData{
			NodeLabel: entry.Label,
			ToNumber:  DefaultToNumber,
		}

	case entry.ID == "condition":
		node.Type = models.NodeTypeCondition
		node.Data = &models.ConditionData{NodeLabel: entry.Label, Combinator: models.CombinatorAnd}

	case entry.ID == "router":
		node.Type = models.NodeTypeRouter
		node.Data = &models.RouterData{NodeLabel: entry.Label}

	case entry.ID == "wait":
		node.Type = models.NodeTypeWait
		node.Data = &models.WaitData{NodeLabel: entry.Label, Duration: 5, Unit: "minutes"}

	default:
		node.Type = models.NodeTypeAction
		node.Data = &models.ActionData{
			NodeLabel:   entry.Label,
			Integration: integration.Name,
			ActionID:    entry.ID,
			Method:      defaultMethod(entry.ID),
		}
	}

	return node, nil
}

// defaultMethod derives the default HTTP method from the entry id's leading
// verb, falling back to POST.
func defaultMethod(entryID string) string {
	verb, _, _ := strings.Cut(entryID, "_")

	switch strings.ToLower(verb) {
	case "get", "fetch", "list":
		return "GET"
	case "put":
		return "PUT"
	case "patch", "update":
		return "PATCH"
	case "delete", "remove":
		return "DELETE"
	default:
		return "POST"
	}
}
