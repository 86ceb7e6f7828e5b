package models

import (
	"encoding/json"
	"fmt"
)

// NodeType represents the kind of a workflow node. Each kind carries its own
// typed data payload; see NodeData.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"
	NodeTypeAction    NodeType = "action"
	NodeTypeCondition NodeType = "condition"
	NodeTypeRouter    NodeType = "router"
	NodeTypeWait      NodeType = "wait"
	NodeTypeTwilioSMS NodeType = "twilio_sms"
	NodeTypeCallLead  NodeType = "call_lead"
)

// Node represents a single step in the workflow graph.
type Node struct {
	ID   string   `json:"id"   validate:"required"`
	Type NodeType `json:"type" validate:"required"`
	Data NodeData `json:"data"`
}

// nodeEnvelope is the wire form of a Node; Data stays raw until the type tag
// is known.
type nodeEnvelope struct {
	ID   string          `json:"id"`
	Type NodeType        `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewNodeData returns the zero data payload for the given node type.
func NewNodeData(t NodeType) (NodeData, error) {
	switch t {
	case NodeTypeTrigger:
		return &TriggerData{}, nil
	case NodeTypeAction:
		return &ActionData{}, nil
	case NodeTypeCondition:
		return &ConditionData{}, nil
	case NodeTypeRouter:
		return &RouterData{}, nil
	case NodeTypeWait:
		return &WaitData{}, nil
	case NodeTypeTwilioSMS:
		return &SMSData{}, nil
	case NodeTypeCallLead:
		return &CallLeadData{}, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", t)
	}
}

// UnmarshalJSON decodes the node envelope and dispatches the data payload on
// the type tag.
func (n *Node) UnmarshalJSON(raw []byte) error {
	var envelope nodeEnvelope

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode node: %w", err)
	}

	data, err := NewNodeData(envelope.Type)
	if err != nil {
		return err
	}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			return fmt.Errorf("failed to decode %s node data: %w", envelope.Type, err)
		}
	}

	n.ID = envelope.ID
	n.Type = envelope.Type
	n.Data = data

	return nil
}

// Patch merge-patches the node data with a partial JSON object. Scalar fields
// present in the patch overwrite the current value; list fields (condition
// rows, router branches, expected variables) are replaced wholesale.
func (n *Node) Patch(patch json.RawMessage) error {
	if n.Data == nil {
		data, err := NewNodeData(n.Type)
		if err != nil {
			return err
		}

		n.Data = data
	}

	if err := json.Unmarshal(patch, n.Data); err != nil {
		return fmt.Errorf("failed to patch %s node data: %w", n.Type, err)
	}

	return nil
}

// Label returns the node's display label, falling back to a per-type default
// when no label was configured.
func (n *Node) Label() string {
	if n.Data != nil {
		if label := n.Data.Label(); label != "" {
			return label
		}
	}

	return defaultLabels[n.Type]
}

var defaultLabels = map[NodeType]string{
	NodeTypeTrigger:   "Trigger",
	NodeTypeAction:    "Action",
	NodeTypeCondition: "Condition",
	NodeTypeRouter:    "Router",
	NodeTypeWait:      "Wait",
	NodeTypeTwilioSMS: "Send SMS",
	NodeTypeCallLead:  "Call Lead",
}
