package composer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// CommandTopic is the in-process topic carrying canvas intents.
const CommandTopic = "composer.commands"

// CommandType identifies a canvas intent. These replace the page-level custom
// events the node cards used to dispatch at the canvas controller.
type CommandType string

const (
	CommandOpenAddMenu   CommandType = "open_add_menu"
	CommandEditNode      CommandType = "edit_node"
	CommandDuplicateNode CommandType = "duplicate_node"
	CommandDeleteNode    CommandType = "delete_node"
)

// IsValid reports whether the type is one of the known canvas intents.
func (t CommandType) IsValid() bool {
	switch t {
	case CommandOpenAddMenu, CommandEditNode, CommandDuplicateNode, CommandDeleteNode:
		return true
	default:
		return false
	}
}

// Command is one intent from a node card to the canvas controller.
type Command struct {
	Type       CommandType `json:"type"`
	WorkflowID string      `json:"workflow_id"`
	NodeID     string      `json:"node_id,omitempty"`
	// SourceHandle carries the branch handle when the add menu opens from a
	// router branch pill.
	SourceHandle string `json:"source_handle,omitempty"`
}

// CommandBus is an in-process pub/sub channel between node-card controls and
// the canvas controller.
type CommandBus struct {
	pubSub *gochannel.GoChannel
}

// NewCommandBus creates an in-memory command bus. Messages are not persisted;
// intents are fire-and-forget like the DOM events they replace.
func NewCommandBus(logger *slog.Logger) *CommandBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          false,
		},
		watermill.NewSlogLogger(logger),
	)

	return &CommandBus{pubSub: pubSub}
}

// Publish sends a command to every subscriber.
func (b *CommandBus) Publish(cmd Command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)

	if err := b.pubSub.Publish(CommandTopic, msg); err != nil {
		return fmt.Errorf("failed to publish command: %w", err)
	}

	return nil
}

// Subscribe returns a channel of decoded commands. The channel closes when
// the context is cancelled or the bus is closed. Undecodable messages are
// acked and dropped.
func (b *CommandBus) Subscribe(ctx context.Context) (<-chan Command, error) {
	messages, err := b.pubSub.Subscribe(ctx, CommandTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", CommandTopic, err)
	}

	commands := make(chan Command)

	go func() {
		defer close(commands)

		for msg := range messages {
			var cmd Command

			if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
				msg.Ack()

				continue
			}

			select {
			case commands <- cmd:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()

				return
			}
		}
	}()

	return commands, nil
}

// Close shuts the bus down, closing all subscriber channels.
func (b *CommandBus) Close() error {
	return b.pubSub.Close()
}
