// Package utils carries the message-construction helpers shared by every
// module's handlers.
package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// TopicMetadataKey names the metadata entry the eventbus publisher reads when
// the router hands it a message with an empty publish topic.
const TopicMetadataKey = "topic"

// Helpers builds outbound messages for handlers.
type Helpers interface {
	// CreateResultMessage derives a new message from an inbound one,
	// carrying the JSON payload, the target topic, and the original
	// correlation ID.
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)

	// CreateNewMessage builds a message with a fresh correlation ID, for
	// publishes that do not originate from an inbound event.
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

// Helper is the production Helpers implementation.
type Helper struct {
	Logger *slog.Logger
}

// NewHelper returns a Helper.
func NewHelper(logger *slog.Logger) *Helper {
	return &Helper{Logger: logger}
}

func (h *Helper) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateNewMessage(payload, topic)
	if err != nil {
		return nil, err
	}
	if original != nil {
		if correlationID := middleware.MessageCorrelationID(original); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
	}
	return msg, nil
}

func (h *Helper) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)
	middleware.SetCorrelationID(uuid.New().String(), msg)
	return msg, nil
}
