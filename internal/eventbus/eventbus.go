// Package eventbus provides the NATS JetStream event bus the watermill router
// runs on. Subjects double as watermill topics; the publisher resolves the
// topic from message metadata when the router hands it an empty publish
// topic, which is how handlers address multiple outbound topics from a single
// registration.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	watermillnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// EventBus is the publish/subscribe surface modules see.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// NATSEventBus implements EventBus on NATS JetStream.
type NATSEventBus struct {
	publisher  *watermillnats.Publisher
	subscriber *watermillnats.Subscriber
	conn       *nc.Conn
	js         jetstream.JetStream
	logger     *slog.Logger
}

var _ EventBus = (*NATSEventBus)(nil)

// New connects to NATS and builds the watermill publisher and subscriber.
func New(natsURL string, logger *slog.Logger) (*NATSEventBus, error) {
	conn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &watermillnats.NATSMarshaler{}
	natsOptions := []nc.Option{nc.RetryOnFailedConnect(true)}

	publisher, err := watermillnats.NewPublisher(
		watermillnats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
		},
		watermillLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := watermillnats.NewSubscriber(
		watermillnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: natsOptions,
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &NATSEventBus{
		publisher:  publisher,
		subscriber: subscriber,
		conn:       conn,
		js:         js,
		logger:     logger,
	}, nil
}

// Publish sends messages to the given topic. When topic is empty, each
// message's topic metadata decides its destination.
func (b *NATSEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		target := topic
		if target == "" {
			target = msg.Metadata.Get(utils.TopicMetadataKey)
		}
		if target == "" {
			return fmt.Errorf("message %s has no topic", msg.UUID)
		}
		b.logger.Debug("Publishing message",
			attr.String("topic", target),
			attr.String("message_id", msg.UUID),
		)
		if err := b.publisher.Publish(target, msg); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", target, err)
		}
	}
	return nil
}

// Subscribe delegates to the JetStream subscriber.
func (b *NATSEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// EnsureStream creates or updates a JetStream stream covering the given
// subjects. Called once at startup for every topic family the service owns.
func (b *NATSEventBus) EnsureStream(ctx context.Context, name string, subjects []string) error {
	_, err := b.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: subjects,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", name, err)
	}
	return nil
}

// Conn exposes the underlying connection for request/reply clients that want
// to share it.
func (b *NATSEventBus) Conn() *nc.Conn {
	return b.conn
}

// Close shuts down the publisher, subscriber, and connection.
func (b *NATSEventBus) Close() error {
	var firstErr error
	if err := b.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := b.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	b.conn.Close()
	return firstErr
}
