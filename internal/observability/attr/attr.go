// Package attr provides slog attribute helpers so call sites stay terse and
// key names stay consistent across modules.
package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationIDKey struct{}

// String returns a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int64 returns an int64 attribute.
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

// Any returns an attribute holding an arbitrary value.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error returns the canonical error attribute.
func Error(err error) slog.Attr { return slog.Any("error", err) }

// WithCorrelationID stores the message correlation ID on the context so
// service-layer logs can carry it without seeing the message.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID returns the correlation ID attribute from the context,
// or an empty-valued attribute when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return slog.String("correlation_id", id)
}

// CorrelationIDFromMsg returns the correlation ID attribute carried in the
// message metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}
