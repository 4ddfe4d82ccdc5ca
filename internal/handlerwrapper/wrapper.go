// Package handlerwrapper adapts typed, pure transformation handlers to
// watermill's message.HandlerFunc. A handler takes a decoded payload and
// returns the messages to publish; decode errors, spans, and logging are
// handled here once instead of inside every handler.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/results"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// Result is one outbound message produced by a handler. It aliases the
// results-package type so service outcomes map onto handler output directly.
type Result = results.HandlerResult

// WrapTransformingTyped unmarshals the inbound payload into T and invokes the
// handler. Returned Results are turned into messages that inherit the inbound
// correlation ID. An unmarshalable payload is dropped with a log line rather
// than returned as an error: redelivering a malformed message can never
// succeed.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.String("handler", handlerName),
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Handler failed",
				attr.String("handler", handlerName),
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			return nil, err
		}

		out := make([]*message.Message, 0, len(results))
		for _, res := range results {
			resultMsg, err := helpers.CreateResultMessage(msg, res.Payload, res.Topic)
			if err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("%s: failed to create result message: %w", handlerName, err)
			}
			for k, v := range res.Metadata {
				resultMsg.Metadata.Set(k, v)
			}
			out = append(out, resultMsg)
		}
		return out, nil
	}
}
