package defaultrolerouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	defaultroleservice "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/application"
	defaultrolehandlers "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/handlers"
	"github.com/guildstone/rolekeeper-bot/internal/eventbus"
	"github.com/guildstone/rolekeeper-bot/internal/handlerwrapper"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// DefaultRoleRouter handles routing for defaultrole module events.
type DefaultRoleRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewDefaultRoleRouter creates a new DefaultRoleRouter.
func NewDefaultRoleRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helper utils.Helpers,
	tracer trace.Tracer,
) *DefaultRoleRouter {
	return &DefaultRoleRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *DefaultRoleRouter) Configure(service defaultroleservice.Service) error {
	handlers := defaultrolehandlers.NewDefaultRoleHandlers(service, r.logger, r.tracer, r.helper)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		utils.CommonMetadataMiddleware("defaultrole"),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	helper     utils.Helpers
}

// registerHandler registers a pure transformation-pattern handler with typed
// payload. The publish topic stays empty so each result message's metadata
// picks its own destination.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "defaultrole." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.helper,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the pure transformation
// pattern.
func (r *DefaultRoleRouter) RegisterHandlers(handlers defaultrolehandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
	}

	registerHandler(deps, discordevents.CommandInvokedV1, handlers.HandleCommandInvoked)
	registerHandler(deps, discordevents.MemberJoinedV1, handlers.HandleMemberJoined)

	return nil
}

// Close stops the router.
func (r *DefaultRoleRouter) Close() error {
	return r.Router.Close()
}
