// Package defaultrole wires the default-role synchronization module: the
// setrole command processor and the member-join reconciler.
package defaultrole

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	defaultroleservice "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/application"
	defaultroledb "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/repositories"
	defaultrolerouter "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/infrastructure/router"
	"github.com/guildstone/rolekeeper-bot/internal/discordgw"
	"github.com/guildstone/rolekeeper-bot/internal/eventbus"
	"github.com/guildstone/rolekeeper-bot/internal/observability"
	"github.com/guildstone/rolekeeper-bot/internal/observability/metrics/defaultrolemetrics"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// Module represents the defaultrole module.
type Module struct {
	Service    defaultroleservice.Service
	Router     *defaultrolerouter.DefaultRoleRouter
	cancelFunc context.CancelFunc
	logger     *observability.Provider
}

// NewModule creates a new instance of the defaultrole module.
func NewModule(
	ctx context.Context,
	obs *observability.Provider,
	repo defaultroledb.Repository,
	gateway discordgw.Gateway,
	bus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	metrics := defaultrolemetrics.NewPrometheusMetrics(obs.Registry)

	logger.InfoContext(ctx, "defaultrole.NewModule called")

	service := defaultroleservice.NewDefaultRoleService(repo, gateway, logger, metrics, obs.Tracer)

	moduleRouter := defaultrolerouter.NewDefaultRoleRouter(logger, router, bus, bus, helpers, obs.Tracer)
	if err := moduleRouter.Configure(service); err != nil {
		return nil, fmt.Errorf("failed to configure defaultrole router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  moduleRouter,
		logger:  obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.logger.Logger
	logger.InfoContext(ctx, "Starting defaultrole module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "defaultrole module goroutine stopped")
}

// Close stops the module and cleans up resources.
func (m *Module) Close() error {
	logger := m.logger.Logger
	logger.Info("Stopping defaultrole module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.Router != nil {
		if err := m.Router.Close(); err != nil {
			logger.Error("Error closing defaultrole router", "error", err)
			return fmt.Errorf("error closing defaultrole router: %w", err)
		}
	}

	logger.Info("defaultrole module stopped")
	return nil
}
