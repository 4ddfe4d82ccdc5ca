// Package app bootstraps and runs the rolekeeper backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	defaultroleevents "github.com/guildstone/rolekeeper-bot/app/events/defaultrole"
	discordevents "github.com/guildstone/rolekeeper-bot/app/events/discord"
	"github.com/guildstone/rolekeeper-bot/app/modules/defaultrole"
	"github.com/guildstone/rolekeeper-bot/config"
	"github.com/guildstone/rolekeeper-bot/db/bundb"
	"github.com/guildstone/rolekeeper-bot/internal/discordgw"
	"github.com/guildstone/rolekeeper-bot/internal/eventbus"
	"github.com/guildstone/rolekeeper-bot/internal/observability"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// App owns every long-lived resource of the process.
type App struct {
	Cfg           *config.Config
	Observability *observability.Provider
	DB            *bundb.DBService
	EventBus      *eventbus.NATSEventBus
	Router        *message.Router
	DefaultRole   *defaultrole.Module
	opsServer     *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.NewProvider(observability.Config{
		ServiceName:    "rolekeeper-bot",
		Environment:    cfg.Observability.Environment,
		TracingEnabled: cfg.Observability.TracingEnabled,
	})
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL, logger)
	if err != nil {
		dbService.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	if err := provisionStreams(ctx, bus); err != nil {
		bus.Close()
		dbService.Close()
		return nil, err
	}

	gateway := discordgw.NewClient(bus.Conn(), discordgw.Config{
		RequestTimeout:    cfg.Gateway.RequestTimeout,
		RequestsPerSecond: cfg.Gateway.RequestsPerSecond,
		RequestBurst:      cfg.Gateway.RequestBurst,
	}, logger)

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		bus.Close()
		dbService.Close()
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	helpers := utils.NewHelper(logger)

	module, err := defaultrole.NewModule(ctx, obs, dbService.UserRoleDB, gateway, bus, router, helpers)
	if err != nil {
		bus.Close()
		dbService.Close()
		return nil, fmt.Errorf("failed to initialize defaultrole module: %w", err)
	}

	return &App{
		Cfg:           cfg,
		Observability: obs,
		DB:            dbService,
		EventBus:      bus,
		Router:        router,
		DefaultRole:   module,
	}, nil
}

// provisionStreams ensures the JetStream streams backing the service's
// topics exist before the router subscribes.
func provisionStreams(ctx context.Context, bus *eventbus.NATSEventBus) error {
	streams := map[string][]string{
		discordevents.StreamName:     {"discord.>"},
		defaultroleevents.StreamName: {"defaultrole.>"},
	}
	for name, subjects := range streams {
		if err := bus.EnsureStream(ctx, name, subjects); err != nil {
			return fmt.Errorf("failed to provision stream %s: %w", name, err)
		}
	}
	return nil
}

// Run starts the router, the ops HTTP server, and the modules, blocking until
// the context is canceled.
func (a *App) Run(ctx context.Context, metricsAddress string) error {
	logger := a.Observability.Logger

	var wg sync.WaitGroup
	wg.Add(1)
	go a.DefaultRole.Run(ctx, &wg)

	if metricsAddress != "" {
		a.startOpsServer(metricsAddress)
	}

	logger.InfoContext(ctx, "Starting watermill router")
	if err := a.Router.Run(ctx); err != nil {
		return fmt.Errorf("router stopped with error: %w", err)
	}

	wg.Wait()
	return nil
}

func (a *App) startOpsServer(address string) {
	logger := a.Observability.Logger

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.Observability.Registry, promhttp.HandlerOpts{}))

	a.opsServer = &http.Server{
		Addr:              address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Ops server listening", "address", address)
		if err := a.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Ops server failed", "error", err)
		}
	}()
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close() error {
	logger := a.Observability.Logger
	var firstErr error

	if a.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			firstErr = err
		}
		cancel()
	}

	if err := a.DefaultRole.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.EventBus.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.DB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	logger.Info("Application shut down")
	return firstErr
}
