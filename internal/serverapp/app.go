// Package serverapp owns the lifecycle of the operation inspection server:
// it runs the resource build pass once at startup and serves the resolved
// operation mapping, the GraphQL schema preview, metrics, and health.
package serverapp

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"apiops/internal/config"
	"apiops/internal/defaults"
	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/naming"
	"apiops/internal/observability"
	"apiops/internal/registry"
	"apiops/internal/schemagen"

	"github.com/graphql-go/graphql"
)

// App owns runtime resources for the apiops server lifecycle.
type App struct {
	cfg    *config.Config
	logger *logging.Logger

	meterProvider *observability.MeterProvider
	buildMetrics  *observability.BuildMetrics

	resources []metadata.Resource
	schema    graphql.Schema

	handler http.Handler
	srv     *http.Server

	stateMu      sync.Mutex
	initialized  bool
	started      bool
	serverErrors chan error

	shutdownOnce sync.Once
}

// New creates an App lifecycle wrapper.
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &App{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Init sets up metrics, runs the resource build pass, and assembles the
// HTTP handler. It must be called once before Start.
func (a *App) Init(ctx context.Context) error {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if a.initialized {
		return fmt.Errorf("app already initialized")
	}

	meterProvider, err := observability.InitMeterProvider(a.cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize meter provider: %w", err)
	}
	a.meterProvider = meterProvider

	buildMetrics, err := observability.InitBuildMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize build metrics: %w", err)
	}
	a.buildMetrics = buildMetrics

	resolver := defaults.New(a.cfg.Defaults, a.logger, buildMetrics)
	builder := registry.NewBuilder(resolver, a.logger, buildMetrics)

	decls := make([]registry.Declaration, 0, len(a.cfg.Resources))
	for _, rc := range a.cfg.Resources {
		decls = append(decls, registry.Declaration{
			Class:          rc.Attributes.Class,
			Resource:       rc.Resource(),
			HTTPOperations: rc.Operations,
		})
	}

	resources, err := builder.Build(ctx, decls)
	if err != nil {
		return fmt.Errorf("resource build pass failed: %w", err)
	}
	a.resources = resources

	namer := naming.New(a.cfg.Naming, a.logger.Logger)
	schema, err := schemagen.Build(resources, namer, a.logger)
	if err != nil {
		return fmt.Errorf("failed to build schema preview: %w", err)
	}
	a.schema = schema

	a.handler = a.buildRouter()
	a.initialized = true
	return nil
}

// Handler returns the assembled HTTP handler. Valid after Init.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Resources returns the resolved resources. Valid after Init.
func (a *App) Resources() []metadata.Resource {
	return a.resources
}

// Start begins serving. The returned channel carries the terminal server
// error, if any.
func (a *App) Start() (<-chan error, error) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if !a.initialized {
		return nil, fmt.Errorf("app not initialized")
	}
	if a.started {
		return nil, fmt.Errorf("app already started")
	}

	a.srv = &http.Server{
		Addr:         a.cfg.Server.ListenAddr,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	a.serverErrors = make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", a.cfg.Server.ListenAddr)
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.serverErrors <- err
		}
		close(a.serverErrors)
	}()

	a.started = true
	return a.serverErrors, nil
}

// Shutdown stops the server and flushes the meter provider. Safe to call
// more than once.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	a.shutdownOnce.Do(func() {
		if a.srv != nil {
			if shutdownErr := a.srv.Shutdown(ctx); shutdownErr != nil {
				err = fmt.Errorf("server shutdown: %w", shutdownErr)
			}
		}
		if a.meterProvider != nil {
			if mpErr := a.meterProvider.Shutdown(ctx, a.logger.Logger); mpErr != nil && err == nil {
				err = mpErr
			}
		}
	})
	return err
}
