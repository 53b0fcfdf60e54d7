package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"storefinder/internal/config"
	"storefinder/internal/eventbus"
	"storefinder/internal/logging"
	"storefinder/internal/search"
	"storefinder/internal/storeapi"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	endpoint   string
	pageSize   int
	debounce   time.Duration
	timeout    time.Duration
	logFile    string
	debug      bool
}

// app holds the services one command invocation wires together
type app struct {
	cfg       *config.Config
	configSvc config.ConfigService
	bus       eventbus.EventBus
	logger    *slog.Logger
	client    *storeapi.Client
	cleanup   func()
}

// newApp loads the configuration, applies flag overrides and starts logging
func newApp(opts *globalOptions, changed func(name string) bool) (*app, error) {
	// The bus logs to the default logger until the configured one exists
	bus := eventbus.New()
	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)

	cfg, err := configSvc.Load()
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if changed("page-size") {
		cfg.Search.PageSize = opts.pageSize
	}
	if changed("debounce") {
		cfg.Search.Debounce = config.Duration{Duration: opts.debounce}
	}
	if changed("timeout") {
		cfg.Search.Timeout = config.Duration{Duration: opts.timeout}
	}
	if changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		bus.Close()
		return nil, err
	}

	logger, cleanup, err := logging.Setup(logging.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		bus.Close()
		return nil, err
	}

	client, err := storeapi.NewClient(cfg.Endpoint,
		storeapi.WithTimeout(cfg.Search.Timeout.Duration),
		storeapi.WithLogger(logger),
	)
	if err != nil {
		cleanup()
		bus.Close()
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		configSvc: configSvc,
		bus:       bus,
		logger:    logger,
		client:    client,
		cleanup:   cleanup,
	}
	a.logEvents()

	logger.Info("storefinder started",
		slog.String("config", configSvc.Path()),
		slog.String("endpoint", cfg.Endpoint),
		slog.Int("page_size", cfg.Search.PageSize),
		slog.Duration("debounce", cfg.Search.Debounce.Duration),
	)
	return a, nil
}

// dispatcher creates a dispatcher over the app's client. debounce < 0 uses the configured window.
func (a *app) dispatcher(debounce time.Duration, notify func(search.Snapshot)) *search.Dispatcher {
	if debounce < 0 {
		debounce = a.cfg.Search.Debounce.Duration
	}
	return search.NewDispatcher(a.client,
		search.WithDebounce(debounce),
		search.WithPageSize(a.cfg.Search.PageSize),
		search.WithBus(a.bus),
		search.WithLogger(a.logger),
		search.WithNotify(notify),
	)
}

// logEvents mirrors search lifecycle events into the log
func (a *app) logEvents() {
	a.bus.Subscribe(eventbus.EventStaleResponse, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.StaleResponseEvent); ok {
			a.logger.Debug("stale response",
				slog.String("query", event.Request.Query),
				slog.String("current", event.CurrentQuery),
			)
		}
	})
	a.bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FetchFailedEvent); ok {
			a.logger.Error("search request failed",
				slog.String("query", event.Request.Query),
				slog.Int("offset", event.Request.Offset),
				slog.String("error", event.Err.Error()),
			)
		}
	})
	a.bus.Subscribe(eventbus.EventPageApplied, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.PageAppliedEvent); ok {
			a.logger.Info("page applied",
				slog.String("query", event.Request.Query),
				slog.Int("displayed", event.Displayed),
				slog.Int("total", event.TotalCount),
			)
		}
	})
	a.bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			a.logger.Info("config saved", slog.String("path", event.Path))
		}
	})
}

// Close stops the bus and flushes the log file
func (a *app) Close() {
	a.bus.Close()
	a.cleanup()
}
