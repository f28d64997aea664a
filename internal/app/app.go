package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tomvoss/rezdesk/internal/backend"
	"github.com/tomvoss/rezdesk/internal/config"
	"github.com/tomvoss/rezdesk/internal/editbuf"
	"github.com/tomvoss/rezdesk/internal/fetch"
	"github.com/tomvoss/rezdesk/internal/logging"
	"github.com/tomvoss/rezdesk/internal/poll"
	"github.com/tomvoss/rezdesk/internal/prefs"
	"github.com/tomvoss/rezdesk/internal/state"
	"github.com/tomvoss/rezdesk/internal/ui"
)

// Options configure the Rezdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/rezdesk/prefs.toml
	Table      string // overrides configured table when set
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the Rezdesk TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Table != "" {
		cfg.Table = opts.Table
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	// Setup falls back to a discard logger; a broken log path never takes
	// the app down.
	logger, closeLog, err := logging.Setup(cfg.LogPath())
	if err != nil {
		closeLog = func() error { return nil }
	}
	defer func() { _ = closeLog() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:   ctx,
		Config:    cfg,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		UserPrefs: userPrefs,
	}

	// Missing credentials are not fatal: the UI starts in a degraded mode
	// that explains how to configure the backend.
	if err := cfg.Validate(); err != nil {
		logger.Warn("starting without backend", "error", err.Error())
		uiOpts.ConfigErr = err
		return ui.Run(uiOpts)
	}

	client, err := backend.NewClient(cfg.BackendURL, cfg.BackendKey)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	store := &state.Store{}
	fetcher := fetch.New(client, cfg.Table)
	edits := editbuf.New()

	// Populate the store before the UI draws its first frame. A failure
	// here is recoverable; the scheduler keeps trying.
	refresh(ctx, fetcher, store, logger)

	scheduler := poll.New(func(ctx context.Context) {
		refresh(ctx, fetcher, store, logger)
	}, cfg.PollEvery)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start poll scheduler: %w", err)
	}
	defer scheduler.Stop()

	logger.Info("rezdesk started",
		"backend", cfg.BackendURL,
		"table", cfg.Table,
		"poll", cfg.PollEvery.String())

	uiOpts.Service = client
	uiOpts.Fetcher = fetcher
	uiOpts.Store = store
	uiOpts.Edits = edits
	return ui.Run(uiOpts)
}

// refresh runs one silent background fetch and folds the outcome into the
// store. Errors are logged, never surfaced; the UI reads them via snapshots.
func refresh(ctx context.Context, fetcher *fetch.Fetcher, store *state.Store, logger *slog.Logger) {
	result, err := fetcher.Fetch(ctx, fetch.Options{Silent: true})
	if err != nil {
		store.Update(nil, err)
		logger.Warn("background fetch failed", "error", err.Error())
		return
	}
	store.Update(&result, nil)
	if result.NewRows > 0 {
		logger.Info("new bookings", "count", result.NewRows, "total", len(result.Rows))
	}
}
