// Package bootstrap wires configuration, persistence and the fault store
// into a ready-to-use application for the server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rpggio/faultdesk/internal/config"
	"github.com/rpggio/faultdesk/internal/domain/activity"
	"github.com/rpggio/faultdesk/internal/domain/fault"
	"github.com/rpggio/faultdesk/internal/domain/query"
	"github.com/rpggio/faultdesk/internal/seed"
	"github.com/rpggio/faultdesk/internal/sqlite"
)

// App holds the wired components. The store is authoritative; the database
// mirrors it through a subscribed syncer.
type App struct {
	Logger   *slog.Logger
	DB       *sqlite.DB
	Store    *fault.Store
	Engine   *query.Engine
	Cache    *query.Cache
	Activity *activity.Service
	Syncer   *fault.Syncer

	unsubscribe []func()
}

// Option customizes Open.
type Option func(*options)

type options struct {
	faultRepo fault.Repository
}

// WithFaultRepository persists faults to repo instead of the SQLite table.
func WithFaultRepository(repo fault.Repository) Option {
	return func(o *options) {
		o.faultRepo = repo
	}
}

// Open prepares the database, restores persisted faults into a new store
// and subscribes the persistence, history and cache observers.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lang, err := cfg.Query.Language()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Query.Location()
	if err != nil {
		return nil, err
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}

	var faultRepo fault.Repository = sqlite.NewFaultRepository(db)
	if o.faultRepo != nil {
		faultRepo = o.faultRepo
	}
	activityRepo := sqlite.NewActivityRepository(db)

	if cfg.Seed {
		if err := seedIfEmpty(ctx, faultRepo, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	store := fault.NewStore(fault.WithLogger(logger))
	syncer := fault.NewSyncer(faultRepo, logger)
	restored, err := syncer.Restore(ctx, store)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("restore faults: %w", err)
	}
	logger.Info("fault store ready", "db", cfg.DB.Path, "faults", restored)

	engine := query.NewEngine(query.WithLanguage(lang), query.WithLocation(loc))
	cache, err := query.NewCache(engine, cfg.Query.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	activitySvc := activity.NewService(activityRepo, store, logger)

	app := &App{
		Logger:   logger,
		DB:       db,
		Store:    store,
		Engine:   engine,
		Cache:    cache,
		Activity: activitySvc,
		Syncer:   syncer,
	}
	app.unsubscribe = append(app.unsubscribe,
		store.Subscribe(syncer.Observe),
		store.Subscribe(activitySvc.Observe),
		store.Subscribe(cache.Observe),
	)
	cache.Observe(store.Snapshot())

	return app, nil
}

// Persisted reports whether the most recent store change reached the
// database. Callers whose only lasting effect is that write check it.
func (a *App) Persisted() error {
	if err := a.Syncer.Err(); err != nil {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return nil
}

// Close detaches the observers and closes the database.
func (a *App) Close() error {
	for _, unsubscribe := range a.unsubscribe {
		unsubscribe()
	}
	a.unsubscribe = nil
	return a.DB.Close()
}

// seedIfEmpty writes the demo faults into a database that never held a
// fault. Once any id was used, even by a since deleted fault, nothing is
// seeded so the fixed demo ids cannot collide with retired ones.
func seedIfEmpty(ctx context.Context, repo fault.Repository, logger *slog.Logger) error {
	lastID, err := repo.LastID(ctx)
	if err != nil {
		return err
	}
	if lastID > 0 {
		return nil
	}

	records := seed.Faults(time.Now())
	var errs []error
	for i := range records {
		errs = append(errs, repo.Save(ctx, &records[i]))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("seed faults: %w", err)
	}
	logger.Info("seeded demo faults", "count", len(records))
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
