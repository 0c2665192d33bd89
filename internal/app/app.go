package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"CatalogLens/internal/config"
	"CatalogLens/internal/domain"
	"CatalogLens/internal/infrastructure/catalogapi"
	"CatalogLens/internal/infrastructure/markup"
	"CatalogLens/internal/infrastructure/scheduler"
	"CatalogLens/internal/infrastructure/storage"
	"CatalogLens/internal/logging"
	"CatalogLens/internal/narrative"
	"CatalogLens/internal/presenter"
	"CatalogLens/internal/source"
	"CatalogLens/internal/usecase"
)

const (
	// SourceAPI reads statistics from the dashboard backend.
	SourceAPI = "api"
	// SourceDB computes statistics straight from Postgres.
	SourceDB = "db"
)

// Application wires configs to use cases and the terminal presenter.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	dashboard *usecase.Dashboard
	out       *presenter.Terminal
	publish   func(time.Time, usecase.Overview, error)

	dbMu sync.Mutex
	db   *sql.DB
}

// New builds the application. sourceName picks the statistics backend;
// an empty name means SourceAPI.
func New(cfg config.Config, sourceName string, out io.Writer, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if sourceName == "" {
		sourceName = SourceAPI
	}

	a := &Application{
		cfg:    cfg,
		logger: baseLogger,
		out:    presenter.NewTerminal(out),
	}
	a.publish = a.out.Refreshed

	client := catalogapi.NewClient(cfg.API, nil, baseLogger.With("component", "catalogapi"))

	registry := source.NewRegistry()
	registry.Register(source.New(SourceAPI, client.TableStats))
	registry.Register(source.New(SourceDB, a.postgresStats))

	stats, err := registry.Resolve(sourceName)
	if err != nil {
		return nil, err
	}

	a.dashboard = usecase.NewDashboard(usecase.DashboardDeps{
		Stats:           stats,
		Searcher:        client,
		Catalog:         client,
		Analyst:         client,
		Cleaner:         markup.NewCleaner(),
		Segmenter:       narrative.NewSegmenter(nil),
		SearchLimit:     cfg.Search.Limit,
		DefaultQuestion: cfg.Search.DefaultQuestion,
		Logger:          baseLogger.With("component", "dashboard"),
	})
	return a, nil
}

// Dashboard exposes the use cases.
func (a *Application) Dashboard() *usecase.Dashboard {
	return a.dashboard
}

// Presenter exposes the terminal renderer.
func (a *Application) Presenter() *presenter.Terminal {
	return a.out
}

// Watch refreshes the overview on the configured interval until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	refresher := usecase.NewRefresher(
		scheduler.NewIntervalScheduler(a.cfg.Dashboard.RefreshInterval),
		a.dashboard,
		a.publish,
	)
	if err := refresher.Start(ctx); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}
	a.logger.Info("watching dashboard", "interval", a.cfg.Dashboard.RefreshInterval)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := refresher.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop refresher: %w", err)
	}
	return nil
}

// Close releases the database connection if one was opened.
func (a *Application) Close() error {
	a.dbMu.Lock()
	defer a.dbMu.Unlock()
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *Application) postgresStats(ctx context.Context) ([]domain.TableStatistic, error) {
	db, err := a.database(ctx)
	if err != nil {
		return nil, err
	}
	stats := storage.NewPostgresStatsSource(db, a.cfg.Database, a.logger.With("component", "storage"))
	return stats.TableStats(ctx)
}

func (a *Application) database(ctx context.Context) (*sql.DB, error) {
	a.dbMu.Lock()
	defer a.dbMu.Unlock()
	if a.db != nil {
		return a.db, nil
	}
	db, err := storage.Open(ctx, a.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}
