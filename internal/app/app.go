// Package app provides application-level wiring for the dashboard server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"dash-demo/internal/catalog"
	"dash-demo/internal/config"
	"dash-demo/internal/db/repository"
	"dash-demo/internal/pipeline"
	"dash-demo/internal/service/dashboard"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Catalog   *catalog.Catalog
	Engine    *pipeline.Engine
	Store     *repository.DashboardRepo
	Dashboard *dashboard.Service
}

// New wires the catalog, query pipeline, store, and dashboard service, then
// loads the persisted dashboard (seeding a default when none exists).
func New(ctx context.Context, deps Deps) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	engine := pipeline.New(cat, catalog.MockSource{})
	store := repository.NewDashboardRepo(deps.WriteDB, deps.ReadDB)
	svc := dashboard.New(cat, engine, store, deps.Logger.With("component", "dashboard"))

	if err := svc.Load(ctx); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	return &App{
		Catalog:   cat,
		Engine:    engine,
		Store:     store,
		Dashboard: svc,
	}, nil
}
