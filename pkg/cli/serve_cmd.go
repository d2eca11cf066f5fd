package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dash-demo/internal/api"
	"dash-demo/internal/app"
	"dash-demo/internal/config"
	internaldb "dash-demo/internal/db"
	"dash-demo/internal/middleware"
)

// newServeCmd runs the dashboard HTTP server against the store at --db. It is
// a lighter entry point than cmd/server: no .env loading, flags instead of
// environment variables.
func newServeCmd(dbPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			writeDB, readDB, err := internaldb.OpenSQLitePair(*dbPath, 4)
			if err != nil {
				return fmt.Errorf("open dashboard store: %w", err)
			}
			defer writeDB.Close()
			defer readDB.Close()

			if err := internaldb.RunMigrations(writeDB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			application, err := app.New(cmd.Context(), app.Deps{
				Cfg:     &config.Config{DBPath: *dbPath, ListenAddr: addr},
				WriteDB: writeDB,
				ReadDB:  readDB,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(chimw.Logger)
			r.Use(chimw.Recoverer)
			r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"status":"ok"}`)
			})
			handler := api.NewHandler(application.Dashboard, application.Catalog, logger.With("component", "api"))
			r.Route("/v1", handler.Routes)

			srv := &http.Server{
				Addr:         addr,
				Handler:      r,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			g, gctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				logger.Info("dashboard server listening", "addr", addr, "db", *dbPath)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
