// Package cli implements the dashboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"dash-demo/internal/app"
	"dash-demo/internal/config"
	internaldb "dash-demo/internal/db"
)

var version = "dev"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "dash",
		Short:         "Dashboard builder CLI",
		Long:          "Command-line interface for the dashboard builder store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "dashboards.sqlite", "path to the SQLite dashboard store")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd(&dbPath))
	rootCmd.AddCommand(newSeedCmd(&dbPath))
	rootCmd.AddCommand(newExportCmd(&dbPath))
	return rootCmd
}

// openApp opens the store at dbPath, runs migrations, and wires the app.
// The caller must invoke the returned cleanup function.
func openApp(cmd *cobra.Command, dbPath string) (*app.App, func(), error) {
	writeDB, readDB, err := internaldb.OpenSQLitePair(dbPath, 4)
	if err != nil {
		return nil, nil, fmt.Errorf("open dashboard store: %w", err)
	}
	closeAll := func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	}

	if err := internaldb.RunMigrations(writeDB); err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	application, err := app.New(cmd.Context(), app.Deps{
		Cfg:     &config.Config{DBPath: dbPath},
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return application, closeAll, nil
}
