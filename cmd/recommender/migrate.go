package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the candidate and posting tables",
	Long:  "Applies the embedded schema to DATABASE_URL. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	database, err := openDatabase(cmd.Context(), "migrate")
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
	return nil
}

// openDatabase connects to Postgres for commands that write to it directly.
func openDatabase(ctx context.Context, command string) (*db.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend != config.BackendPostgres {
		return nil, fmt.Errorf("%s requires the %s backend, got %s", command, config.BackendPostgres, cfg.Store.Backend)
	}
	return db.Connect(ctx, cfg.Store.DatabaseURL)
}
