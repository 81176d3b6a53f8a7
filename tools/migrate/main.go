package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/orgball2608/social-post-fetcher/internal/migrations"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var createDir string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the cache_entries schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.DownContext(ctx, db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		fmt.Println("Migration rollback successful")
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every migration",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		return goose.StatusContext(ctx, db, migrations.Dir)
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back all migrations",
	RunE: withDB(func(ctx context.Context, db *sql.DB) error {
		if err := goose.ResetContext(ctx, db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		fmt.Println("All migrations have been rolled back")
		return nil
	}),
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new Go migration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Creating migration in: %s\n", createDir)
		if err := goose.Create(nil, createDir, args[0], "go"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDir, "dir", "internal/migrations", "directory the new migration is written to")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, resetCmd, createCmd)
}

// withDB opens the configured database for the duration of fn.
func withDB(fn func(ctx context.Context, db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := migrations.Open(cfg.GetDSN())
		if err != nil {
			return err
		}
		defer db.Close()

		return fn(cmd.Context(), db)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
