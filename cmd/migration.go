package cmd

import (
	"errors"
	"fmt"

	"reportdesk/migrations"
	"reportdesk/pkg/logger"
	"reportdesk/pkg/sqlite"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func runMigrations(cmd *cobra.Command, direction string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sqlite.Open(cfg.DB, logger.NewNop(), nil)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := db.Migrator(migrations.Files)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	}
	if errors.Is(migrationErr, migrate.ErrNoChange) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply.")
		return nil
	}
	if migrationErr != nil {
		return fmt.Errorf("migration failed: %w", migrationErr)
	}

	if direction == "up" {
		fmt.Fprintln(cmd.OutOrStdout(), "Applied migrations successfully.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Reverted last migration successfully.")
	}
	return nil
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, "up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, "down")
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
}
