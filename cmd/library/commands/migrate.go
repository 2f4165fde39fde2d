package commands

import (
	"database/sql"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Astemirdum/library-ledger/library/config"
	"github.com/Astemirdum/library-ledger/library/migrations"
	"github.com/Astemirdum/library-ledger/pkg/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the embedded database schema.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the latest migration
  status  - Show migration status`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, postgres.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, postgres.MigrateDown)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, postgres.MigrationStatus)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, run func(*sql.DB, fs.FS) error) error {
	ops, err := options()
	if err != nil {
		return err
	}
	cfg, err := config.Load(os.Getenv(config.FileEnv), ops...)
	if err != nil {
		return err
	}
	db, err := postgres.Connect(cmd.Context(), &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return run(db.DB, migrations.MigrationFiles)
}
