package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/satheeshds/buildledger/db"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	Long: `Apply, roll back or list the embedded Postgres migrations.

Required environment variables:
  DATABASE_URL - Postgres connection string`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		return db.Migrate(cmd.Context(), pool)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.MigrateDown(cmd.Context(), pool); err != nil {
			return err
		}
		log := logger.WithComponent("migrate")
		log.Info().Msg("rolled back one migration")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		statuses, err := db.MigrationStatus(cmd.Context(), pool)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}
