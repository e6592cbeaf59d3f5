package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/buildledger/db"
	"github.com/satheeshds/buildledger/internal/config"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/internal/memstore"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/storage"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "buildledger",
	Short: "BuildLedger - invoices, purchase orders and spend for construction projects",
	Long: `BuildLedger tracks vendor invoices and purchase orders per construction project and
reconciles paid invoices into project expenses.

Run "buildledger serve" to start the HTTP API.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(c *config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// backend is the store selected by DATABASE_URL.
type backend struct {
	store  ledger.Store
	quotas storage.QuotaStore
	pool   *pgxpool.Pool
}

func (b *backend) ping(ctx context.Context) error {
	if b.pool == nil {
		return nil
	}
	return b.pool.Ping(ctx)
}

func (b *backend) close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// openBackend connects to Postgres and applies migrations, or falls back to the memory
// store when no database is configured.
func openBackend(ctx context.Context) (*backend, error) {
	log := logger.WithComponent("cmd")
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, using the in-memory store; data is lost on exit")
		s := memstore.New()
		return &backend{store: s, quotas: s}, nil
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	s := db.NewStore(pool)
	return &backend{store: s, quotas: s, pool: pool}, nil
}

// requirePool opens the database for commands that only make sense against Postgres.
func requirePool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Open(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts)
}
