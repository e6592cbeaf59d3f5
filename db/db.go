package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/sethvargo/go-retry"
)

// Open connects to PostgreSQL at url, retrying with exponential backoff until the
// database answers a ping or attempts run out.
func Open(ctx context.Context, url string, attempts uint64) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	log := logger.WithComponent("db")
	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(500*time.Millisecond))
	backoff = retry.WithCappedDuration(10*time.Second, backoff)
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("database not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().Str("host", cfg.ConnConfig.Host).Str("database", cfg.ConnConfig.Database).Msg("database connected")
	return pool, nil
}
