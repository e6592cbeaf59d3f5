// Package db is the PostgreSQL implementation of ledger.Store and of the attachment
// quota store.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/models"
)

var _ ledger.Store = (*Store)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store runs queries on the pool, or on a transaction inside WithTx.
type Store struct {
	pool *pgxpool.Pool
	q    querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// WithTx runs fn in a transaction. Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx ledger.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&Store{pool: s.pool, q: tx, inTx: true})
	})
}

// Postgres error codes mapped to ledger errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// mapError wraps err with op and translates constraint violations.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, models.Conflict(pgErr.ConstraintName+" already exists"))
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, models.NewValidationError("", "referenced record does not exist ("+pgErr.ConstraintName+")"))
		case checkViolation:
			return fmt.Errorf("%s: %w", op, models.NewValidationError("", "value violates "+pgErr.ConstraintName))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound maps pgx.ErrNoRows to the entity's not-found error.
func notFound(entity string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NotFound(entity)
	}
	return mapError("reading "+entity, err)
}

// where collects conditional filters with numbered placeholders.
type where struct {
	conditions []string
	args       []any
}

// add appends a condition; each "?" in cond is replaced by the next placeholder.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conditions = append(w.conditions, cond)
}

func (w *where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// dateArg converts an optional YYYY-MM-DD string to a DATE parameter.
func dateArg(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := models.ParseDate(*s)
	if err != nil {
		return nil, models.NewValidationError("date", "dates must be YYYY-MM-DD")
	}
	return &t, nil
}

// searchPattern builds an ILIKE pattern matching s anywhere.
func searchPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type scanner interface{ Scan(...any) error }
