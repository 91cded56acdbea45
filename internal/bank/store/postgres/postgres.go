// Package postgres implements the bank store ports on PostgreSQL via pgx.
// Stores join an enclosing transaction when the TxRunner has put one into
// the context.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"girobank/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	birth_date DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	balance_cents BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS account_accesses (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT NOT NULL REFERENCES clients (id),
	account_id BIGINT NOT NULL REFERENCES accounts (id),
	is_owner BOOLEAN NOT NULL,
	UNIQUE (client_id, account_id)
);
`

// Connect opens a pgx pool against the given URL and verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the enclosing transaction if one is in the context, else the pool.
func q(ctx context.Context, pool *pgxpool.Pool) querier {
	if dbtx, ok := tx.From(ctx); ok {
		return dbtx
	}
	return pool
}

func inTx(ctx context.Context) bool {
	_, ok := tx.From(ctx)
	return ok
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// TxRunner runs units of work in a single database transaction. Nested
// calls join the enclosing transaction instead of opening a new one.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner creates a TxRunner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (t *TxRunner) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	dbtx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = dbtx.Rollback(ctx) }()
	if err := fn(tx.With(ctx, dbtx)); err != nil {
		return err
	}
	if err := dbtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
