// Package postgres backs the storage contract with a relational store.
// The pool is small and the connect timeout generous because the target
// environment is serverless in front of a suspendable database: a cold
// backend can take ten-plus seconds to wake, and many process instances
// each hold their own pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dhalverson/homebase/core"
)

const (
	maxConns       = 3
	connectTimeout = 15 * time.Second
	queryTimeout   = 5 * time.Second
)

type Adapter struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

var _ core.AuthStorage = (*Adapter)(nil)

// New parses the connection string and constructs the pool. Connections
// are established lazily; a sleeping database does not fail startup.
func New(dsn string, log zerolog.Logger) (*Adapter, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return &Adapter{pool: pool, log: log}, nil
}

func (a *Adapter) Close() {
	a.pool.Close()
}

// opContext bounds a single query. Connection acquisition still gets the
// longer connect timeout from the pool config; this caps the query
// itself so a wedged statement surfaces as an error, not a hang.
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
