// Package pg owns the Postgres connection pool.
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tailortalk/internal/platform/config"
	perr "tailortalk/internal/platform/errors"
)

// seam for tests
var newPool = pgxpool.NewWithConfig

// DB wraps a pgx pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Open parses SERVICE_PGSQL_* style settings from cfg and connects.
// The pool is pinged before being handed back.
func Open(ctx context.Context, cfg config.Conf) (*DB, error) {
	url := cfg.MayString("DBURL", "")
	if url == "" {
		return nil, perr.InvalidArgf("pg: DBURL is required")
	}

	pcfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "pg: parse DBURL")
	}
	pcfg.MaxConns = int32(cfg.MayInt("MAX_CONNS", 8))

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "pg: connect")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "pg: ping")
	}
	return &DB{Pool: pool}, nil
}

// Close releases the pool.
func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}
