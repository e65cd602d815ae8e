package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	perr "tailortalk/internal/platform/errors"
)

// one statement per entry; pgx's extended protocol rejects batches
var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id       UUID        PRIMARY KEY,
		summary  TEXT        NOT NULL,
		start_at TIMESTAMPTZ NOT NULL,
		end_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS calendar_events_start_idx ON calendar_events (start_at)`,
}

// PGStore persists events in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore ensures the events table exists and returns the store.
func NewPGStore(ctx context.Context, pool *pgxpool.Pool) (*PGStore, error) {
	for _, stmt := range pgSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "pgstore: ensure schema")
		}
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Insert(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO calendar_events (id, summary, start_at, end_at) VALUES ($1, $2, $3, $4)`,
		ev.ID, ev.Summary, ev.Start, ev.End)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "pgstore: insert")
	}
	return nil
}

func (s *PGStore) ListBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, summary, start_at, end_at
		   FROM calendar_events
		  WHERE start_at < $2 AND end_at > $1
		  ORDER BY start_at`,
		from, to)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "pgstore: list between")
	}
	return scanEvents(rows)
}

func (s *PGStore) ListFrom(ctx context.Context, from time.Time, limit int) ([]Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, summary, start_at, end_at
		   FROM calendar_events
		  WHERE start_at >= $1
		  ORDER BY start_at
		  LIMIT $2`,
		from, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "pgstore: list from")
	}
	return scanEvents(rows)
}

func (s *PGStore) Update(ctx context.Context, ev Event) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE calendar_events SET summary = $2, start_at = $3, end_at = $4 WHERE id = $1`,
		ev.ID, ev.Summary, ev.Start, ev.End)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "pgstore: update")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("pgstore: event %s", ev.ID)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "pgstore: delete")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("pgstore: event %s", id)
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Summary, &ev.Start, &ev.End); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "pgstore: scan")
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "pgstore: rows")
	}
	return out, nil
}
