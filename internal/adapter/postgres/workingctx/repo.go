// Package workingctx implements the versioned working-context singleton
// using PostgreSQL. The table holds at most one row (id = 1, enforced by a
// check constraint); updates are conditional on the stored version so the
// service layer can run an optimistic concurrency loop on top.
package workingctx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worklog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// Repo provides working-context persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new working-context repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT payload, version
FROM working_context
WHERE id = 1`

const insertSQL = `
INSERT INTO working_context (id, payload, version, updated_at)
VALUES (1, $1, 0, $2)`

const casSQL = `
UPDATE working_context
SET payload = $1, version = version + 1, updated_at = $2
WHERE id = 1 AND version = $3`

// Get returns the singleton record with its version.
// Returns domain.ErrNotFound if the record was never created.
func (r *Repo) Get(ctx context.Context) (domain.Versioned[domain.WorkingContext], error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		payload []byte
		version int64
	)
	if err := querier.QueryRow(ctx, getSQL).Scan(&payload, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Versioned[domain.WorkingContext]{}, fmt.Errorf("working context: %w", domain.ErrNotFound)
		}
		return domain.Versioned[domain.WorkingContext]{}, fmt.Errorf("working context: %w", err)
	}

	var wc domain.WorkingContext
	if err := json.Unmarshal(payload, &wc); err != nil {
		return domain.Versioned[domain.WorkingContext]{}, fmt.Errorf("working context: unmarshal payload: %w", err)
	}

	return domain.Versioned[domain.WorkingContext]{Payload: wc, Version: version}, nil
}

// Insert creates the singleton record at version 0.
// Returns domain.ErrAlreadyExists if a concurrent writer created it first.
func (r *Repo) Insert(ctx context.Context, payload domain.WorkingContext) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("working context: marshal payload: %w", err)
	}

	if _, err := querier.Exec(ctx, insertSQL, data, time.Now().UTC()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("working context: %w", domain.ErrAlreadyExists)
		}
		return fmt.Errorf("working context: %w", err)
	}

	return nil
}

// CompareAndSwap writes payload with version expected+1 only if the stored
// version still equals expected. Returns false (and no error) on a version
// mismatch; the caller retries from a fresh read.
func (r *Repo) CompareAndSwap(ctx context.Context, payload domain.WorkingContext, expected int64) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	data, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("working context: marshal payload: %w", err)
	}

	ct, err := querier.Exec(ctx, casSQL, data, time.Now().UTC(), expected)
	if err != nil {
		return false, fmt.Errorf("working context: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}
