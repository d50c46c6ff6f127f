// Package reflection implements the SessionReflection repository using
// PostgreSQL. Reflections are immutable: the repository exposes insert and
// read operations only.
package reflection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worklog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// Repo provides session reflection persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reflection repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const reflectionColumns = `id, session_id, duration_minutes, text, key_insights, related_memories, created_at`

const createSQL = `
INSERT INTO session_reflections (id, session_id, duration_minutes, text, key_insights, related_memories, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + reflectionColumns

const getBySessionIDSQL = `
SELECT ` + reflectionColumns + `
FROM session_reflections
WHERE session_id = $1`

// Create inserts a reflection. A session can have at most one reflection;
// a duplicate insert returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, reflection *domain.SessionReflection) (*domain.SessionReflection, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		reflection.ID,
		reflection.SessionID,
		reflection.DurationMinutes,
		reflection.Text,
		reflection.KeyInsights,
		reflection.RelatedMemories,
		now,
	)

	created, err := scanReflection(row)
	if err != nil {
		return nil, mapError(err, reflection.ID)
	}

	return created, nil
}

// GetBySessionID returns the reflection derived from a session.
// Returns domain.ErrNotFound if the session has no reflection.
func (r *Repo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.SessionReflection, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getBySessionIDSQL, sessionID)

	reflection, err := scanReflection(row)
	if err != nil {
		return nil, mapError(err, sessionID)
	}

	return reflection, nil
}

func scanReflection(row pgx.Row) (*domain.SessionReflection, error) {
	var ref domain.SessionReflection

	err := row.Scan(
		&ref.ID,
		&ref.SessionID,
		&ref.DurationMinutes,
		&ref.Text,
		&ref.KeyInsights,
		&ref.RelatedMemories,
		&ref.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &ref, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "reflection", id)
}
