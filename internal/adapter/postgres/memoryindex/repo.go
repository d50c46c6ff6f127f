// Package memoryindex implements the reflection search index using
// PostgreSQL full-text search. Indexed content is a denormalized snapshot of
// the reflection text plus its session task, ranked with ts_rank at query
// time.
package memoryindex

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worklog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// Repo provides the reflection search index backed by PostgreSQL FTS.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new memory index repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const indexSQL = `
INSERT INTO reflection_index (id, content, indexed_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, indexed_at = now()`

const searchSQL = `
SELECT id, content, ts_rank(tsv, query) AS rank
FROM reflection_index, plainto_tsquery('english', $1) AS query
WHERE tsv @@ query
ORDER BY rank DESC
LIMIT $2`

// Index upserts a document into the search index.
func (r *Repo) Index(ctx context.Context, id uuid.UUID, content string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, indexSQL, id, content); err != nil {
		return fmt.Errorf("index reflection %s: %w", id, err)
	}
	return nil
}

// Search returns up to limit documents matching the query, best first.
// An empty query or a query with no lexemes returns no hits.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, searchSQL, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search reflections: %w", err)
	}
	defer rows.Close()

	var hits []domain.MemoryHit
	for rows.Next() {
		var (
			id      uuid.UUID
			content string
			rank    float64
		)
		if err := rows.Scan(&id, &content, &rank); err != nil {
			return nil, fmt.Errorf("search reflections: %w", err)
		}
		hits = append(hits, domain.MemoryHit{ID: id.String(), Content: content, Score: rank})
	}

	return hits, rows.Err()
}
