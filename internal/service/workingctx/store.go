// Package workingctx maintains the singleton working-context record under
// optimistic concurrency: a stale write is detected via a version check and
// retried from a fresh read, never silently applied.
package workingctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// DefaultMaxAttempts bounds the read-CAS retry loop.
const DefaultMaxAttempts = 3

// Repo is the storage contract for one versioned singleton record.
type Repo[T any] interface {
	Get(ctx context.Context) (domain.Versioned[T], error)
	Insert(ctx context.Context, payload T) error
	CompareAndSwap(ctx context.Context, payload T, expected int64) (bool, error)
}

// Store updates a versioned singleton record with the optimistic concurrency
// loop: read the current version, attempt a conditional write, retry on a
// version mismatch, and fail with domain.ErrConflict once attempts are
// exhausted. Cheap when uncontested, correct under contention.
type Store[T any] struct {
	repo        Repo[T]
	maxAttempts int
	log         *slog.Logger
}

// NewStore creates a store with DefaultMaxAttempts.
func NewStore[T any](log *slog.Logger, repo Repo[T]) *Store[T] {
	return &Store[T]{
		repo:        repo,
		maxAttempts: DefaultMaxAttempts,
		log:         log,
	}
}

// Get returns the current record.
func (s *Store[T]) Get(ctx context.Context) (domain.Versioned[T], error) {
	return s.repo.Get(ctx)
}

// Update writes payload as the new record state. An absent record is created
// at version 0; otherwise the stored version must still match the one just
// read, or the write is retried from step one. A caller seeing
// domain.ErrConflict must not assume its update was applied.
func (s *Store[T]) Update(ctx context.Context, payload T) (domain.Versioned[T], error) {
	var zero domain.Versioned[T]

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, err := s.repo.Get(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return zero, fmt.Errorf("read current: %w", err)
			}

			err := s.repo.Insert(ctx, payload)
			if err == nil {
				return domain.Versioned[T]{Payload: payload, Version: 0}, nil
			}
			if errors.Is(err, domain.ErrAlreadyExists) {
				// Lost the create race; the record exists now, retry as an update.
				continue
			}
			return zero, fmt.Errorf("insert: %w", err)
		}

		ok, err := s.repo.CompareAndSwap(ctx, payload, current.Version)
		if err != nil {
			return zero, fmt.Errorf("conditional write: %w", err)
		}
		if ok {
			return domain.Versioned[T]{Payload: payload, Version: current.Version + 1}, nil
		}

		s.log.Debug("version conflict, retrying",
			slog.Int("attempt", attempt),
			slog.Int64("stale_version", current.Version),
		)
	}

	return zero, fmt.Errorf("update after %d attempts: %w", s.maxAttempts, domain.ErrConflict)
}
