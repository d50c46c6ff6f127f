package workingctx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// Input holds the new working-context state.
type Input struct {
	Focus       string
	OpenThreads []string
	Notes       string
}

// Validate checks all fields and collects all errors.
func (i *Input) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Focus) == "" {
		errs = append(errs, domain.FieldError{Field: "focus", Message: "required"})
	}
	if len(i.Focus) > domain.MaxTaskLen {
		errs = append(errs, domain.FieldError{Field: "focus", Message: "max 500 characters"})
	}
	if len(i.OpenThreads) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "open_threads", Message: "too many items"})
	}
	if len(i.Notes) > domain.MaxNoteLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Service is the working-context facade consumed by the tool surface.
type Service struct {
	store *Store[domain.WorkingContext]
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a working-context service on top of a versioned repo.
func NewService(log *slog.Logger, repo Repo[domain.WorkingContext]) *Service {
	log = log.With("service", "workingctx")
	return &Service{
		store: NewStore(log, repo),
		log:   log,
		now:   time.Now,
	}
}

// Get returns the current working context with its version.
// Returns domain.ErrNotFound if it was never set.
func (s *Service) Get(ctx context.Context) (domain.Versioned[domain.WorkingContext], error) {
	return s.store.Get(ctx)
}

// Update replaces the working context through the optimistic concurrency
// loop. Surfaces domain.ErrConflict as a retryable failure when contention
// exhausts the attempts.
func (s *Service) Update(ctx context.Context, input Input) (domain.Versioned[domain.WorkingContext], error) {
	var zero domain.Versioned[domain.WorkingContext]

	if err := input.Validate(); err != nil {
		return zero, err
	}

	payload := domain.WorkingContext{
		Focus:       strings.TrimSpace(input.Focus),
		OpenThreads: domain.ClampList(input.OpenThreads, domain.MaxListItems),
		Notes:       input.Notes,
		UpdatedAt:   s.now().UTC(),
	}

	updated, err := s.store.Update(ctx, payload)
	if err != nil {
		return zero, fmt.Errorf("update working context: %w", err)
	}

	s.log.InfoContext(ctx, "working context updated",
		slog.Int64("version", updated.Version),
		slog.String("focus", updated.Payload.Focus),
	)

	return updated, nil
}
