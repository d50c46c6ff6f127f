package worklog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// StartSession begins a new work session on today's journal.
//
// Validation runs before the lock is taken; an invalid task never reaches
// the persistence layer. Inside the lock the full read-decide-write sequence
// executes: fetch-or-create today's journal, check the single-active-session
// invariant, insert. If a session is already active the call fails with
// domain.ErrSessionActive carrying the active task, and nothing is mutated.
func (s *Service) StartSession(ctx context.Context, input StartInput) (*StartResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *StartResult

	err := s.lock.with(func() error {
		now := s.clock.Now()

		// Journal create and session insert commit together.
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			journal, err := s.journals.GetOrCreateByDate(txCtx, now)
			if err != nil {
				return fmt.Errorf("get or create journal: %w", err)
			}

			if active := journal.ActiveSession(); active != nil {
				return &domain.SessionActiveError{Task: active.Task}
			}

			session := &domain.WorkSession{
				ID:        uuid.New(),
				JournalID: journal.ID,
				Task:      input.Task,
				StartedAt: now,
			}

			created, err := s.journals.AddSession(txCtx, session)
			if err != nil {
				return fmt.Errorf("add session: %w", err)
			}

			result = &StartResult{
				SessionID: created.ID,
				Task:      created.Task,
				StartedAt: created.StartedAt,
			}
			return nil
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			// The storage-level invariant fired: another writer inserted an
			// active session between our read and write. The tx is rolled
			// back; re-read outside it to surface the winner's task.
			return s.activeConflict(ctx)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SessionStarted()
	s.log.InfoContext(ctx, "session started",
		slog.String("session_id", result.SessionID.String()),
		slog.String("task", result.Task),
	)

	return result, nil
}

// EndSession terminates today's active session, copies in the supplied
// fields, and, when the session crossed the reflection threshold, runs the
// reflection pipeline synchronously. Reflection failure never fails the end:
// the session record is authoritative, the reflection is a nice-to-have.
func (s *Service) EndSession(ctx context.Context, input EndInput) (*EndResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *EndResult

	err := s.lock.with(func() error {
		now := s.clock.Now()

		journal, err := s.journals.GetByDate(ctx, now)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNoActiveSession
			}
			return fmt.Errorf("get journal: %w", err)
		}

		active := journal.ActiveSession()
		if active == nil {
			return domain.ErrNoActiveSession
		}

		end := now
		active.EndedAt = &end
		if input.Note != "" {
			note := input.Note
			active.Note = &note
		}
		active.Learnings = domain.ClampList(append(active.Learnings, input.Learnings...), domain.MaxListItems)
		active.Challenges = domain.ClampList(append(active.Challenges, input.Challenges...), domain.MaxListItems)
		active.FilesTouched = domain.ClampList(append(active.FilesTouched, input.FilesTouched...), domain.MaxListItems)
		active.Decisions = domain.ClampList(append(active.Decisions, input.Decisions...), domain.MaxListItems)

		updated, err := s.journals.UpdateSession(ctx, active)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}

		minutes := updated.DurationMinutes(now)
		result = &EndResult{
			SessionID:       updated.ID,
			Task:            updated.Task,
			DurationMinutes: minutes,
		}

		if minutes >= s.cfg.MinSessionMinutes {
			if ref := s.reflect(ctx, updated, minutes); ref != nil {
				result.Reflection = &ref.Text
			}
		} else {
			s.metrics.ReflectionOutcome("skipped")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SessionEnded(result.DurationMinutes)
	s.log.InfoContext(ctx, "session ended",
		slog.String("session_id", result.SessionID.String()),
		slog.Int("duration_minutes", result.DurationMinutes),
		slog.Bool("reflection", result.Reflection != nil),
	)

	return result, nil
}

// ActiveSession returns a snapshot of today's active session, or nil if none.
func (s *Service) ActiveSession(ctx context.Context) (*SessionInfo, error) {
	now := s.clock.Now()

	journal, err := s.journals.GetByDate(ctx, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}

	active := journal.ActiveSession()
	if active == nil {
		return nil, nil
	}

	return &SessionInfo{
		SessionID:       active.ID,
		Task:            active.Task,
		StartedAt:       active.StartedAt,
		DurationMinutes: active.DurationMinutes(now),
	}, nil
}

// UpdateJournal sets today's free-form daily fields.
func (s *Service) UpdateJournal(ctx context.Context, input JournalInput) (*domain.DailyJournal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.DailyJournal

	err := s.lock.with(func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context) error {
			journal, err := s.journals.GetOrCreateByDate(ctx, s.clock.Now())
			if err != nil {
				return fmt.Errorf("get or create journal: %w", err)
			}

			if input.Intention != nil {
				journal.Intention = input.Intention
			}
			if input.Reflection != nil {
				journal.Reflection = input.Reflection
			}
			if input.Mood != nil {
				journal.Mood = input.Mood
			}
			if input.EnergyLevel != nil {
				journal.EnergyLevel = input.EnergyLevel
			}
			if input.Wins != nil {
				journal.Wins = domain.ClampList(input.Wins, domain.MaxListItems)
			}

			saved, err = s.journals.SaveJournal(ctx, journal)
			if err != nil {
				return fmt.Errorf("save journal: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// activeConflict re-reads today's journal to name the task that won the
// insert race. Falls back to an empty task if the re-read fails.
func (s *Service) activeConflict(ctx context.Context) error {
	journal, err := s.journals.GetByDate(ctx, s.clock.Now())
	if err == nil {
		if active := journal.ActiveSession(); active != nil {
			return &domain.SessionActiveError{Task: active.Task}
		}
	}
	return &domain.SessionActiveError{}
}
