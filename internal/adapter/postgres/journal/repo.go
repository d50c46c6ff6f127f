// Package journal implements the DailyJournal and WorkSession repository
// using PostgreSQL. A partial unique index on work_sessions (journal_id WHERE
// ended_at IS NULL) backs the one-active-session-per-day invariant at the
// storage layer.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/worklog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// Repo provides journal and work-session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new journal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const journalColumns = `id, date, intention, reflection, mood, energy_level, wins, created_at, updated_at`

const sessionColumns = `id, journal_id, task, started_at, ended_at, note, learnings, challenges, files_touched, decisions, created_at, updated_at`

const getJournalByDateSQL = `
SELECT ` + journalColumns + `
FROM journals
WHERE date = $1`

const createJournalSQL = `
INSERT INTO journals (id, date, created_at, updated_at)
VALUES ($1, $2, $3, $3)
RETURNING ` + journalColumns

const saveJournalSQL = `
UPDATE journals
SET intention = $2, reflection = $3, mood = $4, energy_level = $5, wins = $6, updated_at = now()
WHERE id = $1
RETURNING ` + journalColumns

const getSessionsByJournalSQL = `
SELECT ` + sessionColumns + `
FROM work_sessions
WHERE journal_id = $1
ORDER BY started_at, created_at`

const addSessionSQL = `
INSERT INTO work_sessions (id, journal_id, task, started_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + sessionColumns

const updateSessionSQL = `
UPDATE work_sessions
SET ended_at = COALESCE(ended_at, $2),
    note = $3,
    learnings = $4,
    challenges = $5,
    files_touched = $6,
    decisions = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + sessionColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByDate returns the journal for a calendar date with its sessions loaded.
// Returns domain.ErrNotFound if no journal exists for that date.
func (r *Repo) GetByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getJournalByDateSQL, domain.DateOnly(date))

	journal, err := scanJournal(row)
	if err != nil {
		return nil, postgres.MapError(err, "journal", uuid.Nil)
	}

	if err := r.loadSessions(ctx, journal); err != nil {
		return nil, err
	}

	return journal, nil
}

// GetOrCreateByDate returns the journal for a date, creating an empty one if
// absent. A concurrent create losing the unique-date race falls back to
// re-reading the winner's row.
func (r *Repo) GetOrCreateByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
	journal, err := r.GetByDate(ctx, date)
	if err == nil {
		return journal, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := querier.QueryRow(ctx, createJournalSQL, uuid.New(), domain.DateOnly(date), now)

	created, err := scanJournal(row)
	if err != nil {
		if errors.Is(postgres.MapError(err, "journal", uuid.Nil), domain.ErrAlreadyExists) {
			// Lost the unique-date race; the winner's journal exists now.
			return r.GetByDate(ctx, date)
		}
		return nil, postgres.MapError(err, "journal", uuid.Nil)
	}

	created.Sessions = []domain.WorkSession{}
	return created, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// AddSession inserts a new work session into a journal.
// The partial unique index on active sessions turns a second concurrent
// insert of an unterminated session into domain.ErrAlreadyExists.
func (r *Repo) AddSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	startedAt := session.StartedAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, addSessionSQL,
		session.ID,
		session.JournalID,
		session.Task,
		startedAt,
		now,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "work_session", session.ID)
	}

	return created, nil
}

// UpdateSession persists the mutable fields of a session. ended_at is written
// through COALESCE so a set end timestamp is never cleared or moved.
func (r *Repo) UpdateSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var endedAt *time.Time
	if session.EndedAt != nil {
		t := session.EndedAt.UTC().Truncate(time.Microsecond)
		endedAt = &t
	}

	row := querier.QueryRow(ctx, updateSessionSQL,
		session.ID,
		endedAt,
		session.Note,
		session.Learnings,
		session.Challenges,
		session.FilesTouched,
		session.Decisions,
	)

	updated, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "work_session", session.ID)
	}

	return updated, nil
}

// SaveJournal persists the journal's daily fields (intention, reflection,
// mood, energy, wins). Sessions are managed through AddSession/UpdateSession.
func (r *Repo) SaveJournal(ctx context.Context, journal *domain.DailyJournal) (*domain.DailyJournal, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, saveJournalSQL,
		journal.ID,
		journal.Intention,
		journal.Reflection,
		journal.Mood,
		journal.EnergyLevel,
		journal.Wins,
	)

	saved, err := scanJournal(row)
	if err != nil {
		return nil, postgres.MapError(err, "journal", journal.ID)
	}

	saved.Sessions = journal.Sessions
	return saved, nil
}

// loadSessions attaches the journal's sessions ordered by start time.
func (r *Repo) loadSessions(ctx context.Context, journal *domain.DailyJournal) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getSessionsByJournalSQL, journal.ID)
	if err != nil {
		return fmt.Errorf("load sessions for journal %s: %w", journal.ID, err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return fmt.Errorf("load sessions for journal %s: %w", journal.ID, err)
	}

	journal.Sessions = sessions
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanJournal(row pgx.Row) (*domain.DailyJournal, error) {
	var j domain.DailyJournal

	err := row.Scan(
		&j.ID,
		&j.Date,
		&j.Intention,
		&j.Reflection,
		&j.Mood,
		&j.EnergyLevel,
		&j.Wins,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func scanSession(row pgx.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession

	err := row.Scan(
		&s.ID,
		&s.JournalID,
		&s.Task,
		&s.StartedAt,
		&s.EndedAt,
		&s.Note,
		&s.Learnings,
		&s.Challenges,
		&s.FilesTouched,
		&s.Decisions,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func scanSessions(rows pgx.Rows) ([]domain.WorkSession, error) {
	sessions := []domain.WorkSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}
