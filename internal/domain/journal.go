package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field limits enforced at the service boundary.
const (
	MaxTaskLen     = 500
	MaxNoteLen     = 2000
	MaxListItems   = 20
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// WorkSession is a single stretch of work on one task within a daily journal.
type WorkSession struct {
	ID        uuid.UUID
	JournalID uuid.UUID
	Task      string
	StartedAt time.Time
	EndedAt   *time.Time
	Note      *string

	Learnings    []string
	Challenges   []string
	FilesTouched []string
	Decisions    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the session has not been ended yet.
func (s *WorkSession) IsActive() bool {
	return s.EndedAt == nil
}

// DurationMinutes returns wall-clock minutes from start to end, or from start
// to now for an active session. Never negative.
func (s *WorkSession) DurationMinutes(now time.Time) int {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	minutes := int(end.Sub(s.StartedAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// DailyJournal aggregates one calendar day: its work sessions plus free-form
// daily fields. Date is unique: at most one journal per day.
type DailyJournal struct {
	ID   uuid.UUID
	Date time.Time

	Intention   *string
	Reflection  *string
	Mood        *string
	EnergyLevel *int
	Wins        []string

	Sessions []WorkSession

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveSession returns the journal's unterminated session, or nil if every
// session has ended. The repository layer guarantees at most one exists.
func (j *DailyJournal) ActiveSession() *WorkSession {
	for i := range j.Sessions {
		if j.Sessions[i].IsActive() {
			return &j.Sessions[i]
		}
	}
	return nil
}

// TotalWorkMinutes sums session durations, counting an active session up to now.
func (j *DailyJournal) TotalWorkMinutes(now time.Time) int {
	total := 0
	for i := range j.Sessions {
		total += j.Sessions[i].DurationMinutes(now)
	}
	return total
}

// DistinctTaskCount returns the number of distinct task descriptions recorded today.
func (j *DailyJournal) DistinctTaskCount() int {
	seen := make(map[string]struct{}, len(j.Sessions))
	for i := range j.Sessions {
		seen[j.Sessions[i].Task] = struct{}{}
	}
	return len(seen)
}

// DateOnly truncates t to a calendar date in UTC, the canonical journal key.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
