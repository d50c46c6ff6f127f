package worklog

import (
	"time"

	"github.com/google/uuid"
)

// StartResult holds the outcome of a successful session start.
type StartResult struct {
	SessionID uuid.UUID
	Task      string
	StartedAt time.Time
}

// EndResult holds the outcome of a successful session end.
// Reflection is nil when the session was below the reflection threshold or
// the best-effort pipeline produced nothing.
type EndResult struct {
	SessionID       uuid.UUID
	Task            string
	DurationMinutes int
	Reflection      *string
}

// SummaryStats holds the aggregate numbers of one journal day.
type SummaryStats struct {
	TotalHours        float64
	TasksWorkedOn     int
	Sessions          int
	LearningsCaptured int
	ChallengesNoted   int
}

// SummaryResult holds a generated daily summary with its stats.
type SummaryResult struct {
	Date    time.Time
	Summary string
	Stats   SummaryStats
}

// SessionInfo is a read-only snapshot of the currently active session.
type SessionInfo struct {
	SessionID       uuid.UUID
	Task            string
	StartedAt       time.Time
	DurationMinutes int
}
