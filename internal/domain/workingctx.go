package domain

import "time"

// WorkingContext is the process-wide singleton record describing what the
// user is currently focused on. Updated only through the optimistic
// concurrency loop in service/workingctx.
type WorkingContext struct {
	Focus       string    `json:"focus"`
	OpenThreads []string  `json:"open_threads,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Versioned pairs a payload with its monotonically increasing version.
// Version starts at 0 on insert; every successful update increments it by
// exactly 1.
type Versioned[T any] struct {
	Payload T
	Version int64
}
