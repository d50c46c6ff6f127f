package domain

import (
	"time"

	"github.com/google/uuid"
)

// Limits for derived reflection artifacts.
const (
	MaxReflectionTextLen = 1000
	MaxReflectionItems   = 5
)

// SessionReflection is the derived summary of a finished work session.
// Immutable once written: it is never updated or deleted, only removed by
// cascade when its journal is deleted.
type SessionReflection struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	DurationMinutes int
	Text            string
	KeyInsights     []string
	RelatedMemories []string
	CreatedAt       time.Time
}

// MemoryHit is a single result from the reflection search index.
type MemoryHit struct {
	ID      string
	Content string
	Score   float64
}

// ClampList returns at most limit items from list, preserving order.
func ClampList(list []string, limit int) []string {
	if len(list) <= limit {
		return list
	}
	return list[:limit]
}

// TruncateText cuts s to at most limit bytes on a rune boundary.
func TruncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(string(runes)) > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
