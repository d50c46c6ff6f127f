package worklog

import (
	"strings"
	"time"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// StartInput holds the parameters for starting a work session.
type StartInput struct {
	Task string
}

// Validate checks all fields and collects all errors.
func (i *StartInput) Validate() error {
	var errs []domain.FieldError

	task := strings.TrimSpace(i.Task)
	if task == "" {
		errs = append(errs, domain.FieldError{Field: "task", Message: "required"})
	}
	if len(task) > domain.MaxTaskLen {
		errs = append(errs, domain.FieldError{Field: "task", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EndInput holds the parameters for ending the active work session.
// All fields are optional.
type EndInput struct {
	Learnings    []string
	Challenges   []string
	FilesTouched []string
	Decisions    []string
	Note         string
}

// Validate checks all fields and collects all errors.
func (i *EndInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Learnings) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "learnings", Message: "too many items"})
	}
	if len(i.Challenges) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "challenges", Message: "too many items"})
	}
	if len(i.FilesTouched) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "files_touched", Message: "too many items"})
	}
	if len(i.Decisions) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "decisions", Message: "too many items"})
	}
	if len(i.Note) > domain.MaxNoteLen {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// JournalInput holds the daily free-form fields of a journal.
type JournalInput struct {
	Intention   *string
	Reflection  *string
	Mood        *string
	EnergyLevel *int
	Wins        []string
}

// Validate checks all fields and collects all errors.
func (i *JournalInput) Validate() error {
	var errs []domain.FieldError

	if i.EnergyLevel != nil && (*i.EnergyLevel < domain.MinEnergyLevel || *i.EnergyLevel > domain.MaxEnergyLevel) {
		errs = append(errs, domain.FieldError{Field: "energy_level", Message: "must be between 1 and 5"})
	}
	if len(i.Wins) > domain.MaxListItems {
		errs = append(errs, domain.FieldError{Field: "wins", Message: "too many items"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SummaryInput holds the parameters for generating a daily summary.
type SummaryInput struct {
	// Date defaults to today when nil.
	Date *time.Time
}
