package worklog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// DailySummary generates a narrative summary plus aggregate stats for one
// journal day (today when input.Date is nil). Read-only: it does not take
// the session lock. Returns domain.ErrNotFound when no journal exists for
// the date.
func (s *Service) DailySummary(ctx context.Context, input SummaryInput) (*SummaryResult, error) {
	now := s.clock.Now()

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	journal, err := s.journals.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get journal: %w", err)
	}

	stats := computeStats(journal, now)
	summary := s.summaryText(ctx, journal, stats)

	return &SummaryResult{
		Date:    domain.DateOnly(date),
		Summary: summary,
		Stats:   stats,
	}, nil
}

// computeStats aggregates a journal day into SummaryStats. An active session
// counts up to now, matching DurationMinutes.
func computeStats(journal *domain.DailyJournal, now time.Time) SummaryStats {
	learnings := 0
	challenges := 0
	for i := range journal.Sessions {
		learnings += len(journal.Sessions[i].Learnings)
		challenges += len(journal.Sessions[i].Challenges)
	}

	minutes := journal.TotalWorkMinutes(now)

	return SummaryStats{
		TotalHours:        math.Round(float64(minutes)/60*100) / 100,
		TasksWorkedOn:     journal.DistinctTaskCount(),
		Sessions:          len(journal.Sessions),
		LearningsCaptured: learnings,
		ChallengesNoted:   challenges,
	}
}

// summaryText produces the narrative body: generated when the LLM is
// available, templated otherwise.
func (s *Service) summaryText(ctx context.Context, journal *domain.DailyJournal, stats SummaryStats) string {
	if s.gen != nil && s.gen.Available() {
		text, err := s.gen.Complete(ctx, buildSummaryPrompt(journal, stats))
		if err == nil {
			return text
		}
		s.log.WarnContext(ctx, "summary generation failed, using template",
			slog.String("error", err.Error()),
		)
	}
	return templateSummary(journal, stats)
}

func buildSummaryPrompt(journal *domain.DailyJournal, stats SummaryStats) string {
	var b strings.Builder

	b.WriteString("Write a short daily work summary (3-4 sentences) from this journal.\n\n")
	fmt.Fprintf(&b, "Date: %s\n", journal.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Sessions: %d, total %.2f hours, %d distinct tasks\n",
		stats.Sessions, stats.TotalHours, stats.TasksWorkedOn)

	if journal.Intention != nil && *journal.Intention != "" {
		fmt.Fprintf(&b, "Intention: %s\n", *journal.Intention)
	}
	for i := range journal.Sessions {
		sess := &journal.Sessions[i]
		fmt.Fprintf(&b, "- %s", sess.Task)
		if len(sess.Learnings) > 0 {
			fmt.Fprintf(&b, " (learned: %s)", strings.Join(sess.Learnings, "; "))
		}
		b.WriteByte('\n')
	}
	writePromptList(&b, "Wins", journal.Wins)

	return b.String()
}

func templateSummary(journal *domain.DailyJournal, stats SummaryStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d session(s), %.2f hours across %d task(s).",
		journal.Date.Format("2006-01-02"), stats.Sessions, stats.TotalHours, stats.TasksWorkedOn)

	if stats.LearningsCaptured > 0 {
		fmt.Fprintf(&b, " Captured %d learning(s).", stats.LearningsCaptured)
	}
	if stats.ChallengesNoted > 0 {
		fmt.Fprintf(&b, " Noted %d challenge(s).", stats.ChallengesNoted)
	}
	if len(journal.Wins) > 0 {
		fmt.Fprintf(&b, " Wins: %s.", strings.Join(journal.Wins, "; "))
	}

	return b.String()
}
