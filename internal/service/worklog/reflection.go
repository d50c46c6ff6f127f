package worklog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// reflect turns a just-ended session into a SessionReflection. Every step is
// best-effort: search failure shrinks the context, generation failure falls
// back to a templated summary, and persistence/indexing failures are logged.
// It never returns an error: losing the derived artifact must not lose the
// session record.
func (s *Service) reflect(ctx context.Context, session *domain.WorkSession, minutes int) *domain.SessionReflection {
	related := s.relatedMemories(ctx, session.Task)

	text, generated := s.reflectionText(ctx, session, minutes, related)
	text = domain.TruncateText(text, domain.MaxReflectionTextLen)

	insightLimit := min(s.cfg.MaxInsights, domain.MaxReflectionItems)

	refIDs := make([]string, 0, len(related))
	for _, hit := range related {
		refIDs = append(refIDs, hit.ID)
	}

	reflection := &domain.SessionReflection{
		ID:              uuid.New(),
		SessionID:       session.ID,
		DurationMinutes: minutes,
		Text:            text,
		KeyInsights:     domain.ClampList(session.Learnings, insightLimit),
		RelatedMemories: domain.ClampList(refIDs, domain.MaxReflectionItems),
	}

	if generated {
		s.metrics.ReflectionOutcome("generated")
	} else {
		s.metrics.ReflectionOutcome("fallback")
	}

	persisted, err := s.reflections.Create(ctx, reflection)
	if err != nil {
		s.log.WarnContext(ctx, "persist reflection failed",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()),
		)
		return reflection
	}

	if err := s.index.Index(ctx, persisted.ID, session.Task+"\n"+persisted.Text); err != nil {
		s.log.WarnContext(ctx, "index reflection failed",
			slog.String("reflection_id", persisted.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return persisted
}

// relatedMemories queries the search index for prior reflections similar to
// the task. Search is best-effort: on failure it logs and returns nothing.
func (s *Service) relatedMemories(ctx context.Context, task string) []domain.MemoryHit {
	if s.cfg.RelatedLimit <= 0 {
		return nil
	}

	hits, err := s.index.Search(ctx, task, s.cfg.RelatedLimit)
	if err != nil {
		s.log.WarnContext(ctx, "related memory search failed",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return hits
}

// reflectionText produces the reflection body: generated when the LLM is
// available and succeeds, templated otherwise. The second return value
// reports whether generation was used.
func (s *Service) reflectionText(ctx context.Context, session *domain.WorkSession, minutes int, related []domain.MemoryHit) (string, bool) {
	if s.gen != nil && s.gen.Available() {
		text, err := s.gen.Complete(ctx, buildReflectionPrompt(session, minutes, related))
		if err == nil {
			return text, true
		}
		s.log.WarnContext(ctx, "reflection generation failed, using template",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	return templateReflection(session, minutes), false
}

// buildReflectionPrompt assembles the compact context string handed to the
// generator.
func buildReflectionPrompt(session *domain.WorkSession, minutes int, related []domain.MemoryHit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize this work session in 2-3 sentences. Focus on what was accomplished and what was learned.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", session.Task)
	fmt.Fprintf(&b, "Duration: %d minutes\n", minutes)

	if session.Note != nil && *session.Note != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *session.Note)
	}
	writePromptList(&b, "Files touched", session.FilesTouched)
	writePromptList(&b, "Learnings", session.Learnings)
	writePromptList(&b, "Challenges", session.Challenges)
	writePromptList(&b, "Decisions", session.Decisions)

	if len(related) > 0 {
		b.WriteString("\nRelated prior work:\n")
		for _, hit := range related {
			fmt.Fprintf(&b, "- %s\n", firstLine(hit.Content))
		}
	}

	return b.String()
}

// templateReflection is the deterministic fallback summary built from the
// same fields the prompt uses.
func templateReflection(session *domain.WorkSession, minutes int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Worked %d minutes on %q.", minutes, session.Task)

	if n := len(session.FilesTouched); n > 0 {
		fmt.Fprintf(&b, " Touched %d file(s).", n)
	}
	if len(session.Learnings) > 0 {
		fmt.Fprintf(&b, " Learned: %s.", strings.Join(session.Learnings, "; "))
	}
	if len(session.Challenges) > 0 {
		fmt.Fprintf(&b, " Challenges: %s.", strings.Join(session.Challenges, "; "))
	}

	return b.String()
}

func writePromptList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, "; "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// SearchReflections exposes the memory index to the tool surface.
func (s *Service) SearchReflections(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query", "required")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search reflections: %w", err)
	}
	return hits, nil
}
