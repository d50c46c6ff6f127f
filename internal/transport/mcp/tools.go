package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/heartmarshall/worklog-backend/internal/domain"
	"github.com/heartmarshall/worklog-backend/internal/service/worklog"
	"github.com/heartmarshall/worklog-backend/internal/service/workingctx"
)

// ---------------------------------------------------------------------------
// Tool definitions
// ---------------------------------------------------------------------------

func startSessionTool() mcp.Tool {
	return mcp.NewTool("start_work_session",
		mcp.WithDescription("Start a new work session on today's journal. Fails if a session is already active."),
		mcp.WithString("task", mcp.Required(), mcp.Description("What you are working on (1-500 characters).")),
	)
}

func endSessionTool() mcp.Tool {
	return mcp.NewTool("end_work_session",
		mcp.WithDescription("End the active work session. Sessions of 30+ minutes get an automatic reflection."),
		mcp.WithArray("learnings", mcp.Description("Things learned during the session."), mcp.WithStringItems()),
		mcp.WithArray("challenges", mcp.Description("Challenges hit during the session."), mcp.WithStringItems()),
		mcp.WithArray("files_touched", mcp.Description("Files worked on."), mcp.WithStringItems()),
		mcp.WithArray("decisions", mcp.Description("Decisions made."), mcp.WithStringItems()),
		mcp.WithString("note", mcp.Description("Free-form closing note.")),
	)
}

func activeSessionTool() mcp.Tool {
	return mcp.NewTool("get_active_session",
		mcp.WithDescription("Return the currently active work session, if any."),
	)
}

func dailySummaryTool() mcp.Tool {
	return mcp.NewTool("generate_daily_summary",
		mcp.WithDescription("Generate a narrative summary and stats for one journal day."),
		mcp.WithString("date", mcp.Description("Day to summarize as YYYY-MM-DD. Defaults to today.")),
	)
}

func updateJournalTool() mcp.Tool {
	return mcp.NewTool("update_daily_journal",
		mcp.WithDescription("Set today's journal fields: intention, reflection, mood, energy, wins."),
		mcp.WithString("intention", mcp.Description("Intention for the day.")),
		mcp.WithString("reflection", mcp.Description("End-of-day reflection.")),
		mcp.WithString("mood", mcp.Description("Mood word or phrase.")),
		mcp.WithNumber("energy_level", mcp.Description("Energy level 1-5.")),
		mcp.WithArray("wins", mcp.Description("Wins of the day."), mcp.WithStringItems()),
	)
}

func searchReflectionsTool() mcp.Tool {
	return mcp.NewTool("search_reflections",
		mcp.WithDescription("Full-text search over past session reflections."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query.")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 10, max 50).")),
	)
}

func productivityStatsTool() mcp.Tool {
	return mcp.NewTool("get_productivity_stats",
		mcp.WithDescription("Aggregate session and reflection counters since process start. Cached for a short TTL."),
	)
}

func getContextTool() mcp.Tool {
	return mcp.NewTool("get_working_context",
		mcp.WithDescription("Return the current working context with its version."),
	)
}

func updateContextTool() mcp.Tool {
	return mcp.NewTool("update_working_context",
		mcp.WithDescription("Replace the working context. Retried optimistically; may report a version conflict under contention."),
		mcp.WithString("focus", mcp.Required(), mcp.Description("Current focus (1-500 characters).")),
		mcp.WithArray("open_threads", mcp.Description("Open threads to come back to."), mcp.WithStringItems()),
		mcp.WithString("notes", mcp.Description("Free-form context notes.")),
	)
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (h *Handlers) handleStartSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := req.RequireString("task")
	if err != nil {
		return failure(err)
	}

	result, err := h.worklog.StartSession(ctx, worklog.StartInput{Task: task})
	if err != nil {
		var active *domain.SessionActiveError
		if errors.As(err, &active) {
			return failureWith(err, map[string]any{"active_task": active.Task})
		}
		return failure(err)
	}

	return success(map[string]any{
		"session_id": result.SessionID.String(),
		"task":       result.Task,
		"started_at": result.StartedAt.Format(time.RFC3339),
	})
}

func (h *Handlers) handleEndSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := worklog.EndInput{
		Learnings:    req.GetStringSlice("learnings", nil),
		Challenges:   req.GetStringSlice("challenges", nil),
		FilesTouched: req.GetStringSlice("files_touched", nil),
		Decisions:    req.GetStringSlice("decisions", nil),
		Note:         req.GetString("note", ""),
	}

	result, err := h.worklog.EndSession(ctx, input)
	if err != nil {
		return failure(err)
	}

	payload := map[string]any{
		"session_id":       result.SessionID.String(),
		"task":             result.Task,
		"duration_minutes": result.DurationMinutes,
	}
	if result.Reflection != nil {
		payload["reflection"] = *result.Reflection
	}
	return success(payload)
}

func (h *Handlers) handleActiveSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := h.worklog.ActiveSession(ctx)
	if err != nil {
		return failure(err)
	}

	if info == nil {
		return success(map[string]any{"active": false})
	}
	return success(map[string]any{
		"active":           true,
		"session_id":       info.SessionID.String(),
		"task":             info.Task,
		"started_at":       info.StartedAt.Format(time.RFC3339),
		"duration_minutes": info.DurationMinutes,
	})
}

func (h *Handlers) handleDailySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input worklog.SummaryInput

	if raw := req.GetString("date", ""); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return failure(fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw))
		}
		input.Date = &date
	}

	result, err := h.worklog.DailySummary(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failure(fmt.Errorf("no journal for that date"))
		}
		return failure(err)
	}

	return success(map[string]any{
		"date":    result.Date.Format("2006-01-02"),
		"summary": result.Summary,
		"stats": map[string]any{
			"total_hours":        result.Stats.TotalHours,
			"tasks_worked_on":    result.Stats.TasksWorkedOn,
			"sessions":           result.Stats.Sessions,
			"learnings_captured": result.Stats.LearningsCaptured,
			"challenges_noted":   result.Stats.ChallengesNoted,
		},
	})
}

func (h *Handlers) handleUpdateJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := worklog.JournalInput{}

	if v := req.GetString("intention", ""); v != "" {
		input.Intention = &v
	}
	if v := req.GetString("reflection", ""); v != "" {
		input.Reflection = &v
	}
	if v := req.GetString("mood", ""); v != "" {
		input.Mood = &v
	}
	if v := req.GetInt("energy_level", 0); v != 0 {
		input.EnergyLevel = &v
	}
	if v := req.GetStringSlice("wins", nil); v != nil {
		input.Wins = v
	}

	journal, err := h.worklog.UpdateJournal(ctx, input)
	if err != nil {
		return failure(err)
	}

	return success(map[string]any{
		"journal_id": journal.ID.String(),
		"date":       journal.Date.Format("2006-01-02"),
	})
}

func (h *Handlers) handleSearchReflections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return failure(err)
	}
	limit := req.GetInt("limit", 10)

	hits, err := h.worklog.SearchReflections(ctx, query, limit)
	if err != nil {
		return failure(err)
	}

	results := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		results = append(results, map[string]any{
			"id":      hit.ID,
			"content": hit.Content,
			"score":   hit.Score,
		})
	}
	return success(map[string]any{"results": results})
}

func (h *Handlers) handleProductivityStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.rec.Snapshot(ctx)
	if err != nil {
		return failure(err)
	}

	return success(map[string]any{
		"sessions_started":    snap.SessionsStarted,
		"sessions_ended":      snap.SessionsEnded,
		"active_sessions":     snap.ActiveSessions,
		"ended_minutes_total": snap.EndedMinutesTotal,
		"reflections":         snap.Reflections,
		"generated_at":        snap.GeneratedAt.Format(time.RFC3339),
	})
}

func (h *Handlers) handleGetContext(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, err := h.wctx.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return success(map[string]any{"set": false})
		}
		return failure(err)
	}

	return success(map[string]any{
		"set":          true,
		"version":      current.Version,
		"focus":        current.Payload.Focus,
		"open_threads": current.Payload.OpenThreads,
		"notes":        current.Payload.Notes,
		"updated_at":   current.Payload.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *Handlers) handleUpdateContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	focus, err := req.RequireString("focus")
	if err != nil {
		return failure(err)
	}

	input := workingctx.Input{
		Focus:       focus,
		OpenThreads: req.GetStringSlice("open_threads", nil),
		Notes:       req.GetString("notes", ""),
	}

	updated, err := h.wctx.Update(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return failureWith(err, map[string]any{"retryable": true})
		}
		return failure(err)
	}

	return success(map[string]any{
		"version": updated.Version,
		"focus":   updated.Payload.Focus,
	})
}

// ---------------------------------------------------------------------------
// Result envelopes
// ---------------------------------------------------------------------------

func success(fields map[string]any) (*mcp.CallToolResult, error) {
	fields["success"] = true
	return jsonResult(fields)
}

func failure(err error) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{"success": false, "error": err.Error()})
}

func failureWith(err error, extra map[string]any) (*mcp.CallToolResult, error) {
	extra["success"] = false
	extra["error"] = err.Error()
	return jsonResult(extra)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal tool result", slog.String("error", err.Error()))
		return mcp.NewToolResultError("internal error"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
