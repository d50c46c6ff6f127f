// Package mcp wires the worklog services into an MCP tool surface.
//
// This is the composition point for the transport only: it creates the
// server instance, declares tool schemas, and registers handlers. No
// business logic lives here; handlers validate arguments, call services,
// and translate outcomes into structured success/failure payloads. Expected
// business conditions (active session, no active session, version conflict)
// are reported inside the payload, never as protocol errors.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/heartmarshall/worklog-backend/internal/domain"
	"github.com/heartmarshall/worklog-backend/internal/metrics"
	"github.com/heartmarshall/worklog-backend/internal/service/worklog"
	"github.com/heartmarshall/worklog-backend/internal/service/workingctx"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type worklogService interface {
	StartSession(ctx context.Context, input worklog.StartInput) (*worklog.StartResult, error)
	EndSession(ctx context.Context, input worklog.EndInput) (*worklog.EndResult, error)
	ActiveSession(ctx context.Context) (*worklog.SessionInfo, error)
	UpdateJournal(ctx context.Context, input worklog.JournalInput) (*domain.DailyJournal, error)
	DailySummary(ctx context.Context, input worklog.SummaryInput) (*worklog.SummaryResult, error)
	SearchReflections(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error)
}

type contextService interface {
	Get(ctx context.Context) (domain.Versioned[domain.WorkingContext], error)
	Update(ctx context.Context, input workingctx.Input) (domain.Versioned[domain.WorkingContext], error)
}

// Handlers bundles the tool implementations with their dependencies.
type Handlers struct {
	worklog worklogService
	wctx    contextService
	rec     *metrics.Recorder
	log     *slog.Logger
}

// New creates the MCP server with all worklog tools registered.
func New(name, version string, wl worklogService, wc contextService, rec *metrics.Recorder, log *slog.Logger) *server.MCPServer {
	h := &Handlers{
		worklog: wl,
		wctx:    wc,
		rec:     rec,
		log:     log.With("component", "mcp"),
	}

	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	s.AddTool(startSessionTool(), h.instrumented("start_work_session", h.handleStartSession))
	s.AddTool(endSessionTool(), h.instrumented("end_work_session", h.handleEndSession))
	s.AddTool(activeSessionTool(), h.instrumented("get_active_session", h.handleActiveSession))
	s.AddTool(dailySummaryTool(), h.instrumented("generate_daily_summary", h.handleDailySummary))
	s.AddTool(updateJournalTool(), h.instrumented("update_daily_journal", h.handleUpdateJournal))
	s.AddTool(searchReflectionsTool(), h.instrumented("search_reflections", h.handleSearchReflections))
	s.AddTool(productivityStatsTool(), h.instrumented("get_productivity_stats", h.handleProductivityStats))
	s.AddTool(getContextTool(), h.instrumented("get_working_context", h.handleGetContext))
	s.AddTool(updateContextTool(), h.instrumented("update_working_context", h.handleUpdateContext))

	return s
}

// instrumented wraps a handler with duration/outcome recording at the call
// site.
func (h *Handlers) instrumented(tool string, fn server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return metrics.Observe(ctx, h.rec, tool, func(ctx context.Context) (*mcp.CallToolResult, error) {
			return fn(ctx, req)
		})
	}
}

const serverInstructions = `Personal work journal. Start a session before
working (start_work_session), end it when done (end_work_session); sessions
of 30+ minutes get an automatic reflection. Keep the working context current
with update_working_context; search past reflections with
search_reflections.`
