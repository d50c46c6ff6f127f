package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/heartmarshall/worklog-backend/internal/adapter/llm"
	"github.com/heartmarshall/worklog-backend/internal/adapter/postgres"
	journalrepo "github.com/heartmarshall/worklog-backend/internal/adapter/postgres/journal"
	"github.com/heartmarshall/worklog-backend/internal/adapter/postgres/memoryindex"
	reflectionrepo "github.com/heartmarshall/worklog-backend/internal/adapter/postgres/reflection"
	wctxrepo "github.com/heartmarshall/worklog-backend/internal/adapter/postgres/workingctx"
	"github.com/heartmarshall/worklog-backend/internal/config"
	"github.com/heartmarshall/worklog-backend/internal/metrics"
	transportmcp "github.com/heartmarshall/worklog-backend/internal/transport/mcp"
	"github.com/heartmarshall/worklog-backend/internal/service/workingctx"
	"github.com/heartmarshall/worklog-backend/internal/service/worklog"
)

// Container holds every long-lived dependency, constructed once at process
// start and passed down explicitly. Tests build their own containers; there
// is no package-level state.
type Container struct {
	Config  *config.Config
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Metrics *metrics.Recorder

	Worklog    *worklog.Service
	WorkingCtx *workingctx.Service

	Server *mcpserver.MCPServer
}

// NewContainer loads configuration and wires the full dependency graph.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	recorder := metrics.NewRecorder(logger, cfg.Metrics)

	var gen llm.Generator = llm.NewNoop()
	if cfg.LLM.APIKey != "" {
		gen = llm.NewAnthropic(cfg.LLM)
	} else {
		logger.Warn("no LLM API key configured, reflections use templated fallback")
	}

	journals := journalrepo.New(pool)
	reflections := reflectionrepo.New(pool)
	index := memoryindex.New(pool)

	worklogSvc := worklog.NewService(logger, journals, reflections, index, gen, recorder, postgres.NewTxManager(pool), cfg.Reflection)
	wctxSvc := workingctx.NewService(logger, wctxrepo.New(pool))

	srv := transportmcp.New(cfg.Server.Name, BuildVersion(), worklogSvc, wctxSvc, recorder, logger)

	return &Container{
		Config:     cfg,
		Log:        logger,
		Pool:       pool,
		Metrics:    recorder,
		Worklog:    worklogSvc,
		WorkingCtx: wctxSvc,
		Server:     srv,
	}, nil
}

// Close releases the container's resources in reverse construction order.
func (c *Container) Close() {
	c.Metrics.Close()
	c.Pool.Close()
}

// Run builds the container and serves the MCP surface over stdio until the
// client disconnects or ctx is canceled.
func Run(ctx context.Context) error {
	container, err := NewContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close()

	container.Log.Info("starting worklog server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", container.Config.Log.Level),
	)

	if err := mcpserver.ServeStdio(container.Server); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
