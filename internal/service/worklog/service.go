package worklog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worklog-backend/internal/config"
	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type journalRepo interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error)
	GetOrCreateByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error)
	AddSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	UpdateSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	SaveJournal(ctx context.Context, journal *domain.DailyJournal) (*domain.DailyJournal, error)
}

type reflectionRepo interface {
	Create(ctx context.Context, reflection *domain.SessionReflection) (*domain.SessionReflection, error)
}

type memoryIndex interface {
	Index(ctx context.Context, id uuid.UUID, content string) error
	Search(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error)
}

type generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Available() bool
}

type metricsRecorder interface {
	SessionStarted()
	SessionEnded(durationMinutes int)
	ReflectionOutcome(outcome string)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// noopRecorder is used when no metrics recorder is wired (tests, CLI tools).
type noopRecorder struct{}

func (noopRecorder) SessionStarted()          {}
func (noopRecorder) SessionEnded(int)         {}
func (noopRecorder) ReflectionOutcome(string) {}

// noTx runs the callback without a transaction, for tests and read-mostly
// tools that wire no TxManager.
type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the work-session lifecycle: the single-active-session
// state machine, the reflection pipeline, and daily summaries.
type Service struct {
	journals    journalRepo
	reflections reflectionRepo
	index       memoryIndex
	gen         generator
	metrics     metricsRecorder
	tx          txManager
	log         *slog.Logger
	cfg         config.ReflectionConfig
	clock       clock

	// lock serializes every mutation of today's session state. The critical
	// section spans the full read-decide-write sequence, persistence I/O
	// included: two concurrent starts must never both observe "no active
	// session".
	lock sessionLock
}

// NewService creates a new worklog service.
func NewService(
	log *slog.Logger,
	journals journalRepo,
	reflections reflectionRepo,
	index memoryIndex,
	gen generator,
	metrics metricsRecorder,
	tx txManager,
	cfg config.ReflectionConfig,
) *Service {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	if tx == nil {
		tx = noTx{}
	}
	return &Service{
		journals:    journals,
		reflections: reflections,
		index:       index,
		gen:         gen,
		metrics:     metrics,
		tx:          tx,
		log:         log.With("service", "worklog"),
		cfg:         cfg,
		clock:       systemClock{},
	}
}
