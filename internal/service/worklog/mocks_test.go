package worklog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// journalRepoMock
// ---------------------------------------------------------------------------

var _ journalRepo = &journalRepoMock{}

type journalRepoMock struct {
	GetByDateFunc         func(ctx context.Context, date time.Time) (*domain.DailyJournal, error)
	GetOrCreateByDateFunc func(ctx context.Context, date time.Time) (*domain.DailyJournal, error)
	AddSessionFunc        func(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	UpdateSessionFunc     func(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	SaveJournalFunc       func(ctx context.Context, journal *domain.DailyJournal) (*domain.DailyJournal, error)

	calls struct {
		GetByDate         []struct{ Date time.Time }
		GetOrCreateByDate []struct{ Date time.Time }
		AddSession        []struct{ Session *domain.WorkSession }
		UpdateSession     []struct{ Session *domain.WorkSession }
		SaveJournal       []struct{ Journal *domain.DailyJournal }
	}
	lock sync.RWMutex
}

func (mock *journalRepoMock) GetByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
	if mock.GetByDateFunc == nil {
		panic("journalRepoMock.GetByDateFunc: method is nil but journalRepo.GetByDate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByDate = append(mock.calls.GetByDate, struct{ Date time.Time }{date})
	mock.lock.Unlock()
	return mock.GetByDateFunc(ctx, date)
}

func (mock *journalRepoMock) GetByDateCalls() []struct{ Date time.Time } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByDate
}

func (mock *journalRepoMock) GetOrCreateByDate(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
	if mock.GetOrCreateByDateFunc == nil {
		panic("journalRepoMock.GetOrCreateByDateFunc: method is nil but journalRepo.GetOrCreateByDate was just called")
	}
	mock.lock.Lock()
	mock.calls.GetOrCreateByDate = append(mock.calls.GetOrCreateByDate, struct{ Date time.Time }{date})
	mock.lock.Unlock()
	return mock.GetOrCreateByDateFunc(ctx, date)
}

func (mock *journalRepoMock) GetOrCreateByDateCalls() []struct{ Date time.Time } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetOrCreateByDate
}

func (mock *journalRepoMock) AddSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	if mock.AddSessionFunc == nil {
		panic("journalRepoMock.AddSessionFunc: method is nil but journalRepo.AddSession was just called")
	}
	mock.lock.Lock()
	mock.calls.AddSession = append(mock.calls.AddSession, struct{ Session *domain.WorkSession }{session})
	mock.lock.Unlock()
	return mock.AddSessionFunc(ctx, session)
}

func (mock *journalRepoMock) AddSessionCalls() []struct{ Session *domain.WorkSession } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AddSession
}

func (mock *journalRepoMock) UpdateSession(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	if mock.UpdateSessionFunc == nil {
		panic("journalRepoMock.UpdateSessionFunc: method is nil but journalRepo.UpdateSession was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateSession = append(mock.calls.UpdateSession, struct{ Session *domain.WorkSession }{session})
	mock.lock.Unlock()
	return mock.UpdateSessionFunc(ctx, session)
}

func (mock *journalRepoMock) UpdateSessionCalls() []struct{ Session *domain.WorkSession } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateSession
}

func (mock *journalRepoMock) SaveJournal(ctx context.Context, journal *domain.DailyJournal) (*domain.DailyJournal, error) {
	if mock.SaveJournalFunc == nil {
		panic("journalRepoMock.SaveJournalFunc: method is nil but journalRepo.SaveJournal was just called")
	}
	mock.lock.Lock()
	mock.calls.SaveJournal = append(mock.calls.SaveJournal, struct{ Journal *domain.DailyJournal }{journal})
	mock.lock.Unlock()
	return mock.SaveJournalFunc(ctx, journal)
}

func (mock *journalRepoMock) SaveJournalCalls() []struct{ Journal *domain.DailyJournal } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.SaveJournal
}

// ---------------------------------------------------------------------------
// reflectionRepoMock
// ---------------------------------------------------------------------------

var _ reflectionRepo = &reflectionRepoMock{}

type reflectionRepoMock struct {
	CreateFunc func(ctx context.Context, reflection *domain.SessionReflection) (*domain.SessionReflection, error)

	calls struct {
		Create []struct{ Reflection *domain.SessionReflection }
	}
	lock sync.RWMutex
}

func (mock *reflectionRepoMock) Create(ctx context.Context, reflection *domain.SessionReflection) (*domain.SessionReflection, error) {
	if mock.CreateFunc == nil {
		panic("reflectionRepoMock.CreateFunc: method is nil but reflectionRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Reflection *domain.SessionReflection }{reflection})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, reflection)
}

func (mock *reflectionRepoMock) CreateCalls() []struct{ Reflection *domain.SessionReflection } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

// ---------------------------------------------------------------------------
// memoryIndexMock
// ---------------------------------------------------------------------------

var _ memoryIndex = &memoryIndexMock{}

type memoryIndexMock struct {
	IndexFunc  func(ctx context.Context, id uuid.UUID, content string) error
	SearchFunc func(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error)

	calls struct {
		Index []struct {
			ID      uuid.UUID
			Content string
		}
		Search []struct {
			Query string
			Limit int
		}
	}
	lock sync.RWMutex
}

func (mock *memoryIndexMock) Index(ctx context.Context, id uuid.UUID, content string) error {
	if mock.IndexFunc == nil {
		panic("memoryIndexMock.IndexFunc: method is nil but memoryIndex.Index was just called")
	}
	callInfo := struct {
		ID      uuid.UUID
		Content string
	}{id, content}
	mock.lock.Lock()
	mock.calls.Index = append(mock.calls.Index, callInfo)
	mock.lock.Unlock()
	return mock.IndexFunc(ctx, id, content)
}

func (mock *memoryIndexMock) IndexCalls() []struct {
	ID      uuid.UUID
	Content string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Index
}

func (mock *memoryIndexMock) Search(ctx context.Context, query string, limit int) ([]domain.MemoryHit, error) {
	if mock.SearchFunc == nil {
		panic("memoryIndexMock.SearchFunc: method is nil but memoryIndex.Search was just called")
	}
	callInfo := struct {
		Query string
		Limit int
	}{query, limit}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, query, limit)
}

func (mock *memoryIndexMock) SearchCalls() []struct {
	Query string
	Limit int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Search
}

// ---------------------------------------------------------------------------
// generatorMock
// ---------------------------------------------------------------------------

var _ generator = &generatorMock{}

type generatorMock struct {
	CompleteFunc  func(ctx context.Context, prompt string) (string, error)
	AvailableFunc func() bool

	calls struct {
		Complete []struct{ Prompt string }
	}
	lock sync.RWMutex
}

func (mock *generatorMock) Complete(ctx context.Context, prompt string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("generatorMock.CompleteFunc: method is nil but generator.Complete was just called")
	}
	mock.lock.Lock()
	mock.calls.Complete = append(mock.calls.Complete, struct{ Prompt string }{prompt})
	mock.lock.Unlock()
	return mock.CompleteFunc(ctx, prompt)
}

func (mock *generatorMock) CompleteCalls() []struct{ Prompt string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Complete
}

func (mock *generatorMock) Available() bool {
	if mock.AvailableFunc == nil {
		return false
	}
	return mock.AvailableFunc()
}

// ---------------------------------------------------------------------------
// recorderMock
// ---------------------------------------------------------------------------

var _ metricsRecorder = &recorderMock{}

type recorderMock struct {
	lock     sync.Mutex
	started  int
	ended    []int
	outcomes []string
}

func (mock *recorderMock) SessionStarted() {
	mock.lock.Lock()
	mock.started++
	mock.lock.Unlock()
}

func (mock *recorderMock) SessionEnded(durationMinutes int) {
	mock.lock.Lock()
	mock.ended = append(mock.ended, durationMinutes)
	mock.lock.Unlock()
}

func (mock *recorderMock) ReflectionOutcome(outcome string) {
	mock.lock.Lock()
	mock.outcomes = append(mock.outcomes, outcome)
	mock.lock.Unlock()
}

func (mock *recorderMock) Outcomes() []string {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.outcomes
}

// fixedClock returns the same instant on every call.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
