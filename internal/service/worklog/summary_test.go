package worklog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/worklog-backend/internal/domain"
)

func summaryJournal() *domain.DailyJournal {
	endedA := testTime.Add(-2 * time.Hour)
	endedB := testTime.Add(-30 * time.Minute)

	return &domain.DailyJournal{
		ID:   uuid.New(),
		Date: domain.DateOnly(testTime),
		Wins: []string{"migration landed"},
		Sessions: []domain.WorkSession{
			{
				ID:        uuid.New(),
				Task:      "write migrations",
				StartedAt: testTime.Add(-3 * time.Hour),
				EndedAt:   &endedA,
				Learnings: []string{"partial indexes enforce invariants"},
			},
			{
				ID:         uuid.New(),
				Task:       "review PRs",
				StartedAt:  testTime.Add(-90 * time.Minute),
				EndedAt:    &endedB,
				Challenges: []string{"flaky CI"},
			},
		},
	}
}

func TestService_DailySummary_Stats(t *testing.T) {
	t.Parallel()

	journals := &journalRepoMock{
		GetByDateFunc: func(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
			return summaryJournal(), nil
		},
	}

	svc := newTestService(journals, nil, nil, nil, &recorderMock{})

	result, err := svc.DailySummary(context.Background(), SummaryInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.DateOnly(testTime), result.Date)

	// 60 + 60 minutes = 2.00 hours over 2 distinct tasks.
	assert.Equal(t, 2.0, result.Stats.TotalHours)
	assert.Equal(t, 2, result.Stats.TasksWorkedOn)
	assert.Equal(t, 2, result.Stats.Sessions)
	assert.Equal(t, 1, result.Stats.LearningsCaptured)
	assert.Equal(t, 1, result.Stats.ChallengesNoted)

	// No generator wired: templated text.
	assert.Contains(t, result.Summary, "2 session(s)")
	assert.Contains(t, result.Summary, "Wins: migration landed.")
}

func TestService_DailySummary_ExplicitDate(t *testing.T) {
	t.Parallel()

	requested := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	journals := &journalRepoMock{
		GetByDateFunc: func(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
			assert.Equal(t, requested, date)
			return &domain.DailyJournal{ID: uuid.New(), Date: domain.DateOnly(requested)}, nil
		},
	}

	svc := newTestService(journals, nil, nil, nil, &recorderMock{})

	result, err := svc.DailySummary(context.Background(), SummaryInput{Date: &requested})

	require.NoError(t, err)
	assert.Equal(t, domain.DateOnly(requested), result.Date)
	assert.Equal(t, 0, result.Stats.Sessions)
}

func TestService_DailySummary_NoJournal(t *testing.T) {
	t.Parallel()

	journals := &journalRepoMock{
		GetByDateFunc: func(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(journals, nil, nil, nil, &recorderMock{})

	_, err := svc.DailySummary(context.Background(), SummaryInput{})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DailySummary_Generated(t *testing.T) {
	t.Parallel()

	journals := &journalRepoMock{
		GetByDateFunc: func(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
			return summaryJournal(), nil
		},
	}
	gen := &generatorMock{
		AvailableFunc: func() bool { return true },
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "write migrations")
			assert.Contains(t, prompt, "Wins: migration landed")
			return "A productive day of schema work.", nil
		},
	}

	svc := newTestService(journals, nil, nil, gen, &recorderMock{})

	result, err := svc.DailySummary(context.Background(), SummaryInput{})

	require.NoError(t, err)
	assert.Equal(t, "A productive day of schema work.", result.Summary)
}

func TestService_DailySummary_GeneratorFails_FallsBack(t *testing.T) {
	t.Parallel()

	journals := &journalRepoMock{
		GetByDateFunc: func(ctx context.Context, date time.Time) (*domain.DailyJournal, error) {
			return summaryJournal(), nil
		},
	}
	gen := &generatorMock{
		AvailableFunc: func() bool { return true },
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("api overloaded")
		},
	}

	svc := newTestService(journals, nil, nil, gen, &recorderMock{})

	result, err := svc.DailySummary(context.Background(), SummaryInput{})

	require.NoError(t, err)
	assert.Contains(t, result.Summary, "2 session(s)")
}

func TestComputeStats_ActiveSessionCountsToNow(t *testing.T) {
	t.Parallel()

	journal := &domain.DailyJournal{
		Date: domain.DateOnly(testTime),
		Sessions: []domain.WorkSession{
			{Task: "ongoing", StartedAt: testTime.Add(-15 * time.Minute)},
		},
	}

	stats := computeStats(journal, testTime)

	assert.Equal(t, 0.25, stats.TotalHours)
	assert.Equal(t, 1, stats.Sessions)
}
