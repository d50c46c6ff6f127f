package domain

import (
	"testing"
	"time"
)

func TestWorkSession_IsActive(t *testing.T) {
	t.Parallel()

	t.Run("nil EndedAt", func(t *testing.T) {
		t.Parallel()
		s := &WorkSession{EndedAt: nil}
		if !s.IsActive() {
			t.Error("expected active")
		}
	})

	t.Run("non-nil EndedAt", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		s := &WorkSession{EndedAt: &now}
		if s.IsActive() {
			t.Error("expected ended")
		}
	})
}

func TestWorkSession_DurationMinutes(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("ended session uses end timestamp", func(t *testing.T) {
		t.Parallel()
		end := start.Add(31 * time.Minute)
		s := &WorkSession{StartedAt: start, EndedAt: &end}
		// "now" far in the future must not matter once ended
		if got := s.DurationMinutes(start.Add(10 * time.Hour)); got != 31 {
			t.Errorf("duration: got %d, want 31", got)
		}
	})

	t.Run("active session counts up to now", func(t *testing.T) {
		t.Parallel()
		s := &WorkSession{StartedAt: start}
		if got := s.DurationMinutes(start.Add(90 * time.Minute)); got != 90 {
			t.Errorf("duration: got %d, want 90", got)
		}
	})

	t.Run("clock skew clamps to zero", func(t *testing.T) {
		t.Parallel()
		s := &WorkSession{StartedAt: start}
		if got := s.DurationMinutes(start.Add(-5 * time.Minute)); got != 0 {
			t.Errorf("duration: got %d, want 0", got)
		}
	})

	t.Run("sub-minute rounds down", func(t *testing.T) {
		t.Parallel()
		s := &WorkSession{StartedAt: start}
		if got := s.DurationMinutes(start.Add(59 * time.Second)); got != 0 {
			t.Errorf("duration: got %d, want 0", got)
		}
	})
}

func TestDailyJournal_ActiveSession(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("empty journal", func(t *testing.T) {
		t.Parallel()
		j := &DailyJournal{}
		if j.ActiveSession() != nil {
			t.Error("expected no active session")
		}
	})

	t.Run("all sessions ended", func(t *testing.T) {
		t.Parallel()
		j := &DailyJournal{Sessions: []WorkSession{
			{Task: "a", EndedAt: &now},
			{Task: "b", EndedAt: &now},
		}}
		if j.ActiveSession() != nil {
			t.Error("expected no active session")
		}
	})

	t.Run("one active session found", func(t *testing.T) {
		t.Parallel()
		j := &DailyJournal{Sessions: []WorkSession{
			{Task: "done", EndedAt: &now},
			{Task: "running"},
		}}
		active := j.ActiveSession()
		if active == nil {
			t.Fatal("expected active session")
		}
		if active.Task != "running" {
			t.Errorf("active task: got %q, want %q", active.Task, "running")
		}
	})
}

func TestDailyJournal_TotalWorkMinutes(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end1 := start.Add(30 * time.Minute)
	end2 := start.Add(45 * time.Minute)
	now := start.Add(60 * time.Minute)

	j := &DailyJournal{Sessions: []WorkSession{
		{StartedAt: start, EndedAt: &end1},                     // 30
		{StartedAt: start.Add(30 * time.Minute), EndedAt: &end2}, // 15
		{StartedAt: start.Add(50 * time.Minute)},                 // active, 10 so far
	}}

	if got := j.TotalWorkMinutes(now); got != 55 {
		t.Errorf("total: got %d, want 55", got)
	}
}

func TestDailyJournal_DistinctTaskCount(t *testing.T) {
	t.Parallel()

	j := &DailyJournal{Sessions: []WorkSession{
		{Task: "write spec"},
		{Task: "review"},
		{Task: "write spec"},
	}}
	if got := j.DistinctTaskCount(); got != 2 {
		t.Errorf("distinct tasks: got %d, want 2", got)
	}
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 6, 1, 2, 30, 0, 0, loc) // 2025-05-31 21:30 UTC
	got := DateOnly(in)
	want := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly: got %v, want %v", got, want)
	}
}

func TestClampList(t *testing.T) {
	t.Parallel()

	list := []string{"a", "b", "c"}
	if got := ClampList(list, 5); len(got) != 3 {
		t.Errorf("under limit: got %d items, want 3", len(got))
	}
	if got := ClampList(list, 2); len(got) != 2 || got[1] != "b" {
		t.Errorf("over limit: got %v, want [a b]", got)
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	if got := TruncateText("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateText("hello world", 5); got != "hello" {
		t.Errorf("got %q", got)
	}
	// multibyte input never splits a rune
	if got := TruncateText("héllo", 3); got != "hé" {
		t.Errorf("got %q", got)
	}
}
