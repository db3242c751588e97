package store

import (
	"testing"
	"time"

	"pomo/internal/timer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/pomo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		key  string
		want string
	}{
		{"focus_minutes", "25"},
		{"break_minutes", "5"},
		{"long_break_minutes", "15"},
		{"cycles", "4"},
	}
	for _, tt := range tests {
		got, err := s.GetSetting(tt.key)
		if err != nil {
			t.Fatalf("get %s: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject("work")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 || p.Name != "work" {
		t.Fatalf("unexpected project %+v", p)
	}
	if p.FocusSeconds != 0 || p.TotalSeconds != 0 {
		t.Fatal("new project should have no time")
	}

	got, err := s.GetProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "work" {
		t.Fatalf("got %q, want work", got.Name)
	}
}

func TestCreateProjectEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject(""); err == nil {
		t.Fatal("empty name should be rejected")
	}
}

func TestCreateProjectDuplicateName(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("work")
	if _, err := s.CreateProject("work"); err == nil {
		t.Fatal("duplicate name should violate the unique constraint")
	}
}

func TestGetProjectByNameMissing(t *testing.T) {
	s := newTestStore(t)
	p, err := s.GetProjectByName("nope")
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatal("missing project should return nil, nil")
	}
}

func TestLoadOrCreateProject(t *testing.T) {
	s := newTestStore(t)

	p1, err := s.LoadOrCreateProject("work")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.LoadOrCreateProject("work")
	if err != nil {
		t.Fatal(err)
	}
	if p1.ID != p2.ID {
		t.Fatal("second load should return the same project")
	}

	projects, _ := s.ListProjects()
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
}

func TestAddTime(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("work")

	if err := s.AddTime(p.ID, 42, 60); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTime(p.ID, 8, 10); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetProject(p.ID)
	if got.FocusSeconds != 50 {
		t.Fatalf("focus seconds = %d, want 50", got.FocusSeconds)
	}
	if got.TotalSeconds != 70 {
		t.Fatalf("total seconds = %d, want 70", got.TotalSeconds)
	}
}

func TestListProjectsSorted(t *testing.T) {
	s := newTestStore(t)
	s.CreateProject("zeta")
	s.CreateProject("alpha")

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 2 || projects[0].Name != "alpha" {
		t.Fatalf("expected alphabetical order, got %+v", projects)
	}
}

// ============================================================
// Cycle configuration
// ============================================================

func TestLoadConfigDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := timer.DefaultConfig()
	if cfg != want {
		t.Fatalf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	s := newTestStore(t)

	saved := timer.Config{Focus: 50, Break: 10, LongBreak: 30, Cycles: 3}
	if err := s.SaveConfig(saved); err != nil {
		t.Fatal(err)
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != saved {
		t.Fatalf("config = %+v, want %+v", cfg, saved)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("focus_minutes", "banana")
	s.SetSetting("cycles", "-2")

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Focus != 25 || cfg.Cycles != 4 {
		t.Fatalf("malformed values should fall back to defaults, got %+v", cfg)
	}
}

// ============================================================
// Sessions
// ============================================================

func TestRecordAndListSessions(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("work")

	start := time.Now().UTC().Add(-25 * time.Minute)
	sess, err := s.RecordSession(p.ID, "FOCUS", start, start.Add(25*time.Minute), 1500, true)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Duration != 1500 || !sess.Completed || sess.Period != "FOCUS" {
		t.Fatalf("unexpected session %+v", sess)
	}

	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
}

func TestListSessionsLimitAndOrder(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.CreateProject("work")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * 10 * time.Minute)
		s.RecordSession(p.ID, "FOCUS", start, start.Add(5*time.Minute), 300, true)
	}

	sessions, err := s.ListSessions(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].StartedAt.After(sessions[1].StartedAt) {
		t.Fatal("sessions should be newest first")
	}
}

func TestGetDailyFocus(t *testing.T) {
	s := newTestStore(t)
	work, _ := s.CreateProject("work")
	play, _ := s.CreateProject("play")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)

	s.RecordSession(work.ID, "FOCUS", today, today.Add(25*time.Minute), 1500, true)
	s.RecordSession(work.ID, "FOCUS", today.Add(time.Hour), today.Add(time.Hour+25*time.Minute), 1500, true)
	s.RecordSession(play.ID, "FOCUS", today, today.Add(10*time.Minute), 600, false)
	// Breaks never count as focus.
	s.RecordSession(work.ID, "BREAK", today, today.Add(5*time.Minute), 300, true)

	from := today.AddDate(0, 0, -1)
	to := today.AddDate(0, 0, 1)
	days, err := s.GetDailyFocus(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 aggregates, got %d: %+v", len(days), days)
	}

	byName := make(map[string]DailyFocus)
	for _, d := range days {
		byName[d.ProjectName] = d
	}
	if byName["work"].TotalSeconds != 3000 || byName["work"].SessionCount != 2 {
		t.Fatalf("work aggregate wrong: %+v", byName["work"])
	}
	if byName["play"].TotalSeconds != 600 {
		t.Fatalf("play aggregate wrong: %+v", byName["play"])
	}
}
