package store

import "time"

type Project struct {
	ID           int64
	Name         string
	FocusSeconds int64
	TotalSeconds int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one finished period attributed to a project. Completed is
// false when the period was cut short (skip or quit mid-focus).
type Session struct {
	ID        int64
	ProjectID int64
	Period    string // FOCUS, BREAK, LONG BREAK
	StartedAt time.Time
	EndedAt   time.Time
	Duration  int64 // seconds
	Completed bool
}

type Setting struct {
	Key   string
	Value string
}

// DailyFocus is aggregated focus time per project per day, for the chart.
type DailyFocus struct {
	Date         string
	ProjectID    int64
	ProjectName  string
	TotalSeconds int64
	SessionCount int
}
