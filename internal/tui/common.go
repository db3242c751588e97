package tui

import (
	"fmt"
	"time"

	"pomo/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewProjects
)

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type projectsDataMsg struct {
	projects []store.Project
	daily    []store.DailyFocus
}

// projectPickedMsg switches the accrual target for subsequent focus time.
type projectPickedMsg struct {
	project *store.Project
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders remaining seconds as mm:ss, the countdown format.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// formatSpent renders accumulated project time as "3h 04m 05s" (or
// "4m 05s" under an hour).
func formatSpent(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
