package timer

import (
	"fmt"
	"time"
)

// Period is one phase of the pomodoro cycle.
type Period int

const (
	PeriodFocus Period = iota
	PeriodShortBreak
	PeriodLongBreak
)

func (p Period) String() string {
	switch p {
	case PeriodFocus:
		return "FOCUS"
	case PeriodShortBreak:
		return "BREAK"
	case PeriodLongBreak:
		return "LONG BREAK"
	}
	return "UNKNOWN"
}

// Status tracks whether the countdown is advancing.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	}
	return "idle"
}

// Config holds the cycle durations. All values are positive integers;
// durations are in minutes.
type Config struct {
	Focus     int
	Break     int
	LongBreak int
	Cycles    int
}

// DefaultConfig returns the classic 25/5/15 pomodoro with 4 cycles.
func DefaultConfig() Config {
	return Config{Focus: 25, Break: 5, LongBreak: 15, Cycles: 4}
}

func (c Config) Validate() error {
	if c.Focus <= 0 {
		return fmt.Errorf("focus duration must be positive, got %d", c.Focus)
	}
	if c.Break <= 0 {
		return fmt.Errorf("break duration must be positive, got %d", c.Break)
	}
	if c.LongBreak <= 0 {
		return fmt.Errorf("long break duration must be positive, got %d", c.LongBreak)
	}
	if c.Cycles <= 0 {
		return fmt.Errorf("cycle count must be positive, got %d", c.Cycles)
	}
	return nil
}

// Seconds returns the configured duration of a period in seconds.
func (c Config) Seconds(p Period) int {
	switch p {
	case PeriodShortBreak:
		return c.Break * 60
	case PeriodLongBreak:
		return c.LongBreak * 60
	default:
		return c.Focus * 60
	}
}

// Duration returns the configured duration of a period.
func (c Config) Duration(p Period) time.Duration {
	return time.Duration(c.Seconds(p)) * time.Second
}

// EventType describes what a clock operation did.
type EventType int

const (
	EventNone EventType = iota
	EventTick
	EventPeriodEnd
)

// Event is emitted after a transition so the caller can redraw or notify.
type Event struct {
	Type      EventType
	Completed Period // valid when Type == EventPeriodEnd
	Next      Period // valid when Type == EventPeriodEnd
}

// Clock is the countdown/cycle state machine. It performs no I/O; time
// advances only through explicit Tick calls, and all other mutations come
// from the enumerated user commands. A Clock is not safe for concurrent
// use — it is owned by a single event loop.
type Clock struct {
	cfg       Config
	period    Period
	remaining int // seconds left in the current period
	completed int // focus periods finished since the last long break
	status    Status

	// Unsaved per-project time, flushed by the owner on quit or when the
	// accrual target changes. Focus counts only running focus ticks; total
	// counts every running tick.
	focusDelta int64
	totalDelta int64
}

// New builds an idle clock positioned at the start of a focus period.
func New(cfg Config) (*Clock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timer config: %w", err)
	}
	return &Clock{
		cfg:       cfg,
		period:    PeriodFocus,
		remaining: cfg.Seconds(PeriodFocus),
		status:    StatusIdle,
	}, nil
}

// Start begins or resumes the countdown. No-op while running.
func (c *Clock) Start() {
	if c.status != StatusRunning {
		c.status = StatusRunning
	}
}

// Pause freezes a running countdown. No-op otherwise.
func (c *Clock) Pause() {
	if c.status == StatusRunning {
		c.status = StatusPaused
	}
}

// Toggle flips between running and not running (space key).
func (c *Clock) Toggle() {
	if c.status == StatusRunning {
		c.Pause()
	} else {
		c.Start()
	}
}

// Reset restores the current period to its full duration and stops the
// countdown. The cycle counter and unsaved deltas are untouched.
func (c *Clock) Reset() {
	c.remaining = c.cfg.Seconds(c.period)
	c.status = StatusIdle
}

// Skip completes the current period immediately. Remaining time is
// discarded, not credited; time already ticked away stays accrued.
func (c *Clock) Skip() Event {
	return c.advance()
}

// Tick advances the countdown by one second. It does nothing unless the
// clock is running. When the current period reaches zero the clock lands
// idle at the start of the next period — it never auto-starts.
func (c *Clock) Tick() Event {
	if c.status != StatusRunning {
		return Event{Type: EventNone}
	}
	c.remaining--
	c.totalDelta++
	if c.period == PeriodFocus {
		c.focusDelta++
	}
	if c.remaining <= 0 {
		return c.advance()
	}
	return Event{Type: EventTick}
}

// advance applies the period-completion policy: a finished focus period
// leads to a short break, or to a long break when it closes the cycle;
// any finished break leads back to focus.
func (c *Clock) advance() Event {
	done := c.period
	if c.period == PeriodFocus {
		if c.completed+1 == c.cfg.Cycles {
			c.period = PeriodLongBreak
			c.completed = 0
		} else {
			c.period = PeriodShortBreak
			c.completed++
		}
	} else {
		c.period = PeriodFocus
	}
	c.remaining = c.cfg.Seconds(c.period)
	c.status = StatusIdle
	return Event{Type: EventPeriodEnd, Completed: done, Next: c.period}
}

func (c *Clock) Period() Period { return c.period }
func (c *Clock) Status() Status { return c.status }
func (c *Clock) Remaining() int { return c.remaining }
func (c *Clock) Config() Config { return c.cfg }
func (c *Clock) Running() bool  { return c.status == StatusRunning }

// CompletedCycles reports focus periods finished since the last long break.
func (c *Clock) CompletedCycles() int { return c.completed }

// CurrentCycle is the 1-based cycle number shown in the UI.
func (c *Clock) CurrentCycle() int {
	if c.period == PeriodLongBreak {
		return c.cfg.Cycles
	}
	if c.period == PeriodFocus {
		return c.completed + 1
	}
	return c.completed
}

// FocusDelta reports unsaved focus seconds accrued since the last drain.
func (c *Clock) FocusDelta() int64 { return c.focusDelta }

// TotalDelta reports unsaved seconds of any running period since the last drain.
func (c *Clock) TotalDelta() int64 { return c.totalDelta }

// DrainDeltas returns the unsaved focus/total seconds and zeroes both.
// Callers persist the returned values; draining makes the quit-path flush
// idempotent.
func (c *Clock) DrainDeltas() (focus, total int64) {
	focus, total = c.focusDelta, c.totalDelta
	c.focusDelta, c.totalDelta = 0, 0
	return focus, total
}
