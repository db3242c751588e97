package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"pomo/internal/export"
	"pomo/internal/store"
	"pomo/internal/timer"
)

// App is the root Bubble Tea model: the single consumer of ticks and key
// events, sole driver of the session clock, and owner of the unsaved time
// that gets flushed to the active project on quit.
type App struct {
	store *store.Store
	clock *timer.Clock
	log   zerolog.Logger
	st    styles

	width  int
	height int

	activeView viewState
	showHelp   bool
	help       help.Model

	project     *store.Project // accrual target for focus time
	periodStart time.Time      // zero until the current period first runs

	projects projectsModel

	exportPicking bool
	exportCursor  int

	status    string
	statusErr bool

	// FlushErr records a failed save-on-quit so main can surface it after
	// the terminal is restored.
	FlushErr error
}

func NewApp(s *store.Store, clock *timer.Clock, project *store.Project, logger zerolog.Logger, theme Theme) App {
	h := help.New()
	h.ShowAll = false

	st := newStyles(theme)
	projects := newProjectsModel(s, st)
	projects.activeID = project.ID

	return App{
		store:      s,
		clock:      clock,
		log:        logger,
		st:         st,
		activeView: viewTimer,
		project:    project,
		projects:   projects,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.projects.setSize(msg.Width, msg.Height-4)
		return a, nil

	case tickMsg:
		cmd := a.dispatchTick()
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case projectsDataMsg:
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		return a, cmd

	case projectPickedMsg:
		return a.switchProject(msg.project)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.activeView == viewProjects {
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit keys work everywhere; both paths flush unsaved time.
	if key.Matches(msg, keys.ForceQuit) {
		return a.quit()
	}

	if a.exportPicking {
		return a.updateExportPicker(msg)
	}

	// A project form owns the keyboard while open (esc cancels it).
	if a.activeView == viewProjects && a.projects.formActive {
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit()

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil

	case key.Matches(msg, keys.Export):
		a.exportPicking = true
		a.exportCursor = 0
		return a, nil

	case key.Matches(msg, keys.Projects):
		if a.activeView == viewProjects {
			a.activeView = viewTimer
			return a, nil
		}
		a.activeView = viewProjects
		return a, a.projects.refresh()

	case key.Matches(msg, keys.Toggle):
		if a.clock.Status() == timer.StatusIdle {
			a.periodStart = time.Now()
		}
		a.clock.Toggle()
		return a, nil

	case key.Matches(msg, keys.Reset):
		a.clock.Reset()
		a.periodStart = time.Time{}
		return a, nil

	case key.Matches(msg, keys.Skip):
		elapsed := a.periodElapsed()
		ev := a.clock.Skip()
		return a, a.finishPeriod(ev, elapsed, false)
	}

	if a.activeView == viewProjects {
		var cmd tea.Cmd
		a.projects, cmd = a.projects.update(msg)
		return a, cmd
	}
	return a, nil
}

// dispatchTick advances the clock by one second and reacts to a period
// running out.
func (a *App) dispatchTick() tea.Cmd {
	if !a.clock.Running() {
		return nil
	}
	elapsed := a.periodElapsed()
	ev := a.clock.Tick()
	if ev.Type == timer.EventPeriodEnd {
		// The final tick is part of the finished period.
		return a.finishPeriod(ev, elapsed+1, true)
	}
	return nil
}

// periodElapsed is how many seconds of the current period have been spent.
func (a App) periodElapsed() int64 {
	return int64(a.clock.Config().Seconds(a.clock.Period()) - a.clock.Remaining())
}

// finishPeriod records the finished period and announces the next one.
func (a *App) finishPeriod(ev timer.Event, elapsedSecs int64, natural bool) tea.Cmd {
	start := a.periodStart
	a.periodStart = time.Time{}

	if elapsedSecs > 0 {
		end := time.Now()
		if start.IsZero() {
			start = end.Add(-time.Duration(elapsedSecs) * time.Second)
		}
		if _, err := a.store.RecordSession(a.project.ID, ev.Completed.String(), start, end, elapsedSecs, natural); err != nil {
			a.log.Warn().Err(err).Msg("record session")
		}
	}

	var text string
	switch ev.Next {
	case timer.PeriodFocus:
		text = "break over — back to focus"
	case timer.PeriodLongBreak:
		text = "focus complete — long break earned"
	default:
		text = "focus complete — take a break"
	}
	return func() tea.Msg {
		return statusMsg{text: text + "\a"}
	}
}

// switchProject redirects subsequent accrual to a new target. Time already
// accrued belongs to the old target and is flushed to it first.
func (a App) switchProject(p *store.Project) (tea.Model, tea.Cmd) {
	if p.ID == a.project.ID {
		a.activeView = viewTimer
		return a, nil
	}
	if err := a.flushDeltas(); err != nil {
		a.log.Error().Err(err).Msg("flush on project switch")
	}
	a.project = p
	a.projects.activeID = p.ID
	a.activeView = viewTimer
	a.status = "tracking project " + p.Name
	a.statusErr = false
	return a, nil
}

// flushDeltas persists unsaved focus/total seconds to the active project.
// Draining the clock makes this safe to call on every quit path without
// double-crediting.
func (a App) flushDeltas() error {
	focus, total := a.clock.DrainDeltas()
	if focus == 0 && total == 0 {
		return nil
	}
	return a.store.AddTime(a.project.ID, focus, total)
}

func (a App) quit() (tea.Model, tea.Cmd) {
	// A focus period cut off by quitting still counts the time it ran.
	if a.clock.Period() == timer.PeriodFocus && !a.periodStart.IsZero() {
		if elapsed := a.periodElapsed(); elapsed > 0 {
			if _, err := a.store.RecordSession(a.project.ID, timer.PeriodFocus.String(), a.periodStart, time.Now(), elapsed, false); err != nil {
				a.log.Warn().Err(err).Msg("record partial session")
			}
		}
		a.periodStart = time.Time{}
	}

	if err := a.flushDeltas(); err != nil {
		// No retry is possible past this point; report and terminate anyway.
		a.log.Error().Err(err).Msg("save on quit")
		a.FlushErr = err
	}
	return a, tea.Quit
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	if a.exportPicking {
		content = a.renderExportPicker()
	} else if a.activeView == viewProjects {
		content = a.projects.view()
	} else {
		content = a.renderTimer()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := a.st.title.Render("pomo")
	project := a.st.muted.Render("project: ") + a.st.selected.Render(a.project.Name)

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(project) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, project),
	)
}

func (a App) renderFooter() string {
	helpView := a.st.footer.Render(a.help.View(keys))

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = a.st.errText.Render(" " + a.status)
		} else {
			status = a.st.muted.Render(" " + a.status)
		}
	}

	gap := a.width - lipgloss.Width(helpView) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, helpView, spacer, status)
}

func (a App) renderTimer() string {
	w := a.width - 4
	accent := a.st.periodStyle(a.clock.Period())

	title := accent.Width(w - 6).Align(lipgloss.Center).Render(a.clock.Period().String())
	clock := accent.Width(w - 6).Align(lipgloss.Center).Render(renderBigClock(a.clock.Remaining()))

	cfg := a.clock.Config()
	info := a.st.muted.Width(w - 6).Align(lipgloss.Center).Render(fmt.Sprintf(
		"cycle: %d/%d | status: %s",
		a.clock.CurrentCycle(), cfg.Cycles, a.clock.Status(),
	))

	spent := a.project.FocusSeconds + a.clock.FocusDelta()
	tracked := a.st.muted.Width(w - 6).Align(lipgloss.Center).Render(fmt.Sprintf(
		"%s — %s focused", a.project.Name, formatSpent(spent),
	))

	hints := a.st.muted.Width(w - 6).Align(lipgloss.Center).Render(
		"[space] pause/play  [r] reset  [s] skip  [p] projects  [q] quit",
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", clock, "", info, tracked, "", hints,
	)
	return a.st.panel.Width(w).Render(content)
}

func (a App) renderExportPicker() string {
	title := a.st.title.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title, "")
	for i, f := range formats {
		cursor := "  "
		style := a.st.normal
		if i == a.exportCursor {
			cursor = "> "
			style = a.st.selected
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", a.st.muted.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return a.st.panel.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Quit):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := a.store.ListSessions(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("export error: %v", err), isError: true}
		}

		projects := make(map[int64]*store.Project)
		plist, _ := a.store.ListProjects()
		for i := range plist {
			projects[plist[i].ID] = &plist[i]
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.csv", dateStr))
			err = export.ToCSV(sessions, projects, path)
		} else {
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.json", dateStr))
			err = export.ToJSON(sessions, projects, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
