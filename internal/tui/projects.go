package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/store"
)

// projectsModel is the project-list view: pick the accrual target, create
// projects, and see where focus time went over the last week.
type projectsModel struct {
	store *store.Store
	st    styles

	width  int
	height int

	projects []store.Project
	daily    []store.DailyFocus
	cursor   int
	activeID int64

	chart barchart.Model

	formActive bool
	form       *huh.Form
	formName   *string
}

func newProjectsModel(s *store.Store, st styles) projectsModel {
	name := ""
	return projectsModel{
		store:    s,
		st:       st,
		chart:    barchart.New(60, 10),
		formName: &name,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, _ := p.store.ListProjects()

		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		from := today.AddDate(0, 0, -6)
		daily, _ := p.store.GetDailyFocus(from, today.AddDate(0, 0, 1))

		return projectsDataMsg{projects: projects, daily: daily}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		p.daily = msg.daily
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		p.buildChart()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(p.projects) > 0 {
				picked := p.projects[p.cursor]
				return p, func() tea.Msg {
					return projectPickedMsg{project: &picked}
				}
			}
		case key.Matches(msg, keys.New):
			return p.showNewProjectForm()
		}
	}
	return p, nil
}

func (p projectsModel) showNewProjectForm() (projectsModel, tea.Cmd) {
	*p.formName = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(p.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if *p.formName != "" {
			p.store.LoadOrCreateProject(*p.formName)
		}
		return p, p.refresh()
	}

	return p, cmd
}

// chartColors rotate through the theme accents, one per project.
func (p projectsModel) chartColors() []lipgloss.Color {
	t := p.st.theme
	return []lipgloss.Color{
		lipgloss.Color(t.Base0D),
		lipgloss.Color(t.Base0B),
		lipgloss.Color(t.Base08),
		lipgloss.Color(t.Base09),
		lipgloss.Color(t.Base0A),
		lipgloss.Color(t.Base0C),
		lipgloss.Color(t.Base0E),
	}
}

// colorByProject assigns each project a stable accent for chart and legend.
func (p projectsModel) colorByProject() map[int64]lipgloss.Color {
	colors := p.chartColors()
	byID := make(map[int64]lipgloss.Color, len(p.projects))
	for i, proj := range p.projects {
		byID[proj.ID] = colors[i%len(colors)]
	}
	return byID
}

func (p *projectsModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if p.height > 28 {
		chartHeight = 12
	}

	p.chart = barchart.New(chartWidth, chartHeight)
	byID := p.colorByProject()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -6)

	var bars []barchart.BarData
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, day := range p.daily {
			if day.Date == dateStr {
				hours := float64(day.TotalSeconds) / 3600.0
				values = append(values, barchart.BarValue{
					Name:  day.ProjectName,
					Value: hours,
					Style: lipgloss.NewStyle().Foreground(byID[day.ProjectID]),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: p.st.muted}}
		}

		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p projectsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := p.st.title.Render("New Project")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return p.st.panel.Width(w).Render(content)
	}

	title := p.st.title.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			p.st.muted.Render("No projects yet. Press n to create one."),
		)
		return p.st.panel.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	header := p.st.muted.Render(fmt.Sprintf("  %-3s %-20s %-14s %-14s", "", "Name", "Focus", "Total"))
	rows = append(rows, header)

	byID := p.colorByProject()
	for i, proj := range p.projects {
		dot := lipgloss.NewStyle().Foreground(byID[proj.ID]).Render("●")
		cursor := "  "
		style := p.st.normal
		if i == p.cursor {
			cursor = "> "
			style = p.st.selected
		}
		marker := " "
		if proj.ID == p.activeID {
			marker = p.st.success.Render("*")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s%s %-20s %-14s %-14s",
			cursor, marker, dot, truncateName(proj.Name, 20),
			formatSpent(proj.FocusSeconds), formatSpent(proj.TotalSeconds),
		)))
	}

	rows = append(rows, "", p.st.muted.Render("  last 7 days (hours of focus)"))
	rows = append(rows, p.chart.View())
	rows = append(rows, "", p.st.muted.Render("  enter: track  n: new  e: export  p: back  q: quit"))

	return p.st.panel.Width(w).Render(strings.Join(rows, "\n"))
}

func truncateName(name string, width int) string {
	if len(name) <= width {
		return name
	}
	return name[:width-3] + "..."
}
