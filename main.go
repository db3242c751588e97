package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"pomo/internal/logutils"
	"pomo/internal/store"
	"pomo/internal/timer"
	"pomo/internal/tui"
)

func main() {
	cmd := &cli.Command{
		Name:  "pomo",
		Usage: "terminal pomodoro timer with per-project time tracking",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "focus",
				Aliases: []string{"f"},
				Usage:   "focus time in minutes",
			},
			&cli.IntFlag{
				Name:    "break-time",
				Aliases: []string{"b"},
				Usage:   "break time in minutes",
			},
			&cli.IntFlag{
				Name:    "long-break",
				Aliases: []string{"l"},
				Usage:   "long break time in minutes",
			},
			&cli.IntFlag{
				Name:    "cycles",
				Aliases: []string{"c"},
				Usage:   "number of cycles before a long break",
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "project that completed focus time is tracked against",
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the database file",
				Sources: cli.EnvVars("POMO_DB"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("POMO_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	dbPath := c.String("db")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}

	// The TUI owns the terminal, so logs go to a file beside the database.
	logFile := filepath.Join(filepath.Dir(dbPath), "pomo.log")
	logger, closeLog, err := logutils.New(c.String("log-level"), logFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	cfg, err := s.LoadConfig()
	if err != nil {
		logger.Warn().Err(err).Msg("load stored config, using defaults")
		cfg = timer.DefaultConfig()
	}

	// Command-line overrides beat stored settings, which beat defaults.
	if c.IsSet("focus") {
		cfg.Focus = int(c.Int("focus"))
	}
	if c.IsSet("break-time") {
		cfg.Break = int(c.Int("break-time"))
	}
	if c.IsSet("long-break") {
		cfg.LongBreak = int(c.Int("long-break"))
	}
	if c.IsSet("cycles") {
		cfg.Cycles = int(c.Int("cycles"))
	}

	clock, err := timer.New(cfg)
	if err != nil {
		return err
	}

	// The effective configuration becomes the stored default for next time.
	if err := s.SaveConfig(cfg); err != nil {
		logger.Warn().Err(err).Msg("persist config")
	}

	name := c.String("project")
	if name == "" {
		name = "unassigned"
	}
	project, err := s.LoadOrCreateProject(name)
	if err != nil {
		return fmt.Errorf("resolve project %q: %w", name, err)
	}

	themePath, err := tui.DefaultThemePath()
	if err != nil {
		themePath = ""
	}
	theme := tui.DefaultTheme()
	if themePath != "" {
		theme, err = tui.LoadTheme(themePath)
		if err != nil {
			logger.Warn().Err(err).Msg("load theme, using built-in")
		}
	}

	logger.Info().
		Str("project", project.Name).
		Int("focus", cfg.Focus).
		Int("break", cfg.Break).
		Int("long_break", cfg.LongBreak).
		Int("cycles", cfg.Cycles).
		Msg("starting")

	app := tui.NewApp(s, clock, project, logger, theme)
	p := tea.NewProgram(app, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// A failed save-on-quit cannot be retried; report it once the terminal
	// is back, but still exit cleanly.
	if a, ok := model.(tui.App); ok && a.FlushErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save tracked time: %v\n", a.FlushErr)
	}
	return nil
}
