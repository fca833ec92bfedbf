package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/config"
	applog "dayplan/internal/log"
	"dayplan/internal/planner"
	"dayplan/internal/store"
	"dayplan/internal/tui"
)

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		cfgPath = ""
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		applog.Error("config load failed, using defaults", err, "path", cfgPath)
	}
	applog.SetLevel(applog.ParseLevel(cfg.LogLevel))

	dbPath, err := cfg.DBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Open never fails hard: a corrupt file is set aside and recreated,
	// and if even that fails we run memory-only for the session.
	s, warning := store.Open(dbPath)
	if warning != "" {
		applog.Error("store degraded", nil, "warning", warning)
	}

	var persister planner.Persister = planner.NopPersister{}
	var health tui.HealthSource
	snap := planner.Snapshot{}
	focus := time.Duration(cfg.FocusMinutes) * time.Minute
	brk := time.Duration(cfg.BreakMinutes) * time.Minute
	stepGoal := 8000

	if s != nil {
		defer s.Close()
		persister = s
		health = s

		if legacyPath, err := cfg.LegacySessionsPath(); err == nil {
			if n, err := s.ImportLegacySessions(legacyPath); err != nil {
				applog.Error("legacy session import failed", err, "path", legacyPath)
			} else if n > 0 {
				applog.Info("imported legacy sessions", "count", n)
			}
		}

		snap, err = s.LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading data: %v\n", err)
			os.Exit(1)
		}

		focus = time.Duration(s.GetSettingInt("focus_seconds", cfg.FocusMinutes*60)) * time.Second
		brk = time.Duration(s.GetSettingInt("break_seconds", cfg.BreakMinutes*60)) * time.Second
		stepGoal = s.GetSettingInt("daily_step_goal", 8000)
	}

	p := planner.FromSnapshot(persister, snap)

	app := tui.NewApp(p, health, focus, brk, stepGoal)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
