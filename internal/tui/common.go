package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewAgenda viewState = iota
	viewBoard
	viewPomodoro
	viewNotes
	viewHealth
)

var viewNames = []string{"Agenda", "Board", "Pomodoro", "Notes", "Health"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type sessionRecordedMsg struct {
	completed bool
}

type exportDoneMsg struct {
	path string
}

type healthDataMsg struct {
	days []healthDay
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatClock(t time.Time) string {
	return t.Format("15:04")
}

func formatDay(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}
