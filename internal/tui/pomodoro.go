package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/planner"
)

type pomodoroPhase int

const (
	pomodoroIdle pomodoroPhase = iota
	pomodoroRunning
	pomodoroPaused
)

// pomodoroModel drives the focus/break timer. A session is written to the
// ledger only when it finishes (naturally or via "finish now"); cancelling
// a running timer records nothing. Time only advances through advance(),
// fed by the app's one-second tick, so the state machine is deterministic.
type pomodoroModel struct {
	ledger *planner.Ledger
	width  int
	height int

	phase   pomodoroPhase
	mode    planner.SessionMode
	planned time.Duration
	elapsed time.Duration
	started time.Time

	linkedEntryID    string
	linkedEntryTitle string

	focusDuration time.Duration
	breakDuration time.Duration

	recordedToday int
}

func newPomodoroModel(l *planner.Ledger, focus, brk time.Duration) pomodoroModel {
	if focus <= 0 {
		focus = 25 * time.Minute
	}
	if brk <= 0 {
		brk = 5 * time.Minute
	}
	return pomodoroModel{
		ledger:        l,
		mode:          planner.ModeFocus,
		focusDuration: focus,
		breakDuration: brk,
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

// linkTo ties the next session to a planner entry.
func (p *pomodoroModel) linkTo(id, title string) {
	p.linkedEntryID = id
	p.linkedEntryTitle = title
}

func (p pomodoroModel) running() bool {
	return p.phase == pomodoroRunning || p.phase == pomodoroPaused
}

func (p pomodoroModel) remaining() time.Duration {
	r := p.planned - p.elapsed
	if r < 0 {
		r = 0
	}
	return r
}

// start begins a focus or break interval. No ledger write happens here.
func (p pomodoroModel) start(mode planner.SessionMode) (pomodoroModel, tea.Cmd) {
	if p.running() {
		return p, nil
	}
	p.mode = mode
	p.planned = p.focusDuration
	if mode == planner.ModeBreak {
		p.planned = p.breakDuration
	}
	p.elapsed = 0
	p.started = time.Now()
	p.phase = pomodoroRunning
	return p, nil
}

func (p pomodoroModel) pauseResume() (pomodoroModel, tea.Cmd) {
	switch p.phase {
	case pomodoroRunning:
		p.phase = pomodoroPaused
	case pomodoroPaused:
		p.phase = pomodoroRunning
	}
	return p, nil
}

// cancel abandons the running interval. Nothing reaches the ledger.
func (p pomodoroModel) cancel() (pomodoroModel, tea.Cmd) {
	if !p.running() {
		return p, nil
	}
	p.phase = pomodoroIdle
	p.elapsed = 0
	return p, func() tea.Msg {
		return statusMsg{text: "Session cancelled — nothing recorded"}
	}
}

// finish ends the interval now and records it. Completed is true only when
// the planned duration was actually reached.
func (p pomodoroModel) finish() (pomodoroModel, tea.Cmd) {
	if !p.running() {
		return p, nil
	}
	return p.record()
}

// advance moves the timer forward by d. When the planned duration is
// reached the session records itself and the timer stops.
func (p pomodoroModel) advance(d time.Duration) (pomodoroModel, tea.Cmd) {
	if p.phase != pomodoroRunning {
		return p, nil
	}
	p.elapsed += d
	if p.elapsed >= p.planned {
		p.elapsed = p.planned
		return p.record()
	}
	return p, nil
}

func (p pomodoroModel) record() (pomodoroModel, tea.Cmd) {
	end := p.started.Add(p.elapsed)
	completed := p.elapsed >= p.planned
	sess := planner.Session{
		Start:           p.started,
		End:             &end,
		Mode:            p.mode,
		DurationSeconds: int(p.elapsed.Seconds()),
		LinkedEntryID:   p.linkedEntryID,
		Completed:       completed,
	}
	if _, err := p.ledger.Append(sess); err != nil {
		p.phase = pomodoroIdle
		return p, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Record error: %v", err), isError: true}
		}
	}

	p.phase = pomodoroIdle
	p.elapsed = 0
	if p.mode == planner.ModeFocus {
		p.recordedToday++
	}
	return p, func() tea.Msg {
		return sessionRecordedMsg{completed: completed}
	}
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return p.advance(time.Second)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !p.running() {
				return p.start(planner.ModeFocus)
			}
		case key.Matches(msg, keys.Enter):
			if !p.running() {
				return p.start(planner.ModeBreak)
			}
		case key.Matches(msg, keys.Pause):
			return p.pauseResume()
		case key.Matches(msg, keys.Cancel):
			return p.cancel()
		case key.Matches(msg, keys.Finish):
			return p.finish()
		}
	}
	return p, nil
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Pomodoro")

	var timeDisplay, label, controls string
	switch p.phase {
	case pomodoroIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatPomodoroTime(p.focusDuration))
		label = mutedStyle.Render("Ready")
		controls = mutedStyle.Render("s: focus  enter: break  q: quit")
	case pomodoroRunning:
		style := accentStyle
		name := "FOCUS"
		if p.mode == planner.ModeBreak {
			style = successStyle
			name = "BREAK"
		}
		timeDisplay = style.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatPomodoroTime(p.remaining()))
		label = style.Bold(true).Render(name)
		controls = mutedStyle.Render("space: pause  f: finish now  x: cancel")
	case pomodoroPaused:
		timeDisplay = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatPomodoroTime(p.remaining()))
		label = warningStyle.Bold(true).Render("PAUSED")
		controls = mutedStyle.Render("space: resume  f: finish now  x: cancel")
	}

	linked := ""
	if p.linkedEntryTitle != "" {
		linked = mutedStyle.Render("→ " + p.linkedEntryTitle)
	}
	counter := mutedStyle.Render(fmt.Sprintf("focus sessions recorded: %d", p.recordedToday))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", timeDisplay, label, "", linked, counter, "", controls,
	)
	return panelStyle.Width(w).Render(content)
}

func formatPomodoroTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
