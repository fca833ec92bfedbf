// Package tui implements the terminal interface: an agenda, a task
// board, the Pomodoro timer, notes, and the health dashboard, all views
// over the shared planner core.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/export"
	"dayplan/internal/planner"
)

// App is the root bubbletea model. It owns the tab state and the shared
// one-second tick, and delegates everything else to the per-view models.
type App struct {
	planner *planner.Planner
	width   int
	height  int

	activeView viewState
	showHelp   bool

	agenda   agendaModel
	board    boardModel
	pomodoro pomodoroModel
	notes    notesModel
	health   healthModel

	help   help.Model
	status statusMsg

	exportPicking bool
	exportCursor  int
}

var exportFormats = []string{"CSV", "JSON", "ICS"}

func NewApp(p *planner.Planner, health HealthSource, focus, brk time.Duration, stepGoal int) App {
	return App{
		planner:  p,
		agenda:   newAgendaModel(p),
		board:    newBoardModel(p),
		pomodoro: newPomodoroModel(p.Sessions, focus, brk),
		notes:    newNotesModel(p),
		health:   newHealthModel(health, stepGoal),
		help:     help.New(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), a.health.refresh())
}

// isFormActive reports whether the active view is showing a form, in
// which case global key handling steps aside.
func (a App) isFormActive() bool {
	switch a.activeView {
	case viewAgenda:
		return a.agenda.formActive()
	case viewNotes:
		return a.notes.formActive()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4
		a.agenda.setSize(a.width, contentHeight)
		a.board.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.health.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		// The timer keeps running no matter which tab is showing.
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.advance(time.Second)
		return a, tea.Batch(cmd, tickCmd())

	case statusMsg:
		a.status = msg
		return a, nil

	case sessionRecordedMsg:
		if msg.completed {
			a.status = statusMsg{text: "Session complete 🍅"}
		} else {
			a.status = statusMsg{text: "Session recorded (finished early)"}
		}
		return a, nil

	case exportDoneMsg:
		a.status = statusMsg{text: "Exported to " + msg.path}
		return a, nil

	case healthDataMsg:
		var cmd tea.Cmd
		a.health, cmd = a.health.update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.isFormActive() {
			// Forms own the keyboard except for ctrl+c.
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a.routeToActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewAgenda
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewBoard
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewPomodoro
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewNotes
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewHealth
			return a, a.health.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewHealth {
				return a, a.health.refresh()
			}
			return a, nil
		}
		return a.routeToActiveView(msg)
	}

	return a.routeToActiveView(msg)
}

func (a App) routeToActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewAgenda:
		a.agenda, cmd = a.agenda.update(msg)
	case viewBoard:
		a.board, cmd = a.board.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewHealth:
		a.health, cmd = a.health.update(msg)
	}
	return a, cmd
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
		return a, nil
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		format := exportFormats[a.exportCursor]
		a.exportPicking = false
		return a, a.doExport(format)
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	p := a.planner
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		name := "dayplan-export-" + time.Now().Format("2006-01-02") + "." + strings.ToLower(format)
		path := filepath.Join(home, name)

		switch format {
		case "CSV":
			err = export.ToCSV(p.Entries.All(), path)
		case "JSON":
			err = export.ToJSON(p.Entries.All(), p.Sessions.All(), path)
		case "ICS":
			err = export.ToICS(p.Entries.All(), path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
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
	} else {
		switch a.activeView {
		case viewAgenda:
			content = a.agenda.view()
		case viewBoard:
			content = a.board.view()
		case viewPomodoro:
			content = a.pomodoro.view()
		case viewNotes:
			content = a.notes.view()
		case viewHealth:
			content = a.health.view()
		}
	}

	if a.showHelp {
		content += "\n" + a.help.FullHelpView(keys.FullHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	title := titleStyle.Render(" dayplan ")
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, title, row))
}

func (a App) renderFooter() string {
	left := a.help.ShortHelpView(keys.ShortHelp())

	var parts []string
	if a.pomodoro.running() {
		indicator := accentStyle.Render("● " + formatPomodoroTime(a.pomodoro.remaining()))
		if a.pomodoro.phase == pomodoroPaused {
			indicator = warningStyle.Render("⏸ " + formatPomodoroTime(a.pomodoro.remaining()))
		}
		parts = append(parts, indicator)
	}
	if a.status.text != "" {
		style := mutedStyle
		if a.status.isError {
			style = errorStyle
		}
		parts = append(parts, style.Render(a.status.text))
	}
	right := strings.Join(parts, "  ")

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return footerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (a App) renderExportPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Export"))
	b.WriteString("\n\n")
	for i, f := range exportFormats {
		if i == a.exportCursor {
			b.WriteString(selectedItemStyle.Render("▸ " + f))
		} else {
			b.WriteString(normalItemStyle.Render("  " + f))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter: export  esc: cancel"))
	return activePanelStyle.Width(a.width - 4).Render(b.String())
}
