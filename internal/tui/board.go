package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/planner"
)

// boardModel is the three-column task board: todo, in progress, done.
// Timed events never appear here; enter advances the selected task to the
// next workflow state.
type boardModel struct {
	planner *planner.Planner
	width   int
	height  int

	col int
	row int
}

func newBoardModel(p *planner.Planner) boardModel {
	return boardModel{planner: p}
}

func (m *boardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m boardModel) columns() [3][]planner.Entry {
	return [3][]planner.Entry{
		m.planner.Entries.ByStatus(planner.StatusTodo),
		m.planner.Entries.ByStatus(planner.StatusInProgress),
		m.planner.Entries.ByStatus(planner.StatusDone),
	}
}

func (m boardModel) selected() (planner.Entry, bool) {
	col := m.columns()[m.col]
	if m.row < 0 || m.row >= len(col) {
		return planner.Entry{}, false
	}
	return col[m.row], true
}

func (m *boardModel) clampRow() {
	col := m.columns()[m.col]
	if m.row >= len(col) {
		m.row = len(col) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func nextStatus(st planner.Status) planner.Status {
	switch st {
	case planner.StatusTodo:
		return planner.StatusInProgress
	case planner.StatusInProgress:
		return planner.StatusDone
	default:
		return planner.StatusTodo
	}
}

func (m boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
				m.clampRow()
			}
		case key.Matches(msg, keys.Right):
			if m.col < 2 {
				m.col++
				m.clampRow()
			}
		case key.Matches(msg, keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, keys.Down):
			if m.row < len(m.columns()[m.col])-1 {
				m.row++
			}
		case key.Matches(msg, keys.Enter):
			if e, ok := m.selected(); ok {
				e.Status = nextStatus(e.Status)
				if _, err := m.planner.Entries.Update(e); err != nil {
					return m, reportError("Move", err)
				}
				m.clampRow()
				return m, reportStatus(fmt.Sprintf("%q → %s", e.Title, e.Status))
			}
		case key.Matches(msg, keys.Delete):
			if e, ok := m.selected(); ok {
				if err := m.planner.Entries.Delete(e.ID); err != nil {
					return m, reportError("Delete", err)
				}
				m.clampRow()
				return m, reportStatus(fmt.Sprintf("Deleted %q", e.Title))
			}
		}
	}
	return m, nil
}

var boardColumnTitles = [3]string{"Todo", "In Progress", "Done"}

func (m boardModel) view() string {
	cols := m.columns()
	colWidth := (m.width - 8) / 3
	if colWidth < 16 {
		colWidth = 16
	}

	rendered := make([]string, 3)
	for c := 0; c < 3; c++ {
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", boardColumnTitles[c], len(cols[c]))))
		b.WriteString("\n\n")
		if len(cols[c]) == 0 {
			b.WriteString(mutedStyle.Render("—"))
		}
		for r, e := range cols[c] {
			line := entryDot(e.Color) + " " + e.Title
			if n := m.planner.Sessions.CountFor(e.ID); n > 0 {
				line += mutedStyle.Render(fmt.Sprintf(" 🍅%d", n))
			}
			if e.Project != "" {
				line += mutedStyle.Render(" [" + e.Project + "]")
			}
			if c == m.col && r == m.row {
				line = selectedItemStyle.Render("▸ ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		style := panelStyle
		if c == m.col {
			style = activePanelStyle
		}
		rendered[c] = style.Width(colWidth).Render(b.String())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
