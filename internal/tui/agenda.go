package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"dayplan/internal/planner"
)

// agendaModel shows one day's occurrences, recurrence expansion included,
// with conflict markers on overlapping events.
type agendaModel struct {
	planner *planner.Planner
	width   int
	height  int

	day    time.Time
	cursor int
	form   *entryForm
}

func newAgendaModel(p *planner.Planner) agendaModel {
	return agendaModel{
		planner: p,
		day:     time.Now(),
	}
}

func (m *agendaModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m agendaModel) formActive() bool {
	return m.form != nil
}

func (m agendaModel) occurrences() []planner.Occurrence {
	return m.planner.Entries.On(m.day)
}

func (m agendaModel) selected() (planner.Occurrence, bool) {
	occs := m.occurrences()
	if m.cursor < 0 || m.cursor >= len(occs) {
		return planner.Occurrence{}, false
	}
	return occs[m.cursor], true
}

func (m agendaModel) update(msg tea.Msg) (agendaModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		occs := m.occurrences()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(occs)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.day = m.day.AddDate(0, 0, -1)
			m.cursor = 0
		case key.Matches(msg, keys.Right):
			m.day = m.day.AddDate(0, 0, 1)
			m.cursor = 0
		case key.Matches(msg, keys.Today):
			m.day = time.Now()
			m.cursor = 0
		case key.Matches(msg, keys.New):
			m.form = newEntryForm(planner.Entry{}, false, m.day)
			return m, m.form.form.Init()
		case key.Matches(msg, keys.Edit):
			if occ, ok := m.selected(); ok {
				m.form = newEntryForm(occ.Entry, true, m.day)
				return m, m.form.form.Init()
			}
		case key.Matches(msg, keys.Delete):
			if occ, ok := m.selected(); ok {
				title := occ.Entry.Title
				if err := m.planner.Entries.Delete(occ.Entry.ID); err != nil {
					return m, reportError("Delete", err)
				}
				if m.cursor > 0 {
					m.cursor--
				}
				return m, reportStatus(fmt.Sprintf("Deleted %q", title))
			}
		}
	}
	return m, nil
}

func (m agendaModel) updateForm(msg tea.Msg) (agendaModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}
	if m.form.form.State == huh.StateCompleted {
		f := m.form
		m.form = nil
		e, err := f.entry()
		if err != nil {
			return m, reportError("Form", err)
		}
		if e.Tag != "" {
			m.planner.Taxonomy.RegisterTag(e.Tag)
		}
		if e.Project != "" {
			m.planner.Taxonomy.RegisterProject(e.Project, e.Tag)
		}
		if f.isEdit {
			if _, err := m.planner.Entries.Update(e); err != nil {
				return m, reportError("Update", err)
			}
			return m, reportStatus(fmt.Sprintf("Updated %q", e.Title))
		}
		if _, err := m.planner.Entries.Create(e); err != nil {
			return m, reportError("Create", err)
		}
		return m, reportStatus(fmt.Sprintf("Created %q", e.Title))
	}
	return m, cmd
}

func (m agendaModel) view() string {
	if m.form != nil {
		return panelStyle.Width(m.width - 4).Render(m.form.form.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(formatDay(m.day)))
	b.WriteString(mutedStyle.Render("   ←/→ day  t today"))
	b.WriteString("\n\n")

	occs := m.occurrences()
	if len(occs) == 0 {
		b.WriteString(mutedStyle.Render("Nothing planned."))
	}

	for i, occ := range occs {
		line := m.renderOccurrence(occ)
		if i == m.cursor {
			line = selectedItemStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return panelStyle.Width(m.width - 4).Render(b.String())
}

func (m agendaModel) renderOccurrence(occ planner.Occurrence) string {
	e := occ.Entry

	when := "all day"
	if !e.IsTask() {
		when = formatClock(occ.Start) + "–" + formatClock(occ.End)
	}

	parts := []string{
		entryDot(e.Color),
		mutedStyle.Render(fmt.Sprintf("%-13s", when)),
		normalItemStyle.Render(e.Title),
	}
	if e.IsTask() {
		parts = append(parts, statusBadge(e.Status))
	}
	if e.Recurring() {
		parts = append(parts, mutedStyle.Render("↻"))
	}
	if e.Tag != "" {
		parts = append(parts, highlightStyle.Render("#"+e.Tag))
	}
	if e.Project != "" {
		parts = append(parts, mutedStyle.Render("["+e.Project+"]"))
	}
	if !e.IsTask() && len(m.planner.Entries.ConflictsFor(e)) > 0 {
		parts = append(parts, warningStyle.Render("⚠ conflict"))
	}
	if n := m.planner.Sessions.CountFor(e.ID); n > 0 {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("🍅%d", n)))
	}
	return strings.Join(parts, " ")
}

func statusBadge(st planner.Status) string {
	switch st {
	case planner.StatusDone:
		return successStyle.Render("✓ done")
	case planner.StatusInProgress:
		return warningStyle.Render("… in progress")
	default:
		return mutedStyle.Render("· todo")
	}
}

func reportStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func reportError(verb string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s failed: %v", verb, err), isError: true}
	}
}
