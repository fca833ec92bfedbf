package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"dayplan/internal/planner"
)

// notesModel lists journal notes newest first and hosts the capture form.
type notesModel struct {
	planner *planner.Planner
	width   int
	height  int

	cursor int
	form   *noteForm
}

type noteForm struct {
	form    *huh.Form
	title   *string
	content *string
	tags    *string
	project *string
}

func newNoteForm() *noteForm {
	f := &noteForm{
		title:   new(string),
		content: new(string),
		tags:    new(string),
		project: new(string),
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(f.title),
			huh.NewText().
				Title("Content").
				Value(f.content),
			huh.NewInput().
				Title("Tags (comma separated)").
				Value(f.tags),
			huh.NewInput().
				Title("Project").
				Value(f.project),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return f
}

func (f *noteForm) note() planner.Note {
	var tags []string
	for _, t := range strings.Split(*f.tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return planner.Note{
		Title:   strings.TrimSpace(*f.title),
		Content: strings.TrimSpace(*f.content),
		Tags:    tags,
		Project: strings.TrimSpace(*f.project),
	}
}

func newNotesModel(p *planner.Planner) notesModel {
	return notesModel{planner: p}
}

func (m *notesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m notesModel) formActive() bool {
	return m.form != nil
}

func (m notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		notes := m.planner.Notes.All()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(notes)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			m.form = newNoteForm()
			return m, m.form.form.Init()
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(notes) {
				n := notes[m.cursor]
				if err := m.planner.Notes.Delete(n.ID); err != nil {
					return m, reportError("Delete", err)
				}
				if m.cursor > 0 {
					m.cursor--
				}
				return m, reportStatus(fmt.Sprintf("Deleted note %q", n.Title))
			}
		}
	}
	return m, nil
}

func (m notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
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
		n, err := m.planner.Notes.Create(f.note())
		if err != nil {
			return m, reportError("Create", err)
		}
		for _, tag := range n.Tags {
			m.planner.Taxonomy.RegisterTag(tag)
		}
		if n.Project != "" {
			m.planner.Taxonomy.RegisterProject(n.Project, "")
		}
		return m, reportStatus(fmt.Sprintf("Saved note %q", n.Title))
	}
	return m, cmd
}

func (m notesModel) view() string {
	if m.form != nil {
		return panelStyle.Width(m.width - 4).Render(m.form.form.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteString("\n\n")

	notes := m.planner.Notes.All()
	if len(notes) == 0 {
		b.WriteString(mutedStyle.Render("No notes yet. Press n to write one."))
	}

	for i, n := range notes {
		header := normalItemStyle.Render(n.Title) + "  " + mutedStyle.Render(n.Date.Format("Jan 2 15:04"))
		for _, t := range n.Tags {
			header += " " + highlightStyle.Render("#"+t)
		}
		if n.Project != "" {
			header += " " + mutedStyle.Render("["+n.Project+"]")
		}
		if i == m.cursor {
			header = selectedItemStyle.Render("▸ ") + header
		} else {
			header = "  " + header
		}
		b.WriteString(header)
		b.WriteString("\n")
		if i == m.cursor && n.Content != "" {
			for _, line := range strings.Split(n.Content, "\n") {
				b.WriteString(mutedStyle.Render("    " + line))
				b.WriteString("\n")
			}
		}
	}

	return panelStyle.Width(m.width - 4).Render(b.String())
}
