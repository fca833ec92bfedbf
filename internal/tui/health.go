package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/store"
)

// HealthSource provides the externally synced daily metrics. It is nil
// when the app runs without a database, in which case the view degrades
// to a placeholder.
type HealthSource interface {
	HealthRange(from, to time.Time) ([]store.HealthDaily, error)
}

type healthDay = store.HealthDaily

// healthModel renders the read-only health dashboard: a steps barchart
// over the last week plus a per-day table. The data is written by an
// external sync; nothing here mutates it.
type healthModel struct {
	source   HealthSource
	width    int
	height   int
	stepGoal int

	days []healthDay
}

func newHealthModel(src HealthSource, stepGoal int) healthModel {
	if stepGoal <= 0 {
		stepGoal = 8000
	}
	return healthModel{source: src, stepGoal: stepGoal}
}

func (m *healthModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// refresh reloads the last seven days from the source.
func (m healthModel) refresh() tea.Cmd {
	if m.source == nil {
		return nil
	}
	src := m.source
	return func() tea.Msg {
		to := time.Now()
		from := to.AddDate(0, 0, -6)
		days, err := src.HealthRange(from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Health load failed: %v", err), isError: true}
		}
		return healthDataMsg{days: days}
	}
}

func (m healthModel) update(msg tea.Msg) (healthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthDataMsg:
		m.days = msg.days
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m healthModel) view() string {
	w := m.width - 4

	if m.source == nil {
		return panelStyle.Width(w).Render(
			titleStyle.Render("Health") + "\n\n" +
				mutedStyle.Render("No database attached; health metrics unavailable."))
	}
	if len(m.days) == 0 {
		return panelStyle.Width(w).Render(
			titleStyle.Render("Health") + "\n\n" +
				mutedStyle.Render("No synced metrics for the last 7 days. Press r to reload."))
	}

	chart := m.stepsChart(w - 6)
	table := m.daysTable()

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Health — last 7 days"),
		"",
		chart,
		"",
		table,
	)
	return panelStyle.Width(w).Render(content)
}

func (m healthModel) stepsChart(w int) string {
	h := m.height - 16
	if h < 6 {
		h = 6
	}
	if w < 20 {
		w = 20
	}

	chart := barchart.New(w, h)
	var data []barchart.BarData
	for _, d := range m.days {
		style := accentStyle
		if d.Steps >= m.stepGoal {
			style = successStyle
		}
		data = append(data, barchart.BarData{
			Label: d.Date.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "steps", Value: float64(d.Steps), Style: style},
			},
		})
	}
	chart.PushAll(data)
	chart.Draw()

	legend := mutedStyle.Render(fmt.Sprintf("steps / day (goal %d)", m.stepGoal))
	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), legend)
}

func (m healthModel) daysTable() string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-12s %8s %8s %8s %8s", "Day", "Steps", "Kcal", "Sleep", "Weight")))
	b.WriteString("\n")
	for _, d := range m.days {
		sleep := "—"
		if d.SleepStart != nil && d.SleepEnd != nil {
			sleep = formatDuration(d.SleepEnd.Sub(*d.SleepStart))
		}
		weight := "—"
		if d.WeightKg > 0 {
			weight = fmt.Sprintf("%.1fkg", d.WeightKg)
		}
		steps := fmt.Sprintf("%d", d.Steps)
		if d.Steps >= m.stepGoal {
			steps = successStyle.Render(steps + " ✓")
		}
		b.WriteString(fmt.Sprintf("%-12s %8s %8d %8s %8s",
			d.Date.Format("Mon Jan 2"), steps, d.Calories, sleep, weight))
		b.WriteString("\n")
	}
	return b.String()
}
