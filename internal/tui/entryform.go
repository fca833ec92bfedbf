package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"dayplan/internal/planner"
)

const (
	formTimeLayout = "2006-01-02 15:04"
	formDateLayout = "2006-01-02"
)

// entryForm collects the fields for a new or edited planner entry. The
// field values are pointers shared with the huh form so they survive the
// model copies bubbletea makes on every update.
type entryForm struct {
	form    *huh.Form
	editing planner.Entry
	isEdit  bool

	title    *string
	start    *string
	end      *string
	color    *string
	tag      *string
	project  *string
	status   *string
	freq     *string
	interval *string
	until    *string
	notes    *string
}

func newEntryForm(e planner.Entry, isEdit bool, day time.Time) *entryForm {
	f := &entryForm{
		editing:  e,
		isEdit:   isEdit,
		title:    new(string),
		start:    new(string),
		end:      new(string),
		color:    new(string),
		tag:      new(string),
		project:  new(string),
		status:   new(string),
		freq:     new(string),
		interval: new(string),
		until:    new(string),
		notes:    new(string),
	}

	if isEdit {
		*f.title = e.Title
		*f.start = e.Start.Format(formTimeLayout)
		*f.end = e.End.Format(formTimeLayout)
		*f.color = string(e.Color)
		*f.tag = e.Tag
		*f.project = e.Project
		*f.status = string(e.Status)
		*f.notes = e.Notes
		*f.freq = string(planner.FreqNone)
		*f.interval = "1"
		if e.Recurring() {
			*f.freq = string(e.Recurrence.Freq)
			*f.interval = strconv.Itoa(e.Recurrence.Interval)
			if e.Recurrence.Until != nil {
				*f.until = e.Recurrence.Until.Format(formDateLayout)
			}
		}
	} else {
		at := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
		*f.start = at.Format(formTimeLayout)
		*f.end = at.Format(formTimeLayout)
		*f.color = string(planner.ColorBlue)
		*f.status = string(planner.StatusTodo)
		*f.freq = string(planner.FreqNone)
		*f.interval = "1"
	}

	colorOpts := make([]huh.Option[string], 0, len(planner.Colors))
	for _, c := range planner.Colors {
		colorOpts = append(colorOpts, huh.NewOption(string(c), string(c)))
	}
	statusOpts := make([]huh.Option[string], 0, len(planner.Statuses))
	for _, s := range planner.Statuses {
		statusOpts = append(statusOpts, huh.NewOption(string(s), string(s)))
	}
	freqOpts := []huh.Option[string]{
		huh.NewOption("none", string(planner.FreqNone)),
		huh.NewOption("daily", string(planner.FreqDaily)),
		huh.NewOption("weekly", string(planner.FreqWeekly)),
		huh.NewOption("monthly", string(planner.FreqMonthly)),
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(f.title),
			huh.NewInput().
				Title("Start (YYYY-MM-DD HH:MM)").
				Value(f.start),
			huh.NewInput().
				Title("End (same as start for a task)").
				Value(f.end),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOpts...).
				Value(f.color),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tag").
				Value(f.tag),
			huh.NewInput().
				Title("Project").
				Value(f.project),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(f.status),
			huh.NewInput().
				Title("Notes").
				Value(f.notes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Repeat").
				Options(freqOpts...).
				Value(f.freq),
			huh.NewInput().
				Title("Every n days/weeks/months").
				Value(f.interval),
			huh.NewInput().
				Title("Until (YYYY-MM-DD, blank for forever)").
				Value(f.until),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f
}

// entry materializes the collected fields into a planner entry, keeping
// the identity of the edited entry when applicable.
func (f *entryForm) entry() (planner.Entry, error) {
	start, err := time.ParseInLocation(formTimeLayout, strings.TrimSpace(*f.start), time.Local)
	if err != nil {
		return planner.Entry{}, fmt.Errorf("parse start: %w", err)
	}
	end, err := time.ParseInLocation(formTimeLayout, strings.TrimSpace(*f.end), time.Local)
	if err != nil {
		return planner.Entry{}, fmt.Errorf("parse end: %w", err)
	}

	e := f.editing
	e.Title = strings.TrimSpace(*f.title)
	e.Start = start
	e.End = end
	e.Color = planner.ParseColor(*f.color)
	e.Tag = strings.TrimSpace(*f.tag)
	e.Project = strings.TrimSpace(*f.project)
	e.Status = planner.ParseStatus(*f.status)
	e.Notes = strings.TrimSpace(*f.notes)

	e.Recurrence = nil
	if freq := planner.Frequency(strings.TrimSpace(*f.freq)); freq != planner.FreqNone && freq != "" {
		interval, err := strconv.Atoi(strings.TrimSpace(*f.interval))
		if err != nil || interval < 1 {
			interval = 1
		}
		rule := &planner.Rule{Freq: freq, Interval: interval}
		if u := strings.TrimSpace(*f.until); u != "" {
			until, err := time.ParseInLocation(formDateLayout, u, time.Local)
			if err != nil {
				return planner.Entry{}, fmt.Errorf("parse until: %w", err)
			}
			rule.Until = &until
		}
		e.Recurrence = rule
	}
	return e, nil
}
