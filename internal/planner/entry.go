package planner

import (
	"strings"
	"time"
)

// Color is the fixed display palette for planner entries.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
)

// Colors lists the palette in display order.
var Colors = []Color{ColorBlue, ColorGreen, ColorRed, ColorOrange, ColorPurple, ColorPink}

// ParseColor maps a stored string onto the palette, falling back to blue
// for anything unrecognized.
func ParseColor(s string) Color {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Colors {
		if c == known {
			return c
		}
	}
	return ColorBlue
}

// Status is the task workflow state. It is stored on every entry but only
// meaningful for tasks.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusInProgress:
		return StatusInProgress
	case StatusDone:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Entry is a single planner item: a task when Start equals End, otherwise
// a timed event.
type Entry struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	Color    Color
	Notes    string
	Tag      string
	Project  string
	Status   Status
	Assignee string

	// ParentID optionally references another entry's ID. A reference that
	// no longer resolves is treated as "no parent" at read time.
	ParentID string

	// Recurrence is nil (or frequency "none") for one-off entries.
	Recurrence *Rule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTask reports whether the entry has no time-of-day significance.
func (e Entry) IsTask() bool {
	return e.Start.Equal(e.End)
}

// Recurring reports whether the entry carries an effective recurrence rule.
func (e Entry) Recurring() bool {
	return e.Recurrence != nil && e.Recurrence.Freq != FreqNone
}

// normKey produces the matching key used for tag and project comparison:
// whitespace-trimmed and lowercased. Classification strings are matched by
// this normalized form, never by literal equality.
func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sameKey(a, b string) bool {
	return normKey(a) == normKey(b)
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
