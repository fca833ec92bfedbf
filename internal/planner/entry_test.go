package planner

import (
	"testing"
	"time"
)

// ============================================================
// Task / event classification
// ============================================================

func TestIsTask(t *testing.T) {
	if !task("Chore", at(9, 0)).IsTask() {
		t.Fatal("start == end should classify as task")
	}
	if event("Meet", at(9, 0), at(10, 0)).IsTask() {
		t.Fatal("a timed range should classify as event")
	}
}

func TestRecurring(t *testing.T) {
	e := event("Gym", at(18, 0), at(19, 0))
	if e.Recurring() {
		t.Fatal("entry without a rule is not recurring")
	}
	e.Recurrence = &Rule{Freq: FreqNone}
	if e.Recurring() {
		t.Fatal("an explicit FreqNone rule is not recurring")
	}
	e.Recurrence = &Rule{Freq: FreqDaily, Interval: 1}
	if !e.Recurring() {
		t.Fatal("daily rule should mark the entry recurring")
	}
}

// ============================================================
// Enums
// ============================================================

func TestParseColorFallsBackToBlue(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"green", ColorGreen},
		{"PURPLE", ColorPurple},
		{" pink ", ColorPink},
		{"", ColorBlue},
		{"chartreuse", ColorBlue},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"in_progress", StatusInProgress},
		{"DONE", StatusDone},
		{"", StatusTodo},
		{"bogus", StatusTodo},
	}
	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Normalization
// ============================================================

func TestNormKey(t *testing.T) {
	if normKey("  Deep Work ") != "deep work" {
		t.Fatal("normKey should trim and lowercase")
	}
	if !sameKey("WORK", " work ") {
		t.Fatal("variants differing in case and padding should match")
	}
	if sameKey("work", "play") {
		t.Fatal("distinct names must not match")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 0, 1, 0, 0, time.UTC)
	c := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	if !sameDay(a, b) {
		t.Fatal("same calendar day should match regardless of clock")
	}
	if sameDay(a, c) {
		t.Fatal("adjacent days must not match")
	}
}
