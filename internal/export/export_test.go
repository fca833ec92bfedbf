package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dayplan/internal/planner"
)

func sampleEntries() []planner.Entry {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	return []planner.Entry{
		{
			ID:      "e1",
			Title:   "Standup",
			Start:   start,
			End:     start.Add(30 * time.Minute),
			Color:   planner.ColorGreen,
			Tag:     "Work",
			Project: "Launch",
			Status:  planner.StatusTodo,
			Notes:   "daily sync",
		},
		{
			ID:     "e2",
			Title:  "Laundry",
			Start:  start,
			End:    start,
			Color:  planner.ColorBlue,
			Status: planner.StatusInProgress,
		},
		{
			ID:    "e3",
			Title: "Retro",
			Start: start.Add(6 * time.Hour),
			End:   start.Add(7 * time.Hour),
			Recurrence: &planner.Rule{
				Freq:     planner.FreqWeekly,
				Interval: 2,
				Weekdays: []time.Weekday{time.Monday, time.Friday},
				Until:    &until,
			},
		},
	}
}

func sampleSessions() []planner.Session {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	return []planner.Session{
		{
			ID:              "s1",
			Start:           start,
			End:             &end,
			Mode:            planner.ModeFocus,
			DurationSeconds: 1500,
			LinkedEntryID:   "e2",
			Completed:       true,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := ToCSV(sampleEntries(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	if header[0] != "ID" || header[2] != "Kind" || header[8] != "Recurring" {
		t.Fatalf("unexpected header: %v", header)
	}

	row := records[1]
	if row[1] != "Standup" || row[2] != "event" || row[5] != "Work" || row[6] != "Launch" {
		t.Fatalf("unexpected first row: %v", row)
	}

	if records[2][2] != "task" {
		t.Fatalf("degenerate range should export as task, got %q", records[2][2])
	}
	if records[3][8] != "weekly" {
		t.Fatalf("recurring column = %q, want weekly", records[3][8])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	entries := sampleEntries()[:1]
	entries[0].Notes = `notes with "quotes" and, commas`
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(entries, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][9] != `notes with "quotes" and, commas` {
		t.Fatalf("notes mangled: %q", records[1][9])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	if err := ToJSON(sampleEntries(), sampleSessions(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(result.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(result.Entries))
	}
	if len(result.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(result.Sessions))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	e := result.Entries[0]
	if e.Title != "Standup" || e.Kind != "event" || e.Tag != "Work" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if result.Entries[1].Kind != "task" {
		t.Fatalf("kind = %q, want task", result.Entries[1].Kind)
	}
	if result.Entries[2].Recurring != "weekly" {
		t.Fatalf("recurring = %q, want weekly", result.Entries[2].Recurring)
	}

	s := result.Sessions[0]
	if s.DurationSec != 1500 || s.Duration != "00:25:00" || !s.Completed {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.LinkedEntryID != "e2" {
		t.Fatalf("linked_entry_id = %q", s.LinkedEntryID)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)
	if result.Entries != nil || result.Sessions != nil {
		t.Fatal("empty export should hold null lists")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sampleEntries(), sampleSessions(), path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, e := range result.Entries {
		if _, err := time.Parse(time.RFC3339, e.Start); err != nil {
			t.Fatalf("start is not valid RFC3339: %q", e.Start)
		}
	}
}

// ============================================================
// ICS
// ============================================================

func TestToICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ics")
	if err := ToICS(sampleEntries(), path); err != nil {
		t.Fatalf("ToICS: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)

	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Fatal("not a calendar")
	}
	if strings.Count(body, "BEGIN:VEVENT") != 3 {
		t.Fatalf("expected 3 events, got %d", strings.Count(body, "BEGIN:VEVENT"))
	}
	if !strings.Contains(body, "SUMMARY:Standup") {
		t.Fatal("missing summary")
	}
	if !strings.Contains(body, "RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR;UNTIL=20240331T000000Z") {
		t.Fatal("missing or wrong RRULE")
	}
}

func TestToICSBadPath(t *testing.T) {
	if err := ToICS(nil, "/nonexistent/dir/file.ics"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestRruleString(t *testing.T) {
	until := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		rule *planner.Rule
		want string
	}{
		{&planner.Rule{Freq: planner.FreqDaily, Interval: 1}, "FREQ=DAILY"},
		{&planner.Rule{Freq: planner.FreqDaily, Interval: 3}, "FREQ=DAILY;INTERVAL=3"},
		{
			&planner.Rule{Freq: planner.FreqWeekly, Interval: 1, Weekdays: []time.Weekday{time.Tuesday}},
			"FREQ=WEEKLY;BYDAY=TU",
		},
		{
			&planner.Rule{Freq: planner.FreqMonthly, Interval: 1, Until: &until},
			"FREQ=MONTHLY;UNTIL=20240630T000000Z",
		},
	}
	for _, tt := range tests {
		if got := rruleString(tt.rule); got != tt.want {
			t.Errorf("rruleString = %q, want %q", got, tt.want)
		}
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{90061, "25:01:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.secs); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
