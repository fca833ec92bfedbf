// Package export writes snapshots of the planner's state to CSV, JSON and
// iCalendar files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"dayplan/internal/planner"
)

func ToCSV(entries []planner.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Kind", "Start", "End", "Tag", "Project", "Status", "Recurring", "Notes"}); err != nil {
		return err
	}

	for _, e := range entries {
		kind := "event"
		if e.IsTask() {
			kind = "task"
		}
		recurring := ""
		if e.Recurring() {
			recurring = string(e.Recurrence.Freq)
		}
		row := []string{
			e.ID,
			e.Title,
			kind,
			e.Start.Local().Format(time.RFC3339),
			e.End.Local().Format(time.RFC3339),
			e.Tag,
			e.Project,
			string(e.Status),
			recurring,
			e.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
