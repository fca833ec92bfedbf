package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dayplan/internal/planner"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Entries    []jsonEntry   `json:"entries"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Color     string `json:"color"`
	Tag       string `json:"tag,omitempty"`
	Project   string `json:"project,omitempty"`
	Status    string `json:"status"`
	Assignee  string `json:"assignee,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	Recurring string `json:"recurring,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type jsonSession struct {
	ID            string `json:"id"`
	Start         string `json:"start"`
	End           string `json:"end,omitempty"`
	Mode          string `json:"mode"`
	DurationSec   int    `json:"duration_seconds"`
	Duration      string `json:"duration"`
	LinkedEntryID string `json:"linked_entry_id,omitempty"`
	Completed     bool   `json:"completed"`
	Notes         string `json:"notes,omitempty"`
}

func ToJSON(entries []planner.Entry, sessions []planner.Session, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
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
		out.Entries = append(out.Entries, jsonEntry{
			ID:        e.ID,
			Title:     e.Title,
			Kind:      kind,
			Start:     e.Start.Local().Format(time.RFC3339),
			End:       e.End.Local().Format(time.RFC3339),
			Color:     string(e.Color),
			Tag:       e.Tag,
			Project:   e.Project,
			Status:    string(e.Status),
			Assignee:  e.Assignee,
			ParentID:  e.ParentID,
			Recurring: recurring,
			Notes:     e.Notes,
		})
	}

	for _, s := range sessions {
		end := ""
		if s.End != nil {
			end = s.End.Local().Format(time.RFC3339)
		}
		out.Sessions = append(out.Sessions, jsonSession{
			ID:            s.ID,
			Start:         s.Start.Local().Format(time.RFC3339),
			End:           end,
			Mode:          string(s.Mode),
			DurationSec:   s.DurationSeconds,
			Duration:      formatDuration(s.DurationSeconds),
			LinkedEntryID: s.LinkedEntryID,
			Completed:     s.Completed,
			Notes:         s.Notes,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
