package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dayplan/internal/planner"
)

// SaveEntry upserts one planner entry keyed by its ID.
func (s *Store) SaveEntry(e planner.Entry) error {
	freq, interval, weekdays, until := encodeRule(e.Recurrence)
	_, err := s.db.Exec(
		`INSERT INTO entries (id, title, start_time, end_time, color, notes, tag, project,
		                      status, assignee, parent_id, recur_freq, recur_interval,
		                      recur_weekdays, recur_until, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     title = excluded.title, start_time = excluded.start_time,
		     end_time = excluded.end_time, color = excluded.color,
		     notes = excluded.notes, tag = excluded.tag, project = excluded.project,
		     status = excluded.status, assignee = excluded.assignee,
		     parent_id = excluded.parent_id, recur_freq = excluded.recur_freq,
		     recur_interval = excluded.recur_interval,
		     recur_weekdays = excluded.recur_weekdays,
		     recur_until = excluded.recur_until, updated_at = excluded.updated_at`,
		e.ID, e.Title,
		e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339),
		string(e.Color), e.Notes, e.Tag, e.Project, string(e.Status), e.Assignee,
		e.ParentID, freq, interval, weekdays, until,
		e.CreatedAt.UTC().Format(time.RFC3339), e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) DeleteEntry(id string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}

func (s *Store) loadEntries() ([]planner.Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, title, start_time, end_time, color, notes, tag, project, status,
		        assignee, parent_id, recur_freq, recur_interval, recur_weekdays,
		        recur_until, created_at, updated_at
		 FROM entries ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var entries []planner.Entry
	for rows.Next() {
		var e planner.Entry
		var start, end, color, status, createdAt, updatedAt string
		var freq, weekdays string
		var interval int
		var until sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &start, &end, &color, &e.Notes, &e.Tag,
			&e.Project, &status, &e.Assignee, &e.ParentID, &freq, &interval,
			&weekdays, &until, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e.Start, _ = time.Parse(time.RFC3339, start)
		e.End, _ = time.Parse(time.RFC3339, end)
		e.Color = planner.ParseColor(color)
		e.Status = planner.ParseStatus(status)
		e.Recurrence = decodeRule(freq, interval, weekdays, until)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// encodeRule flattens an optional recurrence rule into the entry columns.
// A nil rule stores an empty frequency.
func encodeRule(r *planner.Rule) (freq string, interval int, weekdays string, until any) {
	if r == nil {
		return "", 0, "", nil
	}
	days := make([]string, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		days = append(days, strconv.Itoa(int(wd)))
	}
	if r.Until != nil {
		until = r.Until.UTC().Format(time.RFC3339)
	}
	return string(r.Freq), r.Interval, strings.Join(days, ","), until
}

func decodeRule(freq string, interval int, weekdays string, until sql.NullString) *planner.Rule {
	if freq == "" {
		return nil
	}
	r := &planner.Rule{Freq: planner.Frequency(freq), Interval: interval}
	if weekdays != "" {
		for _, part := range strings.Split(weekdays, ",") {
			if n, err := strconv.Atoi(part); err == nil {
				r.Weekdays = append(r.Weekdays, time.Weekday(n))
			}
		}
	}
	if until.Valid {
		if t, err := time.Parse(time.RFC3339, until.String); err == nil {
			r.Until = &t
		}
	}
	return r
}
