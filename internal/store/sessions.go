package store

import (
	"database/sql"
	"fmt"
	"time"

	"dayplan/internal/planner"
)

// SaveSession upserts one recorded Pomodoro session keyed by its ID.
func (s *Store) SaveSession(sess planner.Session) error {
	var end any
	if sess.End != nil {
		end = sess.End.UTC().Format(time.RFC3339)
	}
	completed := 0
	if sess.Completed {
		completed = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, start_time, end_time, mode, duration_seconds,
		                       linked_entry_id, notes, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     start_time = excluded.start_time, end_time = excluded.end_time,
		     mode = excluded.mode, duration_seconds = excluded.duration_seconds,
		     linked_entry_id = excluded.linked_entry_id, notes = excluded.notes,
		     completed = excluded.completed`,
		sess.ID, sess.Start.UTC().Format(time.RFC3339), end, string(sess.Mode),
		sess.DurationSeconds, sess.LinkedEntryID, sess.Notes, completed,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *Store) DeleteSession(id string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// loadSessions returns the recorded sessions oldest first, which restores
// the ledger's append order.
func (s *Store) loadSessions() ([]planner.Session, error) {
	rows, err := s.db.Query(
		`SELECT id, start_time, end_time, mode, duration_seconds, linked_entry_id,
		        notes, completed
		 FROM sessions ORDER BY start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []planner.Session
	for rows.Next() {
		var sess planner.Session
		var start, mode string
		var end sql.NullString
		var completed int
		if err := rows.Scan(&sess.ID, &start, &end, &mode, &sess.DurationSeconds,
			&sess.LinkedEntryID, &sess.Notes, &completed); err != nil {
			return nil, err
		}
		sess.Start, _ = time.Parse(time.RFC3339, start)
		if end.Valid {
			if t, err := time.Parse(time.RFC3339, end.String); err == nil {
				sess.End = &t
			}
		}
		sess.Mode = planner.ParseSessionMode(mode)
		sess.Completed = completed != 0
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
