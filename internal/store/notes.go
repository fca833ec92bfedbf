package store

import (
	"fmt"
	"strings"
	"time"

	"dayplan/internal/planner"
)

// SaveNote upserts one note keyed by its ID. Tags are stored comma-joined;
// note tags share the planner's taxonomy vocabulary but are free text here.
func (s *Store) SaveNote(n planner.Note) error {
	_, err := s.db.Exec(
		`INSERT INTO notes (id, note_date, title, content, tags, project)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     note_date = excluded.note_date, title = excluded.title,
		     content = excluded.content, tags = excluded.tags,
		     project = excluded.project`,
		n.ID, n.Date.UTC().Format(time.RFC3339), n.Title, n.Content,
		strings.Join(n.Tags, ","), n.Project,
	)
	if err != nil {
		return fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return nil
}

func (s *Store) DeleteNote(id string) error {
	if _, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (s *Store) loadNotes() ([]planner.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, note_date, title, content, tags, project FROM notes ORDER BY note_date`)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	defer rows.Close()

	var notes []planner.Note
	for rows.Next() {
		var n planner.Note
		var date, tags string
		if err := rows.Scan(&n.ID, &date, &n.Title, &n.Content, &tags, &n.Project); err != nil {
			return nil, err
		}
		n.Date, _ = time.Parse(time.RFC3339, date)
		if tags != "" {
			n.Tags = strings.Split(tags, ",")
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
