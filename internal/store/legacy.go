package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dayplan/internal/planner"
)

// legacySession is the flat pre-SQLite session log format: a JSON array of
// finalized sessions, one file, no IDs.
type legacySession struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	Mode            string     `json:"mode"`
	DurationSeconds int        `json:"duration_seconds"`
	Task            string     `json:"task,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Completed       bool       `json:"completed"`
}

// ImportLegacySessions imports the old JSON session log at path into the
// sessions table and renames the file away so the import runs once. A
// missing file is a no-op. Returns the number of sessions imported.
func (s *Store) ImportLegacySessions(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read legacy sessions: %w", err)
	}

	var legacy []legacySession
	if err := json.Unmarshal(data, &legacy); err != nil {
		return 0, fmt.Errorf("parse legacy sessions: %w", err)
	}

	for _, l := range legacy {
		sess := planner.Session{
			ID:              uuid.NewString(),
			Start:           l.Start,
			End:             l.End,
			Mode:            planner.ParseSessionMode(l.Mode),
			DurationSeconds: l.DurationSeconds,
			Notes:           l.Notes,
			Completed:       l.Completed,
		}
		if sess.DurationSeconds < 0 {
			sess.DurationSeconds = 0
		}
		if err := s.SaveSession(sess); err != nil {
			return 0, fmt.Errorf("import legacy session: %w", err)
		}
	}

	if err := os.Rename(path, path+".imported"); err != nil {
		return len(legacy), fmt.Errorf("rename legacy sessions: %w", err)
	}
	return len(legacy), nil
}

// LegacySessionsPath returns ~/.config/dayplan/sessions.json
func LegacySessionsPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayplan", "sessions.json"), nil
}
