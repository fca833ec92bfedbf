package store

import (
	"fmt"

	"dayplan/internal/planner"
)

// LoadAll reads everything the planner core needs at startup.
func (s *Store) LoadAll() (planner.Snapshot, error) {
	var snap planner.Snapshot
	var err error

	if snap.Entries, err = s.loadEntries(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Sessions, err = s.loadSessions(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Notes, err = s.loadNotes(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Tags, err = s.loadTags(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Projects, err = s.loadProjects(); err != nil {
		return planner.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}
