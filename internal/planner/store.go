package planner

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "dayplan/internal/log"
)

// EntryStore is the authoritative in-memory collection of planner
// entries. Every mutation is validated first and, once applied, pushed to
// the persistence collaborator.
type EntryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	p       Persister
}

func NewEntryStore(p Persister, initial ...Entry) *EntryStore {
	s := &EntryStore{
		entries: make(map[string]Entry, len(initial)),
		p:       p,
	}
	for _, e := range initial {
		s.entries[e.ID] = e
	}
	return s
}

// Create validates the entry, assigns it a fresh ID when it has none, and
// stores it. The store is left unchanged on any validation failure.
func (s *EntryStore) Create(e Entry) (Entry, error) {
	if err := Validate(e); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := s.checkParent(e); err != nil {
		return Entry{}, err
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.entries[e.ID] = e
	s.persistEntry(e)
	return e, nil
}

// Update replaces the stored entry with the same ID. Unknown IDs are
// reported as ErrNotFound.
func (s *EntryStore) Update(e Entry) (Entry, error) {
	if err := Validate(e); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.entries[e.ID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if err := s.checkParent(e); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = time.Now()
	s.entries[e.ID] = e
	s.persistEntry(e)
	return e, nil
}

// Delete removes the entry and clears the ParentID of any children that
// referenced it, so no dangling references are left behind.
func (s *EntryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	if err := s.p.DeleteEntry(id); err != nil {
		applog.Error("persist: delete entry failed", err, "id", id)
	}

	for cid, child := range s.entries {
		if child.ParentID == id {
			child.ParentID = ""
			child.UpdatedAt = time.Now()
			s.entries[cid] = child
			s.persistEntry(child)
		}
	}
	return nil
}

func (s *EntryStore) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// All returns every entry ordered by start time, then title.
func (s *EntryStore) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortEntries(s.snapshotLocked())
}

// Len reports the number of stored entries.
func (s *EntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Parent resolves the entry's parent reference. A dangling or empty
// ParentID resolves to no parent.
func (s *EntryStore) Parent(e Entry) (Entry, bool) {
	if e.ParentID == "" {
		return Entry{}, false
	}
	return s.Get(e.ParentID)
}

// Children returns the entries whose ParentID references id.
func (s *EntryStore) Children(id string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if e.ParentID == id {
			out = append(out, e)
		}
	}
	return sortEntries(out)
}

// checkParent walks the parent chain of e and rejects self-references and
// cycles at write time. Dangling references end the walk and are
// tolerated. Callers must hold s.mu.
func (s *EntryStore) checkParent(e Entry) error {
	cur := e.ParentID
	for cur != "" {
		if cur == e.ID {
			return ErrParentCycle
		}
		parent, ok := s.entries[cur]
		if !ok {
			return nil
		}
		cur = parent.ParentID
	}
	return nil
}

func (s *EntryStore) persistEntry(e Entry) {
	if err := s.p.SaveEntry(e); err != nil {
		applog.Error("persist: save entry failed", err, "id", e.ID)
	}
}

// snapshotLocked copies the entry map into a slice. Callers must hold s.mu.
func (s *EntryStore) snapshotLocked() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

func sortEntries(entries []Entry) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.Before(entries[j].Start)
		}
		return entries[i].Title < entries[j].Title
	})
	return entries
}
