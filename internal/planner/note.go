package planner

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "dayplan/internal/log"
)

// Note is a free-form journal item. It shares the taxonomy's tag and
// project vocabulary but carries no scheduling semantics.
type Note struct {
	ID      string
	Date    time.Time
	Title   string
	Content string
	Tags    []string
	Project string
}

type NoteStore struct {
	mu    sync.Mutex
	notes map[string]Note
	p     Persister
}

func NewNoteStore(p Persister, initial ...Note) *NoteStore {
	s := &NoteStore{
		notes: make(map[string]Note, len(initial)),
		p:     p,
	}
	for _, n := range initial {
		s.notes[n.ID] = n
	}
	return s
}

func (s *NoteStore) Create(n Note) (Note, error) {
	if strings.TrimSpace(n.Title) == "" {
		return Note{}, ErrInvalidTitle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	s.notes[n.ID] = n
	s.persist(n)
	return n, nil
}

func (s *NoteStore) Update(n Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrInvalidTitle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[n.ID]; !ok {
		return ErrNotFound
	}
	s.notes[n.ID] = n
	s.persist(n)
	return nil
}

func (s *NoteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	if err := s.p.DeleteNote(id); err != nil {
		applog.Error("persist: delete note failed", err, "id", id)
	}
	return nil
}

func (s *NoteStore) Get(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	return n, ok
}

// All returns notes newest first.
func (s *NoteStore) All() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	sortNotes(out)
	return out
}

// ByTag returns notes carrying the tag, matched by normalized equality.
func (s *NoteStore) ByTag(tag string) []Note {
	key := normKey(tag)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Note
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if normKey(t) == key {
				out = append(out, n)
				break
			}
		}
	}
	sortNotes(out)
	return out
}

func sortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].Date.Equal(notes[j].Date) {
			return notes[i].Date.After(notes[j].Date)
		}
		return notes[i].Title < notes[j].Title
	})
}

func (s *NoteStore) persist(n Note) {
	if err := s.p.SaveNote(n); err != nil {
		applog.Error("persist: save note failed", err, "id", n.ID)
	}
}
