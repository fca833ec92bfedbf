package planner

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "dayplan/internal/log"
)

// SessionMode distinguishes focus from break intervals.
type SessionMode string

const (
	ModeFocus SessionMode = "focus"
	ModeBreak SessionMode = "break"
)

func ParseSessionMode(s string) SessionMode {
	if SessionMode(s) == ModeBreak {
		return ModeBreak
	}
	return ModeFocus
}

// Session is one finalized Pomodoro interval. Sessions are only written
// to the ledger once their elapsed time is known; a timer that is
// abandoned before completion records nothing.
type Session struct {
	ID              string
	Start           time.Time
	End             *time.Time
	Mode            SessionMode
	DurationSeconds int

	// LinkedEntryID optionally ties the session to a planner entry.
	LinkedEntryID string

	Notes string

	// Completed is true only when the session ran to its planned
	// duration rather than being finished early.
	Completed bool
}

// Ledger is the append-only log of recorded sessions. Recorded sessions
// can be edited or removed, but never reopened.
type Ledger struct {
	mu       sync.Mutex
	sessions []Session
	index    map[string]int
	p        Persister
}

func NewLedger(p Persister, initial ...Session) *Ledger {
	l := &Ledger{
		sessions: make([]Session, 0, len(initial)),
		index:    make(map[string]int, len(initial)),
		p:        p,
	}
	for _, s := range initial {
		l.index[s.ID] = len(l.sessions)
		l.sessions = append(l.sessions, s)
	}
	return l
}

// Append records a finalized session, assigning an ID when absent.
func (l *Ledger) Append(s Session) (Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Mode == "" {
		s.Mode = ModeFocus
	}
	if s.DurationSeconds < 0 {
		s.DurationSeconds = 0
	}
	l.index[s.ID] = len(l.sessions)
	l.sessions = append(l.sessions, s)
	l.persist(s)
	return s, nil
}

// Update replaces a recorded session matched by ID. This is a plain field
// update; it does not reopen the session.
func (l *Ledger) Update(s Session) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[s.ID]
	if !ok {
		return ErrNotFound
	}
	l.sessions[i] = s
	l.persist(s)
	return nil
}

func (l *Ledger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return ErrNotFound
	}
	l.sessions = append(l.sessions[:i], l.sessions[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.sessions); j++ {
		l.index[l.sessions[j].ID] = j
	}
	if err := l.p.DeleteSession(id); err != nil {
		applog.Error("persist: delete session failed", err, "id", id)
	}
	return nil
}

// All returns the recorded sessions in append order.
func (l *Ledger) All() []Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// For returns the sessions linked to the given entry, oldest first.
func (l *Ledger) For(entryID string) []Session {
	if entryID == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Session
	for _, s := range l.sessions {
		if s.LinkedEntryID == entryID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// CountFor reports how many sessions are linked to the entry. It is the
// derived per-entry session count shown against tasks.
func (l *Ledger) CountFor(entryID string) int {
	return len(l.For(entryID))
}

func (l *Ledger) persist(s Session) {
	if err := l.p.SaveSession(s); err != nil {
		applog.Error("persist: save session failed", err, "id", s.ID)
	}
}
