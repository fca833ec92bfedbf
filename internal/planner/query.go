package planner

import (
	"sort"
	"time"
)

// Occurrence is one concrete appearance of an entry inside a queried
// window: the entry itself for one-off items, or a virtual expansion of a
// recurrence rule. Occurrences are computed on demand and never stored.
type Occurrence struct {
	Entry Entry
	Start time.Time
	End   time.Time
}

// Between returns the stored entries whose own [Start, End] span
// intersects [from, to], ignoring recurrence expansion.
func (s *EntryStore) Between(from, to time.Time) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if !e.Start.After(to) && !e.End.Before(from) {
			out = append(out, e)
		}
	}
	return sortEntries(out)
}

// OccurrencesBetween expands every entry into its occurrences inside
// [from, to]. Recurring entries contribute one occurrence per rule hit,
// each keeping the canonical entry's duration; non-recurring entries
// contribute themselves when their span intersects the window.
func (s *EntryStore) OccurrencesBetween(from, to time.Time) []Occurrence {
	s.mu.Lock()
	entries := s.snapshotLocked()
	s.mu.Unlock()

	var out []Occurrence
	for _, e := range entries {
		if e.Recurring() {
			dur := e.End.Sub(e.Start)
			for _, start := range e.Recurrence.Occurrences(e.Start, from, to) {
				out = append(out, Occurrence{Entry: e, Start: start, End: start.Add(dur)})
			}
			continue
		}
		if !e.Start.After(to) && !e.End.Before(from) {
			out = append(out, Occurrence{Entry: e, Start: e.Start, End: e.End})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Entry.Title < out[j].Entry.Title
	})
	return out
}

// On returns the occurrences falling on the given calendar day.
func (s *EntryStore) On(day time.Time) []Occurrence {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.OccurrencesBetween(start, end)
}

// ByTag returns the entries whose tag matches by normalized equality.
// An empty tag selects unclassified entries.
func (s *EntryStore) ByTag(tag string) []Entry {
	key := normKey(tag)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if normKey(e.Tag) == key {
			out = append(out, e)
		}
	}
	return sortEntries(out)
}

// ByProject returns the entries whose project matches by normalized
// equality. An empty name selects unclassified entries.
func (s *EntryStore) ByProject(name string) []Entry {
	key := normKey(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if normKey(e.Project) == key {
			out = append(out, e)
		}
	}
	return sortEntries(out)
}

// ByStatus returns the tasks (not timed events) in the given workflow
// state, feeding the board view.
func (s *EntryStore) ByStatus(st Status) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if e.IsTask() && e.Status == st {
			out = append(out, e)
		}
	}
	return sortEntries(out)
}

// ConflictsFor applies the pairwise conflict check against every other
// same-day entry with a non-degenerate time range.
func (s *EntryStore) ConflictsFor(e Entry) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, other := range s.entries {
		if other.ID == e.ID || other.IsTask() {
			continue
		}
		if Conflicts(e, other) {
			out = append(out, other)
		}
	}
	return sortEntries(out)
}
