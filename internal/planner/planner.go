// Package planner holds the in-memory planner core: the entry store with
// its query and validation operations, the tag/project taxonomy, the
// recurrence expander, the Pomodoro session ledger, and notes. The core
// does no I/O of its own; each service pushes mutations to a Persister
// and keeps the in-memory state authoritative for the session.
package planner

// Snapshot is everything the persistence collaborator hands back on
// startup.
type Snapshot struct {
	Entries  []Entry
	Sessions []Session
	Notes    []Note
	Tags     []string
	Projects map[string]string // project display name -> hint tag ("" for none)
}

// Planner bundles the core services around one shared persister. It is
// constructed once at startup and passed by reference to consumers.
type Planner struct {
	Entries  *EntryStore
	Taxonomy *Taxonomy
	Sessions *Ledger
	Notes    *NoteStore
}

func New(p Persister) *Planner {
	return FromSnapshot(p, Snapshot{})
}

// FromSnapshot rebuilds the in-memory services from persisted state.
func FromSnapshot(p Persister, snap Snapshot) *Planner {
	entries := NewEntryStore(p, snap.Entries...)
	tax := NewTaxonomy(entries, p)
	for _, name := range snap.Tags {
		tax.tags[normKey(name)] = name
	}
	for name, hint := range snap.Projects {
		tax.projects[normKey(name)] = name
		if hint != "" {
			tax.hints[normKey(name)] = hint
		}
	}
	return &Planner{
		Entries:  entries,
		Taxonomy: tax,
		Sessions: NewLedger(p, snap.Sessions...),
		Notes:    NewNoteStore(p, snap.Notes...),
	}
}
