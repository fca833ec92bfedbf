package planner

// Persister is the save side of the persistence collaborator. It is
// called after each validated in-memory mutation; failures are logged by
// the caller and never roll back the in-memory state, which remains the
// source of truth for the session.
type Persister interface {
	SaveEntry(e Entry) error
	DeleteEntry(id string) error

	SaveSession(s Session) error
	DeleteSession(id string) error

	SaveNote(n Note) error
	DeleteNote(id string) error

	SaveTag(name string) error
	DeleteTag(name string) error
	SaveProject(name, hintTag string) error
	DeleteProject(name string) error
}

// NopPersister discards every write. It backs memory-only operation when
// the real store cannot be opened, and tests.
type NopPersister struct{}

func (NopPersister) SaveEntry(Entry) error                  { return nil }
func (NopPersister) DeleteEntry(string) error               { return nil }
func (NopPersister) SaveSession(Session) error              { return nil }
func (NopPersister) DeleteSession(string) error             { return nil }
func (NopPersister) SaveNote(Note) error                    { return nil }
func (NopPersister) DeleteNote(string) error                { return nil }
func (NopPersister) SaveTag(string) error                   { return nil }
func (NopPersister) DeleteTag(string) error                 { return nil }
func (NopPersister) SaveProject(name, hintTag string) error { return nil }
func (NopPersister) DeleteProject(string) error             { return nil }
