package planner

import (
	"errors"
	"testing"
	"time"
)

// recordingPersister counts persistence calls so tests can assert the
// collaborator is notified after each mutation.
type recordingPersister struct {
	savedEntries    int
	deletedEntries  int
	savedSessions   int
	deletedSessions int
	savedNotes      int
	deletedNotes    int
	savedTags       int
	deletedTags     int
	savedProjects   int
	deletedProjects int
}

func (r *recordingPersister) SaveEntry(Entry) error        { r.savedEntries++; return nil }
func (r *recordingPersister) DeleteEntry(string) error     { r.deletedEntries++; return nil }
func (r *recordingPersister) SaveSession(Session) error    { r.savedSessions++; return nil }
func (r *recordingPersister) DeleteSession(string) error   { r.deletedSessions++; return nil }
func (r *recordingPersister) SaveNote(Note) error          { r.savedNotes++; return nil }
func (r *recordingPersister) DeleteNote(string) error      { r.deletedNotes++; return nil }
func (r *recordingPersister) SaveTag(string) error         { r.savedTags++; return nil }
func (r *recordingPersister) DeleteTag(string) error       { r.deletedTags++; return nil }
func (r *recordingPersister) SaveProject(_, _ string) error { r.savedProjects++; return nil }
func (r *recordingPersister) DeleteProject(string) error   { r.deletedProjects++; return nil }

// failingPersister fails every call; mutations must still apply in memory.
type failingPersister struct{}

var errBoom = errors.New("boom")

func (failingPersister) SaveEntry(Entry) error        { return errBoom }
func (failingPersister) DeleteEntry(string) error     { return errBoom }
func (failingPersister) SaveSession(Session) error    { return errBoom }
func (failingPersister) DeleteSession(string) error   { return errBoom }
func (failingPersister) SaveNote(Note) error          { return errBoom }
func (failingPersister) DeleteNote(string) error      { return errBoom }
func (failingPersister) SaveTag(string) error         { return errBoom }
func (failingPersister) DeleteTag(string) error       { return errBoom }
func (failingPersister) SaveProject(_, _ string) error { return errBoom }
func (failingPersister) DeleteProject(string) error   { return errBoom }

// at builds a timestamp on the reference day used across these tests.
func at(hour, min int) time.Time {
	return time.Date(2024, 3, 1, hour, min, 0, 0, time.UTC)
}

func task(title string, start time.Time) Entry {
	return Entry{Title: title, Start: start, End: start}
}

func event(title string, start, end time.Time) Entry {
	return Entry{Title: title, Start: start, End: end}
}

// ============================================================
// Create
// ============================================================

func TestCreateAssignsID(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e, err := s.Create(event("Standup", at(9, 0), at(9, 30)))
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set")
	}

	got, ok := s.Get(e.ID)
	if !ok {
		t.Fatal("entry should be retrievable")
	}
	if got.Title != "Standup" {
		t.Fatalf("title = %q, want Standup", got.Title)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	_, err := s.Create(event("   ", at(9, 0), at(10, 0)))
	if !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("err = %v, want ErrInvalidTitle", err)
	}
	if s.Len() != 0 {
		t.Fatal("store should be unchanged after rejection")
	}
}

func TestCreateRejectsInvertedRange(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	_, err := s.Create(event("Backwards", at(10, 0), at(9, 0)))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
	if s.Len() != 0 {
		t.Fatal("store should be unchanged after rejection")
	}
}

// ============================================================
// Update / Delete
// ============================================================

// Scenario: a task keeps its stored title when an invalid update is
// rejected.
func TestUpdateRejectionLeavesStoreUntouched(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e, err := s.Create(task("Report", at(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsTask() {
		t.Fatal("start == end should classify as task")
	}

	e.Title = ""
	if _, err := s.Update(e); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("err = %v, want ErrInvalidTitle", err)
	}

	got, _ := s.Get(e.ID)
	if got.Title != "Report" {
		t.Fatalf("stored title = %q, want Report", got.Title)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e := event("Ghost", at(9, 0), at(10, 0))
	e.ID = "missing"
	if _, err := s.Update(e); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e, _ := s.Create(event("Meet", at(9, 0), at(10, 0)))

	e.Title = "Meet (moved)"
	updated, err := s.Update(e)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatal("CreatedAt should survive updates")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	if err := s.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteClearsChildReferences(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	parent, _ := s.Create(task("Epic", at(0, 0)))

	child := task("Subtask", at(0, 0))
	child.ParentID = parent.ID
	created, err := s.Create(child)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(parent.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(created.ID)
	if got.ParentID != "" {
		t.Fatalf("child ParentID = %q, want cleared", got.ParentID)
	}
}

// ============================================================
// Parent linkage
// ============================================================

func TestParentSelfReferenceRejected(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e, _ := s.Create(task("Loner", at(0, 0)))

	e.ParentID = e.ID
	if _, err := s.Update(e); !errors.Is(err, ErrParentCycle) {
		t.Fatalf("err = %v, want ErrParentCycle", err)
	}
}

func TestParentCycleRejected(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	a, _ := s.Create(task("A", at(0, 0)))
	b := task("B", at(0, 0))
	b.ParentID = a.ID
	b, _ = s.Create(b)

	a.ParentID = b.ID
	if _, err := s.Update(a); !errors.Is(err, ErrParentCycle) {
		t.Fatalf("err = %v, want ErrParentCycle", err)
	}
}

func TestDanglingParentResolvesToNone(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	e := task("Orphan", at(0, 0))
	e.ParentID = "long-gone"
	created, err := s.Create(e)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Parent(created); ok {
		t.Fatal("dangling parent should resolve to no parent")
	}
}

func TestChildren(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	parent, _ := s.Create(task("Epic", at(0, 0)))
	for _, title := range []string{"One", "Two"} {
		c := task(title, at(0, 0))
		c.ParentID = parent.ID
		s.Create(c)
	}
	s.Create(task("Unrelated", at(0, 0)))

	if got := len(s.Children(parent.ID)); got != 2 {
		t.Fatalf("children = %d, want 2", got)
	}
}

// ============================================================
// Persistence collaboration
// ============================================================

func TestMutationsReachPersister(t *testing.T) {
	rec := &recordingPersister{}
	s := NewEntryStore(rec)

	e, _ := s.Create(event("Meet", at(9, 0), at(10, 0)))
	s.Update(e)
	s.Delete(e.ID)

	if rec.savedEntries != 2 {
		t.Fatalf("saved = %d, want 2", rec.savedEntries)
	}
	if rec.deletedEntries != 1 {
		t.Fatalf("deleted = %d, want 1", rec.deletedEntries)
	}
}

func TestPersistFailureIsNonFatal(t *testing.T) {
	s := NewEntryStore(failingPersister{})
	e, err := s.Create(event("Meet", at(9, 0), at(10, 0)))
	if err != nil {
		t.Fatalf("create should succeed despite persist failure: %v", err)
	}
	if _, ok := s.Get(e.ID); !ok {
		t.Fatal("in-memory state must remain authoritative")
	}
	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("delete should succeed despite persist failure: %v", err)
	}
}

// ============================================================
// Ordering
// ============================================================

func TestAllSortedByStartThenTitle(t *testing.T) {
	s := NewEntryStore(NopPersister{})
	s.Create(event("Later", at(14, 0), at(15, 0)))
	s.Create(event("B", at(9, 0), at(10, 0)))
	s.Create(event("A", at(9, 0), at(10, 0)))

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Title != "A" || all[1].Title != "B" || all[2].Title != "Later" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}
}
