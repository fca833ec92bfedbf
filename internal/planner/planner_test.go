package planner

import "testing"

// ============================================================
// Snapshot restore
// ============================================================

func TestFromSnapshotRestoresState(t *testing.T) {
	end := at(9, 25)
	snap := Snapshot{
		Entries: []Entry{
			{ID: "e1", Title: "Standup", Start: at(9, 0), End: at(9, 30), Tag: "Work"},
			{ID: "e2", Title: "Laundry", Start: at(0, 0), End: at(0, 0)},
		},
		Sessions: []Session{
			{ID: "s1", Start: at(9, 0), End: &end, Mode: ModeFocus, DurationSeconds: 1500, LinkedEntryID: "e2", Completed: true},
		},
		Notes: []Note{
			{ID: "n1", Date: date(2024, 3, 1), Title: "Daily log"},
		},
		Tags:     []string{"Health"},
		Projects: map[string]string{"Launch": "Work", "Chores": ""},
	}

	p := FromSnapshot(NopPersister{}, snap)

	if p.Entries.Len() != 2 {
		t.Fatalf("entries = %d, want 2", p.Entries.Len())
	}
	if got, ok := p.Entries.Get("e1"); !ok || got.Title != "Standup" {
		t.Fatal("persisted entry should be retrievable by ID")
	}

	if got := p.Sessions.CountFor("e2"); got != 1 {
		t.Fatalf("linked sessions = %d, want 1", got)
	}
	if !p.Sessions.All()[0].Completed {
		t.Fatal("session completion flag should survive the round trip")
	}

	if len(p.Notes.All()) != 1 {
		t.Fatal("notes should be restored")
	}

	tags := p.Taxonomy.AllTags()
	if !hasName(tags, "Health") || !hasName(tags, "Work") {
		t.Fatalf("tags = %v, want registered Health and live Work", tags)
	}
	if !hasName(p.Taxonomy.AllProjects(), "Launch") {
		t.Fatal("registered project should be restored")
	}
	if hint, ok := p.Taxonomy.Hint("launch"); !ok || hint != "Work" {
		t.Fatalf("hint = %q/%v, want Work", hint, ok)
	}
	if _, ok := p.Taxonomy.Hint("Chores"); ok {
		t.Fatal("empty hint should restore as no hint")
	}
}

func TestNewStartsEmpty(t *testing.T) {
	p := New(NopPersister{})
	if p.Entries.Len() != 0 || len(p.Sessions.All()) != 0 || len(p.Notes.All()) != 0 {
		t.Fatal("fresh planner should hold no state")
	}
	if _, err := p.Entries.Create(Entry{Title: "First", Start: at(9, 0), End: at(10, 0)}); err != nil {
		t.Fatal(err)
	}
}

// Restored parent links behave like live ones, including dangling IDs
// left behind by older data.
func TestFromSnapshotToleratesDanglingParent(t *testing.T) {
	snap := Snapshot{
		Entries: []Entry{
			{ID: "e1", Title: "Orphan", Start: at(0, 0), End: at(0, 0), ParentID: "vanished"},
		},
	}
	p := FromSnapshot(NopPersister{}, snap)
	e, _ := p.Entries.Get("e1")
	if _, ok := p.Entries.Parent(e); ok {
		t.Fatal("dangling parent should resolve to no parent")
	}
}
