package planner

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	applog "dayplan/internal/log"
)

// ErrInvalidName rejects empty tag or project names in registry calls.
var ErrInvalidName = errors.New("planner: name must not be empty")

// Taxonomy tracks the known tags and projects: every value observed live
// on entries plus any name registered explicitly before use, so a
// freshly created tag shows up in filter menus before its first entry.
// All matching is by normalized (trimmed, lowercased) equality to
// tolerate user typing variance.
type Taxonomy struct {
	mu    sync.Mutex
	store *EntryStore
	p     Persister

	tags     map[string]string // normalized -> display form
	projects map[string]string // normalized -> display form

	// hints maps a normalized project name to the display form of the tag
	// it is loosely associated with. The mapping only narrows filter
	// menus; it is free to disagree with the tags actually on entries.
	hints map[string]string
}

func NewTaxonomy(store *EntryStore, p Persister) *Taxonomy {
	return &Taxonomy{
		store:    store,
		p:        p,
		tags:     make(map[string]string),
		projects: make(map[string]string),
		hints:    make(map[string]string),
	}
}

// AllTags returns the union of registered tags and tags seen on entries,
// deduplicated by normalized form and sorted.
func (t *Taxonomy) AllTags() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]string, len(t.tags))
	for k, d := range t.tags {
		seen[k] = d
	}
	for _, e := range t.store.All() {
		addName(seen, e.Tag)
	}
	return sortedNames(seen)
}

// AllProjects returns the union of registered projects and projects seen
// on entries, deduplicated by normalized form and sorted.
func (t *Taxonomy) AllProjects() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]string, len(t.projects))
	for k, d := range t.projects {
		seen[k] = d
	}
	for _, e := range t.store.All() {
		addName(seen, e.Project)
	}
	return sortedNames(seen)
}

// ProjectsForTag returns the projects relevant to a tag: those seen on
// entries carrying the tag, plus those whose hint points at it. An empty
// tag returns all known projects.
func (t *Taxonomy) ProjectsForTag(tag string) []string {
	key := normKey(tag)
	if key == "" {
		return t.AllProjects()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]string)
	for _, e := range t.store.All() {
		if normKey(e.Tag) == key {
			addName(seen, e.Project)
		}
	}
	for pk, hint := range t.hints {
		if normKey(hint) == key {
			if display, ok := t.projects[pk]; ok {
				seen[pk] = display
			}
		}
	}
	return sortedNames(seen)
}

// RegisterTag records a tag so it is listed before any entry uses it.
func (t *Taxonomy) RegisterTag(name string) error {
	display := strings.TrimSpace(name)
	if display == "" {
		return ErrInvalidName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tags[normKey(display)] = display
	t.persistTag(display)
	return nil
}

// RegisterProject records a project, optionally hinting which tag it
// belongs under for filter menus.
func (t *Taxonomy) RegisterProject(name, hintTag string) error {
	display := strings.TrimSpace(name)
	if display == "" {
		return ErrInvalidName
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := normKey(display)
	t.projects[key] = display
	hint := strings.TrimSpace(hintTag)
	if hint != "" {
		t.hints[key] = hint
	}
	t.persistProject(display, t.hints[key])
	return nil
}

// RenameTag rewrites the tag on every entry matching old (by normalized
// equality), updates the registry, and redirects hints that pointed at
// old. The rewrite is applied fully in memory before persistence runs, so
// callers never observe a partial rename.
func (t *Taxonomy) RenameTag(old, new string) error {
	display := strings.TrimSpace(new)
	oldKey := normKey(old)
	if display == "" || oldKey == "" {
		return ErrInvalidName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.retagAll(oldKey, display)

	if prev, ok := t.tags[oldKey]; ok {
		delete(t.tags, oldKey)
		if err := t.p.DeleteTag(prev); err != nil {
			applog.Error("persist: delete tag failed", err, "tag", prev)
		}
	}
	t.tags[normKey(display)] = display
	t.persistTag(display)

	for pk, hint := range t.hints {
		if normKey(hint) == oldKey {
			t.hints[pk] = display
			t.persistProject(t.projects[pk], display)
		}
	}
	return nil
}

// DeleteTag clears the tag from every matching entry (entries are kept),
// unregisters it, and drops hints pointing at it.
func (t *Taxonomy) DeleteTag(name string) error {
	key := normKey(name)
	if key == "" {
		return ErrInvalidName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.retagAll(key, "")

	if prev, ok := t.tags[key]; ok {
		delete(t.tags, key)
		if err := t.p.DeleteTag(prev); err != nil {
			applog.Error("persist: delete tag failed", err, "tag", prev)
		}
	}
	for pk, hint := range t.hints {
		if normKey(hint) == key {
			delete(t.hints, pk)
			t.persistProject(t.projects[pk], "")
		}
	}
	return nil
}

// RenameProject rewrites the project on every matching entry, moves the
// registry entry, and carries the hint over to the new name.
func (t *Taxonomy) RenameProject(old, new string) error {
	display := strings.TrimSpace(new)
	oldKey := normKey(old)
	if display == "" || oldKey == "" {
		return ErrInvalidName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.reprojectAll(oldKey, display)

	newKey := normKey(display)
	if prev, ok := t.projects[oldKey]; ok {
		delete(t.projects, oldKey)
		if err := t.p.DeleteProject(prev); err != nil {
			applog.Error("persist: delete project failed", err, "project", prev)
		}
	}
	t.projects[newKey] = display
	if hint, ok := t.hints[oldKey]; ok {
		delete(t.hints, oldKey)
		t.hints[newKey] = hint
	}
	t.persistProject(display, t.hints[newKey])
	return nil
}

// DeleteProject clears the project from every matching entry, removes it
// from the registry, and drops its hint.
func (t *Taxonomy) DeleteProject(name string) error {
	key := normKey(name)
	if key == "" {
		return ErrInvalidName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.reprojectAll(key, "")

	if prev, ok := t.projects[key]; ok {
		delete(t.projects, key)
		if err := t.p.DeleteProject(prev); err != nil {
			applog.Error("persist: delete project failed", err, "project", prev)
		}
	}
	delete(t.hints, key)
	return nil
}

// Hint returns the display tag a project's hint points at, if any.
func (t *Taxonomy) Hint(project string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	hint, ok := t.hints[normKey(project)]
	return hint, ok
}

func (t *Taxonomy) persistTag(display string) {
	if err := t.p.SaveTag(display); err != nil {
		applog.Error("persist: save tag failed", err, "tag", display)
	}
}

func (t *Taxonomy) persistProject(display, hint string) {
	if display == "" {
		return
	}
	if err := t.p.SaveProject(display, hint); err != nil {
		applog.Error("persist: save project failed", err, "project", display)
	}
}

// retagAll rewrites the tag field of every entry matching oldKey. It is
// the taxonomy's rewrite primitive; lock order is always Taxonomy.mu
// before EntryStore.mu.
func (s *EntryStore) retagAll(oldKey, display string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if normKey(e.Tag) == oldKey {
			e.Tag = display
			e.UpdatedAt = time.Now()
			s.entries[id] = e
			s.persistEntry(e)
		}
	}
}

func (s *EntryStore) reprojectAll(oldKey, display string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if normKey(e.Project) == oldKey {
			e.Project = display
			e.UpdatedAt = time.Now()
			s.entries[id] = e
			s.persistEntry(e)
		}
	}
}

func addName(seen map[string]string, name string) {
	display := strings.TrimSpace(name)
	if display == "" {
		return
	}
	key := normKey(display)
	if _, ok := seen[key]; !ok {
		seen[key] = display
	}
}

func sortedNames(seen map[string]string) []string {
	out := make([]string, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
