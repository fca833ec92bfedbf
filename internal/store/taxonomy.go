package store

import "fmt"

// SaveTag records a registered tag by its display name.
func (s *Store) SaveTag(name string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO tags (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("save tag %q: %w", name, err)
	}
	return nil
}

func (s *Store) DeleteTag(name string) error {
	if _, err := s.db.Exec(`DELETE FROM tags WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}
	return nil
}

// SaveProject records a registered project and the tag its hint points at
// ("" for none).
func (s *Store) SaveProject(name, hintTag string) error {
	_, err := s.db.Exec(
		`INSERT INTO projects (name, hint_tag) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET hint_tag = excluded.hint_tag`,
		name, hintTag,
	)
	if err != nil {
		return fmt.Errorf("save project %q: %w", name, err)
	}
	return nil
}

func (s *Store) DeleteProject(name string) error {
	if _, err := s.db.Exec(`DELETE FROM projects WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	return nil
}

func (s *Store) loadTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func (s *Store) loadProjects() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, hint_tag FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	defer rows.Close()

	projects := make(map[string]string)
	for rows.Next() {
		var name, hint string
		if err := rows.Scan(&name, &hint); err != nil {
			return nil, err
		}
		projects[name] = hint
	}
	return projects, rows.Err()
}
