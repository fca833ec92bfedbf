package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "week_start: sunday\nfocus_minutes: 50\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.WeekStart != "sunday" || c.FocusMinutes != 50 || c.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	// Unset fields keep their defaults.
	if c.BreakMinutes != 5 {
		t.Fatalf("break_minutes = %d, want default 5", c.BreakMinutes)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("week_start: tuesday\nfocus_minutes: -3\n"), 0o644)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.WeekStart != "monday" || c.FocusMinutes != 25 {
		t.Fatalf("bad values should fall back: %+v", c)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(":\n  - not yaml: ["), 0o644)

	c, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if c != Default() {
		t.Fatal("parse failure should still return usable defaults")
	}
}

func TestDBPathUsesDataDir(t *testing.T) {
	c := Default()
	c.DataDir = "/tmp/elsewhere"
	path, err := c.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/elsewhere", "dayplan.db") {
		t.Fatalf("path = %q", path)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}
