package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tenntenn/golden"
)

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultProjectConfigPath)
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if os.Getenv("UPDATE_GOLDEN") != "" {
		golden.Update(t, "testdata", "default_config", got)
		return
	}
	if diff := golden.Diff(t, "testdata", "default_config", got); diff != "" {
		t.Error(diff)
	}
}

// The generated starter config must itself load cleanly.
func TestDefaultConfigLoads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultProjectConfigPath)
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	proj, err := LoadProject(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(proj.Hooks) == 0 {
		t.Fatal("default config should define hooks")
	}
	seen := map[string]bool{}
	for _, h := range proj.Hooks {
		if h.ID == "" {
			t.Error("hook without id in default config")
		}
		if seen[h.ID] {
			t.Errorf("duplicate hook id %s", h.ID)
		}
		seen[h.ID] = true
	}
	for _, id := range []string{"trailing-whitespace", "end-of-file-fixer", "check-yaml"} {
		if !seen[id] {
			t.Errorf("default config should include %s", id)
		}
	}
}
