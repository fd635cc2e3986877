package preflight

import (
	"path/filepath"
	"testing"
)

func TestCheckTodos(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, filepath.Join(dir, "a.go"), "package a\n")

	tests := []struct {
		name       string
		paths      []string
		wantFailed bool
	}{
		{"no paths", nil, false},
		{"existing file", []string{existing}, false},
		{"missing file", []string{filepath.Join(dir, "missing.go")}, true},
		{"mixed", []string{existing, filepath.Join(dir, "missing.go")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			failed, err := CheckTodos(c, nil, tt.paths)
			if err != nil {
				t.Fatal(err)
			}
			if failed != tt.wantFailed {
				t.Errorf("failed = %v, want %v", failed, tt.wantFailed)
			}
		})
	}
}

func TestCheckTodosFailsUnderDryRun(t *testing.T) {
	// Missing inputs mean the hook could not do its job; dry-run does not
	// soften that.
	dir := t.TempDir()
	c := newTestContext(t, WithDryRun(true))
	failed, err := CheckTodos(c, nil, []string{filepath.Join(dir, "missing.go")})
	if err != nil {
		t.Fatal(err)
	}
	if !failed {
		t.Error("missing files should fail even under dry-run")
	}
}

func TestCheckTodosNeverModifies(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "a.go"), "package a // TODO\n")
	c := newTestContext(t)
	if _, err := CheckTodos(c, nil, []string{path}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "package a // TODO\n" {
		t.Errorf("file must not be modified, got %q", got)
	}
}
