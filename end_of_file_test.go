package preflight

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEndOfFileFixer(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantChanged bool
	}{
		{"single newline kept", "hello\n", "hello\n", false},
		{"missing newline", "hello", "hello\n", true},
		{"extra newlines", "hello\n\n\n", "hello\n", true},
		{"trailing crlf", "hello\r\n\r\n", "hello\n", true},
		{"empty file becomes newline", "", "\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, filepath.Join(dir, "file.txt"), tt.in)
			c := newTestContext(t)
			changed, err := EndOfFileFixer(c, nil, []string{path})
			if err != nil {
				t.Fatal(err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if diff := cmp.Diff(tt.want, readFile(t, path)); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEndOfFileFixerDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "file.txt"), "hello")
	c := newTestContext(t, WithDryRun(true))
	changed, err := EndOfFileFixer(c, nil, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("dry-run should still report the change")
	}
	if got := readFile(t, path); got != "hello" {
		t.Errorf("dry-run must not modify the file, got %q", got)
	}
}

func TestEndOfFileFixerIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "file.txt"), "hello\n\n")
	c := newTestContext(t)
	if _, err := EndOfFileFixer(c, nil, []string{path}); err != nil {
		t.Fatal(err)
	}
	changed, err := EndOfFileFixer(c, nil, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second run should be a no-op")
	}
}
