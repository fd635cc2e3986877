package preflight

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTrailingWhitespace(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantChanged bool
	}{
		{"clean file", "hello\nworld\n", "hello\nworld\n", false},
		{"trailing spaces", "hello   \nworld\n", "hello\nworld\n", true},
		{"trailing tabs", "hello\t\t\nworld\n", "hello\nworld\n", true},
		{"mixed", "a \nb\t\nc\n", "a\nb\nc\n", true},
		{"crlf line endings", "hello \r\nworld\r\n", "hello\nworld\n", true},
		{"clean crlf untouched", "hello\r\nworld\r\n", "hello\r\nworld\r\n", false},
		{"whitespace only line", "a\n   \nb\n", "a\n\nb\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, filepath.Join(dir, "file.txt"), tt.in)
			c := newTestContext(t)
			changed, err := TrailingWhitespace(c, nil, []string{path})
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

func TestTrailingWhitespaceDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "file.txt"), "hello   \n")
	c := newTestContext(t, WithDryRun(true))
	changed, err := TrailingWhitespace(c, nil, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("dry-run should still report the change")
	}
	if got := readFile(t, path); got != "hello   \n" {
		t.Errorf("dry-run must not modify the file, got %q", got)
	}
	if !c.Changelog().HasChanges() {
		t.Error("dry-run should record the would-be change")
	}
}

func TestTrailingWhitespaceSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	binary := string([]byte{0xff, 0xfe, 0x00, 0x20, 0x20, 0x0a})
	writeFile(t, path, binary)
	c := newTestContext(t)
	changed, err := TrailingWhitespace(c, nil, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("binary file should be skipped")
	}
	if got := readFile(t, path); got != binary {
		t.Error("binary file must not be rewritten")
	}
}

func TestTrailingWhitespaceDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a \n")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b\n")
	c := newTestContext(t)
	changed, err := TrailingWhitespace(c, nil, []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected a change in the tree")
	}
	if got := readFile(t, filepath.Join(dir, "a.txt")); got != "a\n" {
		t.Errorf("a.txt = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "sub", "b.txt")); got != "b\n" {
		t.Errorf("b.txt should be untouched, got %q", got)
	}
}
