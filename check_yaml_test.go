package preflight

import (
	"path/filepath"
	"testing"
)

func TestCheckYAML(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantFlagged bool
	}{
		{"valid mapping", "key: value\nlist:\n  - a\n  - b\n", false},
		{"valid empty", "", false},
		{"scalar document", "just a string\n", false},
		{"invalid yaml", "invalid: [yaml: }\n", true},
		{"bad indentation", "a:\n  b: 1\n c: 2\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, filepath.Join(dir, "file.yaml"), tt.in)
			c := newTestContext(t)
			flagged, err := CheckYAML(c, nil, []string{path})
			if err != nil {
				t.Fatal(err)
			}
			if flagged != tt.wantFlagged {
				t.Errorf("flagged = %v, want %v", flagged, tt.wantFlagged)
			}
			if got := readFile(t, path); got != tt.in {
				t.Errorf("checker must never modify files, got %q", got)
			}
		})
	}
}

func TestCheckYAMLSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "blob.yaml"), string([]byte{0xff, 0xfe, 0x3a, 0x0a}))
	c := newTestContext(t)
	flagged, err := CheckYAML(c, nil, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if flagged {
		t.Error("non-UTF8 files should be skipped, not flagged")
	}
}
