package preflight

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckAddedLargeFiles(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		args        []string
		wantFlagged bool
	}{
		{"under default limit", 100, nil, false},
		{"over default limit", DefaultMaxFileSize + 1, nil, true},
		{"at custom limit", 10, []string{"10"}, false},
		{"over custom limit", 11, []string{"10"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, filepath.Join(dir, "file.bin"), strings.Repeat("x", tt.size))
			c := newTestContext(t)
			flagged, err := CheckAddedLargeFiles(c, tt.args, []string{path})
			if err != nil {
				t.Fatal(err)
			}
			if flagged != tt.wantFlagged {
				t.Errorf("flagged = %v, want %v", flagged, tt.wantFlagged)
			}
		})
	}
}

func TestCheckAddedLargeFilesBadLimit(t *testing.T) {
	for _, arg := range []string{"abc", "-1"} {
		t.Run(arg, func(t *testing.T) {
			c := newTestContext(t)
			if _, err := CheckAddedLargeFiles(c, []string{arg}, nil); err == nil {
				t.Error("invalid limit should fail")
			}
		})
	}
}

func TestCheckAddedLargeFilesRecordsViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "big.bin"), strings.Repeat("x", 20))
	c := newTestContext(t)
	flagged, err := CheckAddedLargeFiles(c, []string{"10"}, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if !flagged {
		t.Fatal("expected violation")
	}
	if !c.Changelog().HasChanges() {
		t.Error("violation should be recorded in the changelog")
	}
}
