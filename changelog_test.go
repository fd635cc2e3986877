package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tenntenn/golden"
)

func TestChangelogRender(t *testing.T) {
	c := NewChangelog()
	c.RecordChange("check-added-large-files", "File big.bin is too large (600000 bytes) > 500000 bytes")
	c.RecordFileChecked("trailing-whitespace", "a.txt")
	c.RecordFileChecked("trailing-whitespace", "b.txt")
	c.RecordFileModified("trailing-whitespace", "a.txt")

	got := c.Render(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	if os.Getenv("UPDATE_GOLDEN") != "" {
		golden.Update(t, "testdata", "changelog", got)
		return
	}
	if diff := golden.Diff(t, "testdata", "changelog", got); diff != "" {
		t.Error(diff)
	}
}

func TestChangelogRenderEmpty(t *testing.T) {
	c := NewChangelog()
	c.RecordFileChecked("trailing-whitespace", "a.txt")
	if got := c.Render(time.Now()); got != "" {
		t.Errorf("checked-only changelog should render empty, got %q", got)
	}
	if c.HasChanges() {
		t.Error("HasChanges should be false")
	}
}

func TestChangelogSkipsCheckOnlyHooks(t *testing.T) {
	c := NewChangelog()
	c.RecordChange("end-of-file-fixer", "Normalized newlines at end of a.txt")
	c.RecordFileModified("end-of-file-fixer", "a.txt")
	c.RecordFileChecked("check-yaml", "config.yml")

	got := c.Render(time.Now())
	if strings.Contains(got, "check-yaml") {
		t.Errorf("hooks without changes should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "## Hook: end-of-file-fixer") {
		t.Errorf("missing hook section:\n%s", got)
	}
}

func TestWriteIfChangedPrepends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	writeFile(t, path, "# Pre-commit Changes 2020-01-01 00:00:00\n\nold content\n")

	c := NewChangelog()
	c.RecordChange("trailing-whitespace", "Removed trailing whitespace from a.txt")
	c.RecordFileModified("trailing-whitespace", "a.txt")
	if err := c.WriteIfChanged(path); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, path)
	if !strings.HasPrefix(got, "# Pre-commit Changes ") {
		t.Errorf("new report should come first:\n%s", got)
	}
	if !strings.Contains(got, "\n---\n\nold content") && !strings.Contains(got, "old content") {
		t.Errorf("existing content should be kept:\n%s", got)
	}
	if !strings.Contains(got, "\n---\n") {
		t.Errorf("missing separator:\n%s", got)
	}
}

func TestWriteIfChangedNoChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")

	c := NewChangelog()
	c.RecordFileChecked("check-yaml", "config.yml")
	if err := c.WriteIfChanged(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("changelog file should not be created when nothing changed")
	}
}
