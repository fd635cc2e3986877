package preflight

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/k1LoW/errors"
)

// DefaultChangelogPath is where WriteIfChanged prepends run reports.
const DefaultChangelogPath = "PREFLIGHT_CHANGELOG.md"

type changelogEntry struct {
	hookID        string
	changes       []string
	filesChecked  []string
	filesModified []string
}

// Changelog accumulates what each hook checked and changed during a run.
// Safe for concurrent use.
type Changelog struct {
	mu         sync.Mutex
	entries    map[string]*changelogEntry
	hasChanges bool
}

func NewChangelog() *Changelog {
	return &Changelog{
		entries: map[string]*changelogEntry{},
	}
}

func (c *Changelog) entry(hookID string) *changelogEntry {
	e, ok := c.entries[hookID]
	if !ok {
		e = &changelogEntry{hookID: hookID}
		c.entries[hookID] = e
	}
	return e
}

// RecordChange records a human-readable description of something a hook did
// (or, under dry-run, would do).
func (c *Changelog) RecordChange(hookID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	e.changes = append(e.changes, message)
	c.hasChanges = true
}

// RecordFileChecked records that a hook examined a file.
func (c *Changelog) RecordFileChecked(hookID, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	e.filesChecked = append(e.filesChecked, path)
}

// RecordFileModified records that a hook rewrote a file.
func (c *Changelog) RecordFileModified(hookID, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(hookID)
	e.filesModified = append(e.filesModified, path)
	c.hasChanges = true
}

func (c *Changelog) HasChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasChanges
}

// Render returns the markdown report for this run, or "" when nothing changed.
func (c *Changelog) Render(now time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasChanges {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Pre-commit Changes %s\n\n", now.Format("2006-01-02 15:04:05"))

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		e := c.entries[id]
		if len(e.changes) == 0 && len(e.filesModified) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## Hook: %s\n\n", e.hookID)
		if len(e.changes) > 0 {
			b.WriteString("### Changes:\n")
			for _, change := range e.changes {
				fmt.Fprintf(&b, "- %s\n", change)
			}
			b.WriteString("\n")
		}
		if len(e.filesModified) > 0 {
			b.WriteString("### Modified Files:\n")
			for _, f := range e.filesModified {
				fmt.Fprintf(&b, "- `%s`\n", f)
			}
			b.WriteString("\n")
		}
		var unmodified []string
		for _, f := range e.filesChecked {
			if !slices.Contains(e.filesModified, f) {
				unmodified = append(unmodified, f)
			}
		}
		if len(unmodified) > 0 {
			b.WriteString("### Checked Files (no changes):\n")
			for _, f := range unmodified {
				fmt.Fprintf(&b, "- `%s`\n", f)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteIfChanged prepends the run report to path when any hook recorded a
// change. Existing content is kept below a separator.
func (c *Changelog) WriteIfChanged(path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	content := c.Render(time.Now())
	if content == "" {
		return nil
	}
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read changelog: %w", err)
	}
	if len(existing) > 0 {
		content = fmt.Sprintf("%s\n---\n\n%s", content, existing)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}
	return nil
}
