package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/k1LoW/errors"
)

// TrailingWhitespace removes trailing spaces and tabs from every line of the
// given files. Line endings are normalized to \n on rewritten files.
func TrailingWhitespace(ctx *RunContext, _ []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	const hookID = "trailing-whitespace"
	files, err := expandPaths(ctx, paths)
	if err != nil {
		return false, err
	}
	anyChanges := false
	for _, path := range files {
		changed, err := fixTrailingWhitespace(ctx, path)
		if err != nil {
			if ctx.Debug() {
				ctx.Logger().Debug("error processing file", "hook", hookID, "path", path, "error", err)
				continue
			}
			return anyChanges, err
		}
		if changed {
			anyChanges = true
		}
	}
	return anyChanges, nil
}

func fixTrailingWhitespace(ctx *RunContext, path string) (bool, error) {
	const hookID = "trailing-whitespace"
	ctx.fileChecked(hookID, path)
	content, ok, err := readTextFile(path)
	if err != nil {
		return false, err
	}
	if !ok {
		ctx.debugf("skipping non-utf8 file", "path", path)
		ctx.Changelog().RecordChange(hookID, fmt.Sprintf("Skipped non-UTF8 file: %s", path))
		return false, nil
	}

	changed := false
	var out strings.Builder
	out.Grow(len(content))
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) != len(line) {
			changed = true
		}
		out.WriteString(trimmed)
		out.WriteString("\n")
	}
	if !changed {
		return false, nil
	}

	if ctx.DryRun() {
		ctx.fileWouldFix(hookID, path, fmt.Sprintf("Would remove trailing whitespace from %s", path))
		return true, nil
	}
	if err := os.WriteFile(path, []byte(out.String()), 0644); err != nil {
		return false, err
	}
	ctx.fileFixed(hookID, path, fmt.Sprintf("Removed trailing whitespace from %s", path))
	return true, nil
}
