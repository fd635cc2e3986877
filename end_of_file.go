package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/k1LoW/errors"
)

// EndOfFileFixer rewrites the given files so each ends with exactly one
// trailing newline.
func EndOfFileFixer(ctx *RunContext, _ []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	files, err := expandPaths(ctx, paths)
	if err != nil {
		return false, err
	}
	anyChanges := false
	for _, path := range files {
		changed, err := fixEndOfFile(ctx, path)
		if err != nil {
			return anyChanges, err
		}
		if changed {
			anyChanges = true
		}
	}
	return anyChanges, nil
}

func fixEndOfFile(ctx *RunContext, path string) (bool, error) {
	const hookID = "end-of-file-fixer"
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

	fixed := strings.TrimRight(content, "\r\n") + "\n"
	if fixed == content {
		return false, nil
	}

	if ctx.DryRun() {
		ctx.fileWouldFix(hookID, path, fmt.Sprintf("Would normalize newlines at end of %s", path))
		return true, nil
	}
	if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
		return false, err
	}
	ctx.fileFixed(hookID, path, fmt.Sprintf("Normalized newlines at end of %s", path))
	return true, nil
}
