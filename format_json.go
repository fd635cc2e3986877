package preflight

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/k1LoW/errors"
)

// PrettyFormatJSON rewrites JSON files with two-space indentation and a
// trailing newline. Files that do not parse as JSON are left alone.
func PrettyFormatJSON(ctx *RunContext, _ []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	files, err := expandPaths(ctx, paths)
	if err != nil {
		return false, err
	}
	anyChanges := false
	for _, path := range files {
		changed, err := formatJSONFile(ctx, path)
		if err != nil {
			return anyChanges, err
		}
		if changed {
			anyChanges = true
		}
	}
	return anyChanges, nil
}

func formatJSONFile(ctx *RunContext, path string) (bool, error) {
	const hookID = "pretty-format-json"
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
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		// Not valid JSON. This hook formats, it does not validate.
		return false, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return false, err
	}
	formatted := string(b) + "\n"
	if formatted == content {
		return false, nil
	}

	if ctx.DryRun() {
		ctx.fileWouldFix(hookID, path, fmt.Sprintf("Would format JSON in %s", path))
		return true, nil
	}
	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		return false, err
	}
	ctx.fileFixed(hookID, path, fmt.Sprintf("Formatted JSON in %s", path))
	return true, nil
}
