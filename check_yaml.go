package preflight

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
)

// CheckYAML parses each file as YAML and reports parse errors as violations.
func CheckYAML(ctx *RunContext, _ []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	const hookID = "check-yaml"
	files, err := expandPaths(ctx, paths)
	if err != nil {
		return false, err
	}
	hadError := false
	for _, path := range files {
		ctx.fileChecked(hookID, path)
		content, ok, err := readTextFile(path)
		if err != nil {
			return hadError, err
		}
		if !ok {
			ctx.debugf("skipping non-utf8 file", "path", path)
			ctx.Changelog().RecordChange(hookID, fmt.Sprintf("Skipped non-UTF8 file: %s", path))
			continue
		}
		var v any
		if err := yaml.Unmarshal([]byte(content), &v); err != nil {
			ctx.violation(hookID, path, fmt.Sprintf("Invalid YAML in %s: %v", path, err), "error", err)
			hadError = true
		}
	}
	if hadError && ctx.DryRun() {
		ctx.debugf("dry-run: check-yaml would have failed")
	}
	return hadError, nil
}
