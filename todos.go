package preflight

import (
	"fmt"
	"os"

	"github.com/k1LoW/errors"
)

// CheckTodos is a placeholder hook: it verifies that every given path exists
// and otherwise does nothing yet. Missing paths are reported and flag the
// run as failed regardless of dry-run, since nothing is ever written.
func CheckTodos(ctx *RunContext, _ []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	const hookID = "check-todos"
	ctx.debugf("processing files", "paths", paths)
	failed := false
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
			ctx.Changelog().RecordChange(hookID, fmt.Sprintf("File not found: %s", path))
			failed = true
			continue
		}
		ctx.fileChecked(hookID, path)
		ctx.debugf("processing file", "path", path)

		// TODO: add the actual hook logic once the TODO policy is decided.
		if ctx.DryRun() {
			fmt.Printf("Would process %s\n", path)
		}
	}
	return failed, nil
}
