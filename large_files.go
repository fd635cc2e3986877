package preflight

import (
	"fmt"
	"os"
	"strconv"

	"github.com/k1LoW/errors"
)

// DefaultMaxFileSize is the check-added-large-files limit when no argument
// is given.
const DefaultMaxFileSize = 500_000

// CheckAddedLargeFiles reports files larger than the limit. The first
// argument, when present, overrides the limit in bytes.
func CheckAddedLargeFiles(ctx *RunContext, args []string, paths []string) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	const hookID = "check-added-large-files"
	limit := int64(DefaultMaxFileSize)
	if len(args) > 0 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || n < 0 {
			return false, errors.New("check-added-large-files: max bytes argument must be a non-negative integer")
		}
		limit = n
	}

	files, err := expandPaths(ctx, paths)
	if err != nil {
		return false, err
	}
	tooLarge := false
	for _, path := range files {
		ctx.fileChecked(hookID, path)
		fi, err := os.Stat(path)
		if err != nil {
			ctx.debugf("unable to stat file", "path", path, "error", err)
			continue
		}
		if fi.Size() > limit {
			msg := fmt.Sprintf("File %s is too large (%d bytes) > %d bytes", path, fi.Size(), limit)
			ctx.violation(hookID, path, msg, "size", fi.Size(), "limit", limit)
			tooLarge = true
		}
	}
	if tooLarge && ctx.DryRun() {
		ctx.debugf("dry-run: check would have failed")
	}
	return tooLarge, nil
}
