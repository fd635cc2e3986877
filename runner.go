package preflight

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/k1LoW/errors"
	"github.com/preflight-sh/preflight/config"
)

// Run runs the enabled hooks from the project config in order. It returns
// ErrHookFailed when any hook changed files or found violations (unless
// dry-run), so the caller can map it to exit code 1.
func Run(ctx context.Context, c *RunContext, proj *config.Project) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if len(proj.Hooks) == 0 {
		return errors.New("no hooks configured")
	}

	unlock, err := acquireRunLock()
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	flagged := false
	for _, h := range proj.Hooks {
		if !h.IsEnabled() {
			continue
		}
		paths, err := hookPaths(c, h)
		if err != nil {
			return err
		}

		if h.Command != "" {
			cmdPath := h.Command
			if h.CommandIsInstall() {
				c.debugf("ensuring hook is installed", "hook", h.ID)
				cmdPath, err = ensureInstalled(ctx, c, h)
				if err != nil {
					return err
				}
			}
			c.Changelog().RecordChange(h.ID, fmt.Sprintf("Ran external command: %s", cmdPath))
			if err := runExternalCommand(ctx, c, h, cmdPath, paths); err != nil {
				return err
			}
			continue
		}

		hook, ok := LookupHook(h.ID)
		if !ok {
			c.Logger().Error("unknown hook id in config", "hook", h.ID)
			continue
		}
		c.debugf("running builtin hook", "hook", h.ID)
		hookFlagged, err := hook.Run(c, h.Args, paths)
		if err != nil {
			return err
		}
		if hookFlagged {
			flagged = true
		}
	}

	c.Logger().Info("run completed")

	// Dry runs report changes but write nothing, the changelog included.
	if path := c.changelogPath; path != "" && !c.dryRun {
		if err := c.Changelog().WriteIfChanged(path); err != nil {
			return err
		}
	}
	return c.ExitErr(flagged)
}

// hookPaths resolves the hook's file set: the files matching its glob, or
// the whole working tree when no glob is configured.
func hookPaths(c *RunContext, h config.HookConfig) ([]string, error) {
	if h.Files == "" {
		return []string{"."}, nil
	}
	return CollectFiles(c, ".", h.Files)
}

// acquireRunLock takes a per-repository file lock so concurrent runs do not
// rewrite the same files.
func acquireRunLock() (func() error, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	lockDir := config.StateHomePath()
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, errors.WithStack(fmt.Errorf("failed to create lock directory: %w", err))
	}
	sum := sha256.Sum256([]byte(cwd))
	lockPath := filepath.Join(lockDir, fmt.Sprintf("run-%x.lock", sum[:6]))
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.WithStack(fmt.Errorf("failed to acquire run lock: %w", err))
	}
	if !locked {
		return nil, errors.WithStack(fmt.Errorf("another preflight run is in progress for %s", cwd))
	}
	return fl.Unlock, nil
}
