package preflight

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
	"github.com/preflight-sh/preflight/config"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 500 * time.Millisecond

// Watch re-runs the configured hooks whenever files under the working tree
// change. Events are debounced so one save triggers one run. Watch blocks
// until ctx is canceled.
func Watch(ctx context.Context, c *RunContext, proj *config.Project) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, "."); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ignoreWatchEvent(event) {
					continue
				}
				c.debugf("file event", "op", event.Op.String(), "path", event.Name)
				if event.Op.Has(fsnotify.Create) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						_ = addWatchDirs(watcher, event.Name)
					}
				}
				select {
				case trigger <- struct{}{}:
				default:
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				c.Logger().Warn("watch error", "error", werr)
			}
		}
	})

	eg.Go(func() error {
		timer := time.NewTimer(watchDebounce)
		if !timer.Stop() {
			<-timer.C
		}
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-trigger:
				timer.Reset(watchDebounce)
			case <-timer.C:
				c.Logger().Info("running hooks")
				if err := Run(ctx, c, proj); err != nil && !errors.Is(err, ErrHookFailed) {
					return err
				}
			}
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ignoreWatchEvent filters events from paths the runner itself writes.
func ignoreWatchEvent(event fsnotify.Event) bool {
	name := filepath.ToSlash(event.Name)
	for _, skip := range []string{
		".git/",
		config.ToolsDir + "/",
		DefaultChangelogPath,
		DefaultLockPath,
	} {
		if strings.Contains(name, skip) {
			return true
		}
	}
	return event.Op == fsnotify.Chmod
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || name == config.ToolsDir {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}
