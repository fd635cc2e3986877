package preflight

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/k1LoW/errors"
	gitignore "github.com/sabhiram/go-gitignore"
)

// expandPaths flattens the given paths into regular files, recursing into
// directories. Entries under .git or matched by the repository .gitignore
// are skipped. Paths that do not exist are returned as-is so the hook can
// report them.
func expandPaths(ctx *RunContext, paths []string) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				files = append(files, p)
				continue
			}
			ctx.debugf("unable to stat path", "path", p, "error", err)
			continue
		}
		if !fi.IsDir() {
			files = append(files, p)
			continue
		}
		walked, err := walkDir(ctx, p, "")
		if err != nil {
			return nil, err
		}
		files = append(files, walked...)
	}
	return files, nil
}

// CollectFiles walks root and returns the files whose slash-separated path
// relative to root matches the doublestar pattern. An empty pattern matches
// the whole tree.
func CollectFiles(ctx *RunContext, root, pattern string) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if pattern != "" {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return walkDir(ctx, root, pattern)
}

func walkDir(ctx *RunContext, root, pattern string) ([]string, error) {
	matcher := loadIgnore(root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ctx.debugf("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if matcher != nil && rel != "." && matcher.MatchesPath(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if pattern != "" {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func loadIgnore(root string) *gitignore.GitIgnore {
	matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}
