package preflight

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
)

// InstallGitHook writes a pre-commit hook script into the repository's
// .git/hooks directory that runs `preflight run`. binPath overrides the
// preflight binary to use; when empty the installed binary is looked up on
// PATH, falling back to the current executable.
func InstallGitHook(ctx context.Context, c *RunContext, binPath string) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	repoRoot, err := gitTopLevel(ctx)
	if err != nil {
		return "", err
	}
	hookPath := filepath.Join(repoRoot, ".git", "hooks", "pre-commit")

	if binPath == "" {
		binPath, err = resolveBinary(c)
		if err != nil {
			return "", err
		}
	}

	shell, err := detectShell()
	if err != nil {
		return "", err
	}
	script := fmt.Sprintf(`#!%s
set -e

# Run pre-commit hooks using %s
exec "%s" run
`, shell, binPath, binPath)

	c.debugf("writing hook script", "path", hookPath, "binary", binPath)
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		return "", fmt.Errorf("failed to write git hook: %w", err)
	}
	return hookPath, nil
}

func gitTopLevel(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to find git repository root: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func resolveBinary(c *RunContext) (string, error) {
	if path, err := osexec.LookPath("preflight"); err == nil {
		return path, nil
	}
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate preflight binary: %w", err)
	}
	c.debugf("no installed binary found, using current executable", "path", path)
	return path, nil
}
