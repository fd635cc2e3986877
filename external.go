package preflight

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
	"github.com/preflight-sh/preflight/config"
)

// runExternalCommand runs an external hook command with the configured args
// followed by the matched paths. The hook's install env (when present) is
// merged over the process environment.
func runExternalCommand(ctx context.Context, c *RunContext, h config.HookConfig, cmdPath string, paths []string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	c.debugf("running external command", "hook", h.ID, "command", cmdPath)

	args := make([]string, 0, len(h.Args)+len(paths))
	args = append(args, h.Args...)
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, cmdPath, args...)
	cmd.Env = os.Environ()
	if h.Install != nil {
		for k, v := range h.Install.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	if h.WorkingDir != "" {
		cmd.Dir = h.WorkingDir
	}
	cmd.Stdout = os.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("external command %q failed: %w\nstderr: %s", cmdPath, err, stderr.String())
		}
		return fmt.Errorf("external command %q failed: %w", cmdPath, err)
	}
	return nil
}

// detectShell returns the shell used for the git pre-commit wrapper script.
func detectShell() (string, error) {
	shells := []string{
		os.Getenv("SHELL"),
		"/bin/bash",
		"/bin/sh",
	}
	for _, shell := range shells {
		if shell == "" {
			continue
		}
		if _, err := os.Stat(shell); err == nil {
			return shell, nil
		}
	}
	return "", fmt.Errorf("failed to detect shell")
}
