package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/exec"
	"github.com/preflight-sh/preflight/config"
)

const installMaxTries = 3

// ensureInstalled installs the hook's tool under .preflight-tools/<hook-id>/
// when it is not installed yet, and returns the path to the executable.
// Installed binaries are recorded in the lock file.
func ensureInstalled(ctx context.Context, c *RunContext, h config.HookConfig) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	install := h.Install
	if install == nil {
		return "", fmt.Errorf("hook %q requires install but no install configuration provided", h.ID)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := filepath.Join(cwd, config.ToolsDir, h.ID)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", err
	}

	lang := install.Language
	if lang == "" {
		lang = "rust"
	}

	var path string
	switch lang {
	case "rust":
		path, err = installRust(ctx, c, h, root)
	case "python":
		path, err = installPython(ctx, c, h, root)
	case "node":
		path, err = installNode(ctx, c, h, root)
	case "binary":
		path, err = installBinary(ctx, c, h, root)
	default:
		return "", fmt.Errorf("hook %q: unsupported install language %q", h.ID, lang)
	}
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("expected executable for hook %q at %s but it does not exist", h.ID, path)
	}

	source := install.Package
	if source == "" {
		source = install.Repo
	}
	if source == "" {
		source = install.URL
	}
	if err := RecordHook(h.ID, lang, source, install.Entry, path); err != nil {
		return "", err
	}
	return path, nil
}

func installRust(ctx context.Context, c *RunContext, h config.HookConfig, root string) (string, error) {
	install := h.Install
	binPath := filepath.Join(root, "bin", install.BinaryName(h.ID))
	if _, err := os.Stat(binPath); err == nil {
		return binPath, nil
	}
	if install.Repo == "" && install.Package == "" {
		return "", fmt.Errorf("install for hook %q requires 'repo' or 'package'", h.ID)
	}
	c.debugf("installing rust hook", "hook", h.ID, "root", root)

	args := []string{"install", "--force", "--root", root}
	if install.Repo != "" {
		args = append(args, "--git", install.Repo)
	}
	if install.Binary != "" {
		args = append(args, "--bin", install.Binary)
	}
	args = append(args, install.InstallArgs...)
	if install.Package != "" {
		args = append(args, install.Package)
	}
	if err := runInstallCommand(ctx, c, h.ID, "cargo install", "cargo", args...); err != nil {
		return "", err
	}
	return binPath, nil
}

func installPython(ctx context.Context, c *RunContext, h config.HookConfig, root string) (string, error) {
	install := h.Install
	venvDir := filepath.Join(root, "venv")
	binDir := pythonBinDir(venvDir)
	executable := filepath.Join(binDir, install.EntryName(h.ID))
	if _, err := os.Stat(executable); err == nil {
		return executable, nil
	}

	// Create or update the virtual environment using uv
	if err := runInstallCommand(ctx, c, h.ID, "uv venv", "uv", "venv", venvDir); err != nil {
		return "", err
	}

	target := install.Package
	if target == "" {
		if install.Repo == "" {
			return "", fmt.Errorf("install for hook %q requires 'repo' or 'package'", h.ID)
		}
		target = "git+" + install.Repo
	}
	pythonName := "python"
	if runtime.GOOS == "windows" {
		pythonName = "python.exe"
	}
	args := []string{"pip", "install", "--python", filepath.Join(binDir, pythonName), "--no-cache"}
	args = append(args, install.InstallArgs...)
	args = append(args, target)
	if err := runInstallCommand(ctx, c, h.ID, "uv pip install", "uv", args...); err != nil {
		return "", err
	}
	return executable, nil
}

func installNode(ctx context.Context, c *RunContext, h config.HookConfig, root string) (string, error) {
	install := h.Install
	binPath := filepath.Join(root, "node_modules", ".bin", install.EntryName(h.ID))
	if _, err := os.Stat(binPath); err == nil {
		return binPath, nil
	}
	target := install.Package
	if target == "" {
		target = install.Repo
	}
	if target == "" {
		return "", fmt.Errorf("install for hook %q requires 'repo' or 'package'", h.ID)
	}
	c.debugf("installing node hook", "hook", h.ID, "target", target, "root", root)

	npm := os.Getenv("NPM")
	if npm == "" {
		npm = "npm"
	}
	args := []string{"install", "--prefix", root}
	args = append(args, install.InstallArgs...)
	args = append(args, target)
	if err := runInstallCommand(ctx, c, h.ID, "npm install", npm, args...); err != nil {
		return "", err
	}
	return binPath, nil
}

// installBinary downloads a prebuilt executable over HTTP(S).
func installBinary(ctx context.Context, c *RunContext, h config.HookConfig, root string) (string, error) {
	install := h.Install
	binPath := filepath.Join(root, "bin", install.BinaryName(h.ID))
	if _, err := os.Stat(binPath); err == nil {
		return binPath, nil
	}
	if install.URL == "" {
		return "", fmt.Errorf("install for hook %q requires 'url' for language binary", h.ID)
	}
	if err := os.MkdirAll(filepath.Dir(binPath), 0755); err != nil {
		return "", err
	}
	c.debugf("downloading binary hook", "hook", h.ID, "url", install.URL)

	stop := installSpinner(fmt.Sprintf(" downloading %s ...", h.ID))
	defer stop()

	client := retryablehttp.NewClient()
	client.RetryMax = installMaxTries
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 30 * time.Second
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", install.URL, nil)
	if err != nil {
		return "", err
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", install.URL, err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return "", fmt.Errorf("failed to download %s: status code %d", install.URL, res.StatusCode)
	}
	f, err := os.OpenFile(binPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, res.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", binPath, err)
	}
	return binPath, nil
}

// runInstallCommand runs a package-manager command, retrying transient
// failures with exponential backoff.
func runInstallCommand(ctx context.Context, c *RunContext, hookID, label, name string, args ...string) error {
	stop := installSpinner(fmt.Sprintf(" installing %s ...", hookID))
	defer stop()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		c.debugf("running install command", "label", label, "command", name, "args", args)
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Env = os.Environ()
		cmd.Stdout = io.Discard
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return struct{}{}, fmt.Errorf("%s failed: %w", label, err)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(installMaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.Logger().Warn("retrying install command", "label", label, "error", err, "next_retry", next.String())
		}),
	)
	return err
}

func installSpinner(suffix string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func pythonBinDir(venv string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venv, "Scripts")
	}
	return filepath.Join(venv, "bin")
}
