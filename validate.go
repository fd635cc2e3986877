package preflight

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
)

// ValidateHook checks that a builtin hook meets the hook contract:
// it accepts empty input, never modifies files under dry-run, flags files
// that violate its rule, and survives missing and non-UTF-8 files.
func ValidateHook(id string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	hook, ok := LookupHook(id)
	if !ok {
		ids := make([]string, 0, len(builtinHooks))
		for _, h := range builtinHooks {
			ids = append(ids, h.ID)
		}
		return fmt.Errorf("unknown hook: %s. Available hooks: %v", id, ids)
	}

	// Empty input is a no-op.
	ctx, err := New()
	if err != nil {
		return err
	}
	if _, err := hook.Run(ctx, nil, nil); err != nil {
		return fmt.Errorf("hook %s failed on empty input: %w", id, err)
	}

	tmpDir, err := os.MkdirTemp("", "preflight-validate-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	// Dry-run must leave file content untouched.
	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content\n\n"), 0644); err != nil {
		return err
	}
	dryCtx, err := New(WithDryRun(true), WithDebug(true))
	if err != nil {
		return err
	}
	before, err := os.ReadFile(testFile)
	if err != nil {
		return err
	}
	if _, err := hook.Run(dryCtx, nil, []string{testFile}); err != nil {
		return fmt.Errorf("hook %s failed in dry-run mode: %w", id, err)
	}
	after, err := os.ReadFile(testFile)
	if err != nil {
		return err
	}
	if hook.Fixer && !bytes.Equal(before, after) {
		return fmt.Errorf("hook %s modified file in dry-run mode", id)
	}

	// A file violating the hook's rule must be flagged.
	badFile, err := writeViolatingFile(tmpDir, id)
	if err != nil {
		return err
	}
	checkCtx, err := New(WithDebug(true))
	if err != nil {
		return err
	}
	flagged, err := hook.Run(checkCtx, nil, []string{badFile})
	if err != nil {
		return fmt.Errorf("hook %s failed on violating file: %w", id, err)
	}
	if !flagged {
		return fmt.Errorf("hook %s did not indicate failure/changes when expected", id)
	}

	// Missing and non-UTF-8 files may be reported as errors but must not
	// modify anything or panic.
	if _, err := hook.Run(checkCtx, nil, []string{filepath.Join(tmpDir, "does-not-exist.txt")}); err != nil {
		checkCtx.debugf("hook reported missing file", "hook", id, "error", err)
	}
	invalidUTF8 := filepath.Join(tmpDir, "invalid-utf8.txt")
	if err := os.WriteFile(invalidUTF8, []byte("Hello \xFF\xFE World"), 0644); err != nil {
		return err
	}
	beforeUTF8, err := os.ReadFile(invalidUTF8)
	if err != nil {
		return err
	}
	if _, err := hook.Run(checkCtx, nil, []string{invalidUTF8}); err != nil {
		checkCtx.debugf("hook reported non-utf8 file", "hook", id, "error", err)
	}
	afterUTF8, err := os.ReadFile(invalidUTF8)
	if err != nil {
		return err
	}
	if !bytes.Equal(beforeUTF8, afterUTF8) {
		return fmt.Errorf("hook %s rewrote a non-UTF-8 file", id)
	}

	return nil
}

// writeViolatingFile creates a file that should trip the given hook.
func writeViolatingFile(dir, id string) (string, error) {
	switch id {
	case "check-yaml":
		f := filepath.Join(dir, "invalid.yaml")
		return f, os.WriteFile(f, []byte("invalid: [yaml: }"), 0644)
	case "check-added-large-files":
		f := filepath.Join(dir, "large.txt")
		return f, os.WriteFile(f, bytes.Repeat([]byte{'x'}, DefaultMaxFileSize+1), 0644)
	case "check-todos":
		// The stub hook only flags missing paths.
		return filepath.Join(dir, "missing.txt"), nil
	case "trailing-whitespace":
		f := filepath.Join(dir, "needs-fixing.txt")
		return f, os.WriteFile(f, []byte("trailing \nwhitespace\t\n"), 0644)
	case "pretty-format-json":
		f := filepath.Join(dir, "needs-fixing.json")
		return f, os.WriteFile(f, []byte(`{"a":1}`), 0644)
	default:
		// Fixer hooks trip on a file missing the final newline.
		f := filepath.Join(dir, "needs-fixing.txt")
		return f, os.WriteFile(f, []byte("test content"), 0644)
	}
}
