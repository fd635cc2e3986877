// Package preflight is a pre-commit hook framework: a set of builtin
// file-fixing and file-checking hooks plus a config-driven runner for
// external hook commands.
package preflight

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/k1LoW/errors"
)

// ErrHookFailed is returned when a hook made changes or found violations.
// The CLI maps it to exit code 1 without an error dump.
var ErrHookFailed = errors.New("hook reported changes or violations")

// RunContext carries the options shared by every hook invocation.
type RunContext struct {
	dryRun        bool
	debug         bool
	logger        *slog.Logger
	changelog     *Changelog
	changelogPath string
	runID         string
}

type Option func(*RunContext) error

// WithDryRun reports what would change without writing anything, and
// suppresses the failure exit code.
func WithDryRun(dryRun bool) Option {
	return func(c *RunContext) error {
		c.dryRun = dryRun
		return nil
	}
}

// WithDebug enables per-file debug logging.
func WithDebug(debug bool) Option {
	return func(c *RunContext) error {
		c.debug = debug
		return nil
	}
}

// WithChangelogPath sets where Run writes the change report. An empty path
// disables the changelog.
func WithChangelogPath(path string) Option {
	return func(c *RunContext) error {
		c.changelogPath = path
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *RunContext) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		c.logger = logger
		return nil
	}
}

// New creates a RunContext. Every run gets a fresh run ID that is attached
// to log records and the changelog.
func New(opts ...Option) (_ *RunContext, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	c := &RunContext{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		changelog:     NewChangelog(),
		changelogPath: DefaultChangelogPath,
		runID:         uuid.NewString(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With(slog.String("run_id", c.runID))
	return c, nil
}

func (c *RunContext) DryRun() bool          { return c.dryRun }
func (c *RunContext) Debug() bool           { return c.debug }
func (c *RunContext) Logger() *slog.Logger  { return c.logger }
func (c *RunContext) Changelog() *Changelog { return c.changelog }
func (c *RunContext) RunID() string         { return c.runID }

// ExitErr converts a hook's flagged state into ErrHookFailed. Dry runs
// never fail: the point of exit code 1 is to stop a commit, and a dry run
// stops nothing.
func (c *RunContext) ExitErr(flagged bool) error {
	if flagged && !c.dryRun {
		return ErrHookFailed
	}
	return nil
}

func (c *RunContext) debugf(msg string, args ...any) {
	if c.debug {
		c.logger.Debug(msg, args...)
	}
}

// fileChecked records and logs that a hook examined a file without changes.
func (c *RunContext) fileChecked(hookID, path string) {
	c.changelog.RecordFileChecked(hookID, path)
	c.logger.Info("checked file", slog.String("hook", hookID), slog.String("path", path))
}

// fileFixed records and logs a rewrite.
func (c *RunContext) fileFixed(hookID, path, msg string) {
	c.changelog.RecordChange(hookID, msg)
	c.changelog.RecordFileModified(hookID, path)
	c.logger.Info("fixed file", slog.String("hook", hookID), slog.String("path", path))
}

// fileWouldFix records and logs a change suppressed by dry-run.
func (c *RunContext) fileWouldFix(hookID, path, msg string) {
	c.changelog.RecordChange(hookID, msg)
	c.logger.Info("would fix file", slog.String("hook", hookID), slog.String("path", path))
}

// violation records and logs a check failure.
func (c *RunContext) violation(hookID, path, msg string, args ...any) {
	c.changelog.RecordChange(hookID, msg)
	args = append([]any{slog.String("hook", hookID), slog.String("path", path)}, args...)
	c.logger.Error("violation found", args...)
}
