package preflight

import (
	"os"
	"unicode/utf8"

	"github.com/k1LoW/errors"
)

// HookFunc runs one hook over paths. args are the extra arguments from the
// hook's config entry (or the command line). The returned bool reports
// whether the hook changed files or found violations.
type HookFunc func(ctx *RunContext, args []string, paths []string) (bool, error)

// Hook is a builtin hook.
type Hook struct {
	ID      string
	Summary string
	// Fixer hooks rewrite files; non-fixer hooks only report violations.
	Fixer bool
	Run   HookFunc
}

var builtinHooks = []Hook{
	{
		ID:      "trailing-whitespace",
		Summary: "Fix trailing whitespace in files",
		Fixer:   true,
		Run:     TrailingWhitespace,
	},
	{
		ID:      "end-of-file-fixer",
		Summary: "Ensure files end with a single newline",
		Fixer:   true,
		Run:     EndOfFileFixer,
	},
	{
		ID:      "check-added-large-files",
		Summary: "Fail if files exceed a size limit",
		Run:     CheckAddedLargeFiles,
	},
	{
		ID:      "check-yaml",
		Summary: "Validate YAML files",
		Run:     CheckYAML,
	},
	{
		ID:      "pretty-format-json",
		Summary: "Pretty-format JSON files in place",
		Fixer:   true,
		Run:     PrettyFormatJSON,
	},
	{
		ID:      "check-todos",
		Summary: "Placeholder hook that verifies the given paths exist",
		Run:     CheckTodos,
	},
}

// BuiltinHooks returns the builtin hooks in their canonical order.
func BuiltinHooks() []Hook {
	hooks := make([]Hook, len(builtinHooks))
	copy(hooks, builtinHooks)
	return hooks
}

// LookupHook returns the builtin hook with the given id.
func LookupHook(id string) (Hook, bool) {
	for _, h := range builtinHooks {
		if h.ID == id {
			return h, true
		}
	}
	return Hook{}, false
}

// readTextFile reads path and reports whether its content is valid UTF-8.
// Hooks skip binary files instead of mangling them.
func readTextFile(path string) (_ string, ok bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	if !utf8.Valid(b) {
		return "", false, nil
	}
	return string(b), true, nil
}
