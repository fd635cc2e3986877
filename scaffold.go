package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/errors"
	"github.com/preflight-sh/preflight/config"
)

// Hook scaffold templates. {{hook_name}} and {{description}} are replaced
// with the values given to CreateHook.
const rustCargoTemplate = `[package]
name = "{{hook_name}}"
version = "0.1.0"
edition = "2021"

[[bin]]
name = "{{hook_name}}"
path = "src/main.rs"
`

const rustMainTemplate = `//! {{description}}

use std::process::exit;

fn main() {
    let mut failed = false;
    for path in std::env::args().skip(1) {
        if !std::path::Path::new(&path).exists() {
            eprintln!("File not found: {}", path);
            failed = true;
            continue;
        }
        // Implement the hook logic here.
    }
    exit(if failed { 1 } else { 0 });
}
`

const pythonHookTemplate = `#!/usr/bin/env python3
"""{{hook_name}}: {{description}}"""
import argparse
import os
import sys


def main() -> int:
    parser = argparse.ArgumentParser(description="{{description}}")
    parser.add_argument("files", nargs="*", help="files to check")
    parser.add_argument("--debug", action="store_true")
    parser.add_argument("--dry-run", action="store_true")
    args = parser.parse_args()

    failed = False
    for path in args.files:
        if not os.path.exists(path):
            print(f"File not found: {path}", file=sys.stderr)
            failed = True
            continue
        if args.debug:
            print(f"{{hook_name}}: checking {path}")
        # Implement the hook logic here.
    return 1 if failed else 0


if __name__ == "__main__":
    sys.exit(main())
`

const shellHookTemplate = `#!/usr/bin/env bash
# {{hook_name}}: {{description}}
set -euo pipefail

status=0
for path in "$@"; do
  if [[ ! -e "$path" ]]; then
    echo "File not found: $path" >&2
    status=1
    continue
  fi
  # Implement the hook logic here.
done
exit "$status"
`

// CreateHook scaffolds a custom hook project under outputDir/<name> and
// returns the created directory. language selects the template: rust
// (a cargo project), python (an executable script), or shell. A sample
// config snippet referencing the hook is written alongside.
func CreateHook(c *RunContext, name, language, description, outputDir string) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if name == "" {
		return "", fmt.Errorf("hook name must not be empty")
	}
	if outputDir == "" {
		outputDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	hookDir := filepath.Join(outputDir, name)
	if fi, serr := os.Stat(hookDir); serr == nil {
		if !fi.IsDir() {
			return "", fmt.Errorf("%s exists but is not a directory", hookDir)
		}
		c.Logger().Info("hook directory already exists, updating", "path", hookDir)
	} else if err := os.MkdirAll(hookDir, 0755); err != nil {
		return "", err
	}

	expand := strings.NewReplacer(
		"{{hook_name}}", name,
		"{{description}}", description,
	).Replace

	var command string
	switch language {
	case "rust":
		if err := os.MkdirAll(filepath.Join(hookDir, "src"), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(hookDir, "Cargo.toml"), []byte(expand(rustCargoTemplate)), 0644); err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(hookDir, "src", "main.rs"), []byte(expand(rustMainTemplate)), 0644); err != nil {
			return "", err
		}
		command = filepath.Join(hookDir, "target", "release", name)
	case "python":
		script := filepath.Join(hookDir, name+".py")
		if err := os.WriteFile(script, []byte(expand(pythonHookTemplate)), 0755); err != nil {
			return "", err
		}
		command = script
	case "shell":
		script := filepath.Join(hookDir, name)
		if err := os.WriteFile(script, []byte(expand(shellHookTemplate)), 0755); err != nil {
			return "", err
		}
		command = script
	default:
		return "", fmt.Errorf("unsupported hook language %q (want rust, python, or shell)", language)
	}

	snippet := fmt.Sprintf(`# Add this to your %s to use this hook:
  - id: %s
    files: '**/*'  # Adjust pattern to match files you want to check
    enabled: true
    command: %s
`, config.DefaultProjectConfigPath, name, command)
	if err := os.WriteFile(filepath.Join(hookDir, "preflight-config.yaml"), []byte(snippet), 0644); err != nil {
		return "", err
	}

	c.debugf("scaffolded hook", "name", name, "language", language, "path", hookDir)
	return hookDir, nil
}
