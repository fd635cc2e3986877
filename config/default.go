package config

import (
	"os"

	"github.com/k1LoW/errors"
)

const defaultProjectConfig = `# .preflight.yml generated by preflight
# Each hook has a 'files' glob pattern that matches files to check
# Globs can use: ? (single char), * (any chars), ** (recursive dirs)
# Example: '**/*.{go,md}' matches Go files and Markdown files
#
# For external tools, preflight manages installation automatically.
# Python hooks use the uv CLI (https://docs.astral.sh/uv/) to create
# per-hook virtual environments. Ensure uv is available on PATH before
# running these hooks.
# Built-in hooks provided by preflight:
hooks:
  - id: trailing-whitespace
    files: '**/*.{go,py,js,ts,txt,md}'
    enabled: true
  - id: end-of-file-fixer
    files: '**/*.{go,py,txt,md}'
    enabled: true
  - id: check-yaml
    files: '**/*.{yml,yaml}'
    enabled: true
  - id: pretty-format-json
    files: '**/*.{json,jsonc}'
    enabled: false
  - id: check-added-large-files
    files: '**/*'
    enabled: false
    args: ['500000']  # optional max size in bytes
  - id: check-todos
    files: '**/*.{go,md}'
    enabled: false

  # Example: install and run a Python tool (managed with uv venv)
  - id: ruff-check
    files: '**/*.py'
    enabled: false
    command: "{install}"
    install:
      language: python
      package: ruff
      entry: ruff
    args: ['check', '--fix']

  # Example: use a Node package from npm
  - id: prettier
    files: '**/*.{js,ts,jsx,tsx,json,css,md}'
    enabled: false
    command: "{install}"
    install:
      language: node
      package: prettier
      entry: prettier
    args: ['--write']

  # Example: install a Rust crate from crates.io or Git
  - id: cargo-deny
    files: '**/Cargo.lock'
    enabled: false
    command: "{install}"
    install:
      language: rust
      package: cargo-deny
      binary: cargo-deny
    args: ['check']

  # Example: download a prebuilt binary over HTTPS
  - id: shellcheck
    files: '**/*.sh'
    enabled: false
    command: "{install}"
    install:
      language: binary
      url: https://example.com/shellcheck
      binary: shellcheck

  # Example: run a locally available command/binary
  - id: gofmt
    files: '**/*.go'
    enabled: false
    command: gofmt
    args: ['-w']
`

// WriteDefault writes the commented default project config to path.
func WriteDefault(path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return os.WriteFile(path, []byte(defaultProjectConfig), 0644)
}
