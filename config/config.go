package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/expand"
)

// DefaultProjectConfigPath is the per-repository hook configuration file.
const DefaultProjectConfigPath = ".preflight.yml"

// ToolsDir is where managed hook tools are installed, relative to the
// repository root.
const ToolsDir = ".preflight-tools"

// InstallPlaceholder marks a hook command as "install the tool first, then
// run the installed binary".
const InstallPlaceholder = "{install}"

var (
	homePath       string
	configHomePath string
	dataHomePath   string
	stateHomePath  string
)

// Config is the user-level configuration (XDG config dir), not the
// per-repository hook list.
type Config struct {
	// Whether to write PREFLIGHT_CHANGELOG.md after runs that changed files
	Changelog *bool `yaml:"changelog,omitempty" json:"changelog,omitempty"`
	// Default limit for check-added-large-files, in bytes
	MaxFileSize int64 `yaml:"maxFileSize,omitempty" json:"maxFileSize,omitempty"`
}

// Project is the per-repository configuration loaded from .preflight.yml.
type Project struct {
	Hooks []HookConfig `yaml:"hooks,omitempty" json:"hooks,omitempty"`
}

// HookConfig is one entry of the project hook list.
type HookConfig struct {
	ID      string   `yaml:"id" json:"id"`
	Enabled *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
	// doublestar glob matched against repository-relative paths
	Files string `yaml:"files,omitempty" json:"files,omitempty"`
	// External command to run instead of a builtin hook
	Command    string         `yaml:"command,omitempty" json:"command,omitempty"`
	WorkingDir string         `yaml:"working-dir,omitempty" json:"working-dir,omitempty"`
	Install    *InstallConfig `yaml:"install,omitempty" json:"install,omitempty"`
}

// InstallConfig describes how to install an external hook tool.
type InstallConfig struct {
	Repo        string            `yaml:"repo,omitempty" json:"repo,omitempty"`
	Package     string            `yaml:"package,omitempty" json:"package,omitempty"`
	URL         string            `yaml:"url,omitempty" json:"url,omitempty"`
	Entry       string            `yaml:"entry,omitempty" json:"entry,omitempty"`
	Binary      string            `yaml:"binary,omitempty" json:"binary,omitempty"`
	Language    string            `yaml:"language,omitempty" json:"language,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	InstallArgs []string          `yaml:"install-args,omitempty" json:"install-args,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the user configuration.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/preflight/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/preflight/config.yml
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(b, cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, nil
			}
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// LoadProject loads the per-repository hook configuration. Environment
// variable references in the YAML are expanded before unmarshaling.
func LoadProject(path string) (_ *Project, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config %s: %w", path, err)
	}
	b = expand.ExpandenvYAMLBytes(b)
	p := &Project{}
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project config %s: %w", path, err)
	}
	for i := range p.Hooks {
		if p.Hooks[i].ID == "" {
			return nil, fmt.Errorf("project config %s: hook %d has no id", path, i)
		}
	}
	return p, nil
}

// IsEnabled reports whether the hook should run. Hooks are enabled unless
// disabled explicitly.
func (h HookConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// CommandIsInstall reports whether the hook command is the managed-install
// placeholder.
func (h HookConfig) CommandIsInstall() bool {
	return h.Command == InstallPlaceholder
}

// InstallSummary renders the install configuration for listings.
func (i *InstallConfig) InstallSummary() string {
	target := i.Package
	if target == "" {
		target = i.Repo
	}
	if target == "" {
		target = i.URL
	}
	if target == "" {
		target = "unknown"
	}
	entry := i.Entry
	if entry == "" {
		entry = "default"
	}
	lang := i.Language
	if lang == "" {
		lang = "rust"
	}
	return fmt.Sprintf("lang=%s target=%s entry=%s", lang, target, entry)
}

// EntryName returns the executable name to run for the hook.
func (i *InstallConfig) EntryName(hookID string) string {
	switch {
	case i.Entry != "":
		return i.Entry
	case i.Binary != "":
		return i.Binary
	default:
		return hookID
	}
}

// BinaryName returns the name of the installed binary for the hook.
func (i *InstallConfig) BinaryName(hookID string) string {
	switch {
	case i.Binary != "":
		return i.Binary
	case i.Entry != "":
		return i.Entry
	default:
		return hookID
	}
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "preflight")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "preflight")
	}
	return configHomePath
}

// DataHomePath returns the path to the data home directory.
func DataHomePath() string {
	if dataHomePath != "" {
		return dataHomePath
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		dataHomePath = filepath.Join(v, "preflight")
	} else {
		dataHomePath = filepath.Join(homePath, ".local", "share", "preflight")
	}
	return dataHomePath
}

// StateHomePath returns the path to the state home directory.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, "preflight")
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", "preflight")
	}
	return stateHomePath
}
