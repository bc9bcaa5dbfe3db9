// Package config parses and represents relocal.yaml, the per-repo
// configuration file.
//
// The config is intentionally minimal: only `remote` is required. Unknown
// keys are ignored so that older binaries can read configs written for newer
// versions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repo config file looked up by FindRepoRoot.
const FileName = "relocal.yaml"

// ErrNotFound indicates no relocal.yaml was found walking up from the
// starting directory.
var ErrNotFound = errors.New("relocal.yaml not found")

// DefaultClaudeSync is the set of .claude/ subtrees mirrored in both
// directions when the config does not override it.
var DefaultClaudeSync = []string{"skills", "commands", "plugins"}

// Config models relocal.yaml. Immutable after load; every command invocation
// loads it once and passes it by value/pointer read-only.
type Config struct {
	// Remote is the SSH target, e.g. "user@host". Required.
	Remote string `yaml:"remote"`

	// Exclude holds extra rsync exclude patterns applied in both directions.
	Exclude []string `yaml:"exclude"`

	// AptPackages are extra packages installed by `relocal remote install`.
	AptPackages []string `yaml:"apt_packages"`

	// ClaudeSync names the .claude/ subtrees kept in sync; defaults to
	// DefaultClaudeSync when absent.
	ClaudeSync []string `yaml:"claude_sync"`
}

// Parse decodes a relocal.yaml document and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if cfg.Remote == "" {
		return nil, fmt.Errorf("parse %s: missing required key %q", FileName, "remote")
	}
	if cfg.ClaudeSync == nil {
		cfg.ClaudeSync = append([]string(nil), DefaultClaudeSync...)
	}
	return &cfg, nil
}

// Load reads and parses the config file inside root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// FindRepoRoot walks up from start looking for a directory containing
// relocal.yaml. The nearest match wins, mirroring how git finds `.git/`.
func FindRepoRoot(start string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if fi, err := os.Stat(filepath.Join(current, FileName)); err == nil && fi.Mode().IsRegular() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w (searched from %s upward); run relocal from the project root, or run `relocal init` to create one", ErrNotFound, start)
		}
		current = parent
	}
}
