package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cargotag/internal/core"
)

const (
	// DefaultFileName is the configuration file looked up in the start directory.
	DefaultFileName = ".cargotag.yaml"

	// EnvConfigPath overrides the configuration file location.
	EnvConfigPath = "CARGOTAG_CONFIG"
)

// Config holds the persistent defaults for release runs. Command-line flags
// take precedence over every field.
type Config struct {
	Remote      string   `yaml:"remote,omitempty"`
	TagPrefix   string   `yaml:"tag-prefix,omitempty"`
	Manifests   []string `yaml:"manifests,omitempty"`
	ScanSubdirs bool     `yaml:"scan-subdirs,omitempty"`
	Selector    string   `yaml:"selector,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`

	// source is the file the configuration was read from, if any.
	source string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Remote:    "origin",
		TagPrefix: "v",
		Manifests: []string{"Cargo.toml"},
	}
}

// Source returns the path the configuration was loaded from, or "" for defaults.
func (c *Config) Source() string {
	return c.source
}

// Marshaler abstracts serialization for testability.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// yamlMarshaler is the production implementation of Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Loader reads configuration files.
type Loader struct {
	fs     core.FileSystem
	getenv func(string) string
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs core.FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// Load resolves and reads the configuration. The location is, in order of
// priority: explicit (the --config flag), the CARGOTAG_CONFIG environment
// variable, then DefaultFileName in dir. A missing explicit or environment
// file is an error; a missing default file yields Default().
func (l *Loader) Load(ctx context.Context, explicit, dir string) (*Config, error) {
	path, required, err := l.resolve(explicit, dir)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", core.ErrConfig, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrConfig, path, err)
	}
	cfg.source = path
	return cfg, nil
}

func (l *Loader) resolve(explicit, dir string) (string, bool, error) {
	if explicit != "" {
		return filepath.Clean(explicit), true, nil
	}

	if envPath := l.getenv(EnvConfigPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if !filepath.IsAbs(cleanPath) && strings.Contains(cleanPath, "..") {
			return "", false, fmt.Errorf("%w: invalid %s: path traversal not allowed, use absolute path instead", core.ErrConfig, EnvConfigPath)
		}
		return cleanPath, true, nil
	}

	return filepath.Join(dir, DefaultFileName), false, nil
}

// Parse decodes a YAML document strictly (unknown keys are rejected) and
// fills unset fields from Default().
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, err
	}

	def := Default()
	if cfg.Remote == "" {
		cfg.Remote = def.Remote
	}
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = def.TagPrefix
	}
	if len(cfg.Manifests) == 0 {
		cfg.Manifests = def.Manifests
	}
	return &cfg, nil
}

// Saver writes configuration files.
type Saver struct {
	fs        core.FileSystem
	marshaler Marshaler
}

// NewSaver creates a Saver. A nil marshaler means YAML.
func NewSaver(fs core.FileSystem, marshaler Marshaler) *Saver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	return &Saver{fs: fs, marshaler: marshaler}
}

// SaveTo writes cfg to path with ConfigFilePerm.
func (s *Saver) SaveTo(ctx context.Context, cfg *Config, path string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", path, err)
	}

	if err := s.fs.WriteFile(ctx, path, data, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW
