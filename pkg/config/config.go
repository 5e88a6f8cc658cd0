// Package config loads and writes the optional grits build configuration
// file (grits.yaml, grits.yml or grits.json in the source directory).
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-grits/pkg/render/template/gotemplate"
)

// FileNames are the config files Find looks for, in order.
var FileNames = []string{"grits.yaml", "grits.yml", "grits.json"}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config is the on-disk build configuration. Unset fields keep the build
// defaults.
type Config struct {
	// Context is merged into the "user" view before the build.
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// Templates is the template override directory, relative to the config
	// file when not absolute.
	Templates string `json:"templates,omitempty" yaml:"templates,omitempty"`

	Engine         *gotemplate.EngineOptions `json:"engine,omitempty" yaml:"engine,omitempty"`
	BinarySuffixes []string                  `json:"binary_suffixes,omitempty" yaml:"binary_suffixes,omitempty"`
	Pretty         *bool                     `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// PrettyEnabled reports whether .html renders are pretty-printed.
func (c Config) PrettyEnabled() bool {
	return c.Pretty == nil || *c.Pretty
}

// Find returns the first config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Load reads and validates the config file at path. Content is parsed as JSON
// first and as YAML otherwise.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	if cfg.Templates != "" && !filepath.IsAbs(cfg.Templates) {
		cfg.Templates = filepath.Join(filepath.Dir(path), cfg.Templates)
	}
	return cfg, nil
}

// Parse decodes and validates raw config bytes. source only labels errors.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	for key := range c.Context {
		if !identifier.MatchString(key) {
			errs = append(errs, fmt.Errorf("context key %q is not a valid template identifier", key))
		}
	}
	for _, suffix := range c.BinarySuffixes {
		if strings.TrimSpace(suffix) == "" {
			errs = append(errs, errors.New("binary_suffixes contains an empty entry"))
			break
		}
	}
	return errors.Join(errs...)
}

// Write stores cfg as YAML at path, replacing any existing file atomically.
func Write(path string, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("config: chmod %s: %w", path, err)
	}
	return nil
}
