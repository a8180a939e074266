// Package config loads the depexport CLI configuration file.
//
// The file lives at ~/.config/depexport/config.yaml. A missing file is not
// an error: the defaults apply. Command-line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	depexport "github.com/albertocavalcante/go-depexport"
)

const (
	userConfigDir  = ".config/depexport"
	configFileName = "config.yaml"
)

// Config is the CLI configuration.
type Config struct {
	// OutputBase replaces the home directory as the base of the output
	// tree. Empty means the home directory.
	OutputBase string `yaml:"outputBase"`

	// Namespace is the tool directory under the output base.
	Namespace string `yaml:"namespace"`

	// Kind is the export kind directory under the namespace.
	Kind string `yaml:"kind"`

	// Indent indents written JSON. Empty writes compact JSON.
	Indent string `yaml:"indent"`

	// Concurrency bounds how many projects are exported at once.
	Concurrency int `yaml:"concurrency"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Namespace:   depexport.DefaultNamespace,
		Kind:        depexport.DefaultKind,
		Concurrency: depexport.DefaultConcurrency,
		LogLevel:    "warn",
	}
}

// DefaultPath returns ~/.config/depexport/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the exporter would reject later.
func (c Config) Validate() error {
	if c.Namespace == "" {
		return errors.New("namespace must not be empty")
	}
	if c.Kind == "" {
		return errors.New("kind must not be empty")
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be positive")
	}
	return nil
}

// Options converts the configuration to exporter options.
func (c Config) Options() []depexport.Option {
	return []depexport.Option{
		depexport.WithOutputBase(c.OutputBase),
		depexport.WithNamespace(c.Namespace),
		depexport.WithKind(c.Kind),
		depexport.WithIndent(c.Indent),
		depexport.WithConcurrency(c.Concurrency),
	}
}
