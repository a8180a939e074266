package depexport

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

const (
	// DefaultNamespace is the tool directory created under the output base.
	DefaultNamespace = "depexport"

	// DefaultKind is the export kind directory below the namespace.
	DefaultKind = "dependencies"

	// DefaultConcurrency bounds ExportAll when WithConcurrency is not set.
	DefaultConcurrency = 4
)

// Option configures export behavior.
type Option func(*exportConfig) error

// exportConfig holds all export configuration.
type exportConfig struct {
	outputBase  string
	namespace   string
	kind        string
	rootDir     string
	indent      string
	concurrency int

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithOutputBase sets the directory the namespace directory is created in.
// Defaults to the invoking user's home directory.
func WithOutputBase(dir string) Option {
	return func(c *exportConfig) error {
		c.outputBase = dir
		return nil
	}
}

// WithNamespace sets the tool namespace directory. A leading dot is added
// when the directory is created.
func WithNamespace(namespace string) Option {
	return func(c *exportConfig) error {
		c.namespace = namespace
		return nil
	}
}

// WithKind sets the export kind directory below the namespace.
func WithKind(kind string) Option {
	return func(c *exportConfig) error {
		c.kind = kind
		return nil
	}
}

// WithRootDir sets the root build directory. Its base name, base64 encoded,
// keys the output directory.
func WithRootDir(dir string) Option {
	return func(c *exportConfig) error {
		c.rootDir = dir
		return nil
	}
}

// WithIndent indents the written JSON with the given string. The default is
// the compact single-line form.
func WithIndent(indent string) Option {
	return func(c *exportConfig) error {
		c.indent = indent
		return nil
	}
}

// WithConcurrency bounds the number of projects ExportAll exports at once.
func WithConcurrency(n int) Option {
	return func(c *exportConfig) error {
		c.concurrency = n
		return nil
	}
}

// WithLogger sets a structured logger for export diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "depexport")
//	Export(project, WithRootDir(dir), WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *exportConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *exportConfig) validate() error {
	if c.namespace == "" {
		return errors.New("namespace must not be empty")
	}
	if c.kind == "" {
		return errors.New("kind must not be empty")
	}
	if c.concurrency < 1 {
		return errors.New("concurrency must be positive")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *exportConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newExportConfig creates a new export configuration by applying the given
// options over the defaults and validating the result.
func newExportConfig(opts ...Option) (*exportConfig, error) {
	c := &exportConfig{
		namespace:   DefaultNamespace,
		kind:        DefaultKind,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// resolveOutputBase returns the configured output base, falling back to the
// user's home directory.
func (c *exportConfig) resolveOutputBase() (string, error) {
	if c.outputBase != "" {
		return c.outputBase, nil
	}
	return os.UserHomeDir()
}
