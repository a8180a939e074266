// Package cli implements the depexport command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-depexport/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeChanges indicates diff --exit-code found differences.
	ExitCodeChanges = 2
)

// ErrChangesFound is returned by diff --exit-code when the exports differ.
var ErrChangesFound = errors.New("exports differ")

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd creates the depexport command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "depexport",
		Short: "Export a multi-project build's dependency graph to JSON",
		Long: `depexport reads the resolution state a build tool dumped for each project
of a multi-project build and writes one JSON dependency graph per project to
~/.<namespace>/<kind>/<base64(root directory name)>/<project>.json.`,
		Version: version,
		// Errors are reported once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}
	cmd.SetVersionTemplate(`{{printf "depexport version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/depexport/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(
		newExportCmd(opts),
		newShowCmd(opts),
		newDiffCmd(opts),
		newPathCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// init loads the configuration and sets up logging.
func (o *globalOptions) init(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// Execute runs the command line and returns the process exit code.
func Execute(version string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(version)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return getExitCode(err)
	}
	return ExitCodeSuccess
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if errors.Is(err, ErrChangesFound) {
		return ExitCodeChanges
	}
	return ExitCodeError
}
