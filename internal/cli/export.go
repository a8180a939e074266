package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/snapshot"
)

// outputFlags override the output location settings of the config file.
type outputFlags struct {
	rootDir    string
	outputBase string
	namespace  string
	kind       string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rootDir, "root-dir", "", "root build directory (default: the snapshot's root)")
	cmd.Flags().StringVar(&f.outputBase, "output-base", "", "base directory of the output tree (default: home directory)")
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "tool namespace directory")
	cmd.Flags().StringVar(&f.kind, "kind", "", "export kind directory")
}

// options returns exporter options: config values first, then any flag set
// on the command line, then the root directory.
func (f *outputFlags) options(cmd *cobra.Command, g *globalOptions, rootDir string) []depexport.Option {
	opts := g.cfg.Options()
	if cmd.Flags().Changed("output-base") {
		opts = append(opts, depexport.WithOutputBase(f.outputBase))
	}
	if cmd.Flags().Changed("namespace") {
		opts = append(opts, depexport.WithNamespace(f.namespace))
	}
	if cmd.Flags().Changed("kind") {
		opts = append(opts, depexport.WithKind(f.kind))
	}
	if f.rootDir != "" {
		rootDir = f.rootDir
	}
	return append(opts,
		depexport.WithRootDir(rootDir),
		depexport.WithLogger(g.logger),
	)
}

func newExportCmd(g *globalOptions) *cobra.Command {
	var (
		out         outputFlags
		projects    []string
		indent      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export SNAPSHOT...",
		Short: "Write one dependency graph file per project",
		Long: `Export reads each snapshot and writes the merged dependency graph of every
project to <project>.json. Configurations that cannot be resolved are skipped
with a warning. A project that fails to write does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				ws, err := snapshot.Load(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}

				selected, err := selectProjects(ws, projects)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}

				opts := out.options(cmd, g, ws.Root)
				if cmd.Flags().Changed("indent") {
					opts = append(opts, depexport.WithIndent(indent))
				}
				if cmd.Flags().Changed("concurrency") {
					opts = append(opts, depexport.WithConcurrency(concurrency))
				}

				results, err := depexport.ExportAll(selected, opts...)
				for _, r := range results {
					if r != nil {
						fmt.Fprintln(cmd.OutOrStdout(), r.Path)
					}
				}
				if err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}

	out.register(cmd)
	cmd.Flags().StringSliceVarP(&projects, "project", "p", nil, "export only the named projects (repeatable)")
	cmd.Flags().StringVar(&indent, "indent", "", "indent JSON output with this string")
	cmd.Flags().IntVar(&concurrency, "concurrency", depexport.DefaultConcurrency, "projects exported at once")
	return cmd
}

// selectProjects returns the workspace projects named in names, or all of
// them when names is empty.
func selectProjects(ws *snapshot.Workspace, names []string) ([]depexport.Project, error) {
	if len(names) == 0 {
		return ws.Projects, nil
	}
	var selected []depexport.Project
	for _, name := range names {
		p := ws.Project(name)
		if p == nil {
			return nil, fmt.Errorf("project %q not found (have %v)", name, projectNames(ws))
		}
		selected = append(selected, p)
	}
	return selected, nil
}

func projectNames(ws *snapshot.Workspace) []string {
	names := make([]string, 0, len(ws.Projects))
	for _, p := range ws.Projects {
		names = append(names, p.Coordinate().Artifact)
	}
	slices.Sort(names)
	return names
}
