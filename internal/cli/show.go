package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/graph"
	"github.com/albertocavalcante/go-depexport/snapshot"
)

// Output formats of the show command.
const (
	formatText  = "text"
	formatDOT   = "dot"
	formatJSON  = "json"
	formatTable = "table"
)

func newShowCmd(g *globalOptions) *cobra.Command {
	var (
		project string
		format  string
		why     string
	)

	cmd := &cobra.Command{
		Use:   "show SNAPSHOT",
		Short: "Print a project's merged dependency graph without writing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			p, err := pickProject(ws, project)
			if err != nil {
				return err
			}

			result, err := depexport.Analyze(p, depexport.WithRootDir(ws.Root), depexport.WithLogger(g.logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if why != "" {
				return printWhy(w, result.Graph, why)
			}
			if err := printGraph(w, result.Graph, format); err != nil {
				return err
			}
			for _, skipped := range result.Skipped() {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped configuration %s: %v\n", skipped.Name, skipped.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project to show (required when the snapshot holds several)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, dot, json, table")
	cmd.Flags().StringVar(&why, "why", "", "print the dependency chains leading to group:artifact")
	return cmd
}

// pickProject returns the named project, or the only project when name is
// empty.
func pickProject(ws *snapshot.Workspace, name string) (depexport.Project, error) {
	if name == "" {
		if len(ws.Projects) == 1 {
			return ws.Projects[0], nil
		}
		return nil, fmt.Errorf("snapshot holds %d projects, choose one with --project (have %v)", len(ws.Projects), projectNames(ws))
	}
	selected, err := selectProjects(ws, []string{name})
	if err != nil {
		return nil, err
	}
	return selected[0], nil
}

func printGraph(w io.Writer, g *graph.Graph, format string) error {
	switch format {
	case formatText:
		_, err := io.WriteString(w, g.ToText())
		return err
	case formatDOT:
		_, err := io.WriteString(w, g.ToDOT())
		return err
	case formatJSON:
		data, err := g.ToJSON("  ")
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatTable:
		renderGraphTable(w, g)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, dot, json or table)", format)
	}
}

func renderGraphTable(w io.Writer, g *graph.Graph) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"DEPENDENCY", "VERSION", "SCOPES", "STATUS"})

	for _, e := range g.ToList() {
		status := "resolved"
		if e.Unresolved {
			status = "unresolved"
		}
		t.AppendRow(table.Row{
			strings.Repeat("  ", e.Depth-1) + e.Coordinate.Module(),
			e.Coordinate.Version,
			strings.Join(e.Scopes, ", "),
			status,
		})
	}

	t.AppendFooter(table.Row{g.Root.String(), "", "", fmt.Sprintf("%d nodes", t.Length())})
	t.Render()
}

func printWhy(w io.Writer, g *graph.Graph, module string) error {
	chains, err := g.Why(module)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Dependency chains to %s:\n", module)
	for i, chain := range chains {
		fmt.Fprintf(w, "  %d. %s -> %s\n", i+1, g.Root, chain)
	}
	return nil
}
