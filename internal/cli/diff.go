package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	depexport "github.com/albertocavalcante/go-depexport"
)

func newDiffCmd(_ *globalOptions) *cobra.Command {
	var (
		format   string
		exitCode bool
	)

	cmd := &cobra.Command{
		Use:   "diff OLD.json NEW.json",
		Short: "Compare two exported dependency graphs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldGraph, err := depexport.ReadExport(args[0])
			if err != nil {
				return err
			}
			newGraph, err := depexport.ReadExport(args[1])
			if err != nil {
				return err
			}

			diff := depexport.DiffExports(oldGraph, newGraph)

			w := cmd.OutOrStdout()
			switch format {
			case formatTable:
				renderDiffTable(w, diff)
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(diff); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}

			if exitCode && !diff.IsEmpty() {
				return fmt.Errorf("%w: %d changes", ErrChangesFound, diff.TotalChanges())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 2 when the exports differ")
	return cmd
}

func renderDiffTable(w io.Writer, diff *depexport.ExportDiff) {
	if diff.IsEmpty() {
		fmt.Fprintln(w, "No changes.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"CHANGE", "MODULE", "OLD", "NEW"})

	for _, c := range diff.Added {
		t.AppendRow(table.Row{"added", c.Module, "", c.Version})
	}
	for _, c := range diff.Removed {
		t.AppendRow(table.Row{"removed", c.Module, c.Version, ""})
	}
	for _, u := range diff.Upgraded {
		t.AppendRow(table.Row{"upgraded", u.Module, u.OldVersion, u.NewVersion})
	}
	for _, u := range diff.Downgraded {
		t.AppendRow(table.Row{"downgraded", u.Module, u.OldVersion, u.NewVersion})
	}
	for _, s := range diff.ScopesChanged {
		t.AppendRow(table.Row{
			"scopes",
			s.Module + ":" + s.Version,
			strings.Join(s.OldScopes, ", "),
			strings.Join(s.NewScopes, ", "),
		})
	}

	t.AppendFooter(table.Row{"", "", "total", diff.TotalChanges()})
	t.Render()
}
