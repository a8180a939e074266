package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	depexport "github.com/albertocavalcante/go-depexport"
)

func newPathCmd(g *globalOptions) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "path PROJECT",
		Short: "Print the file export would write for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := depexport.OutputPath(args[0], out.options(cmd, g, rootDir)...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	out.register(cmd)
	cmd.Flag("root-dir").Usage = "root build directory (default: current directory)"
	return cmd
}
