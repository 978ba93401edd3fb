package cliapp

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newValidateCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <graph>",
		Short: "Check a task graph file for schema and structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := openGraph(args[0])
			if err != nil {
				fmt.Fprintln(stderr, describeLoadError(err))
				code := ExitValidationError
				if isArgError(err) {
					code = ExitArgOrSystemError
				}
				return &exitError{code: code}
			}
			fmt.Fprintf(stdout, "ok: %d task(s), run %s\n", len(graph.Tasks), graph.RunID)
			return nil
		},
	}
	return cmd
}
