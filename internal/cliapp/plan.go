package cliapp

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

func newPlanCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <graph>",
		Short: "Print the resolved task graph without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commonOptions(cmd, args[0])
			code := runGraph(context.Background(), opts, stdout, stderr, false)
			if code != ExitSuccess {
				return &exitError{code: code}
			}
			return nil
		},
	}
	return cmd
}
