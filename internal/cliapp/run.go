package cliapp

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

func newRunCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <graph>",
		Short: "Execute a task graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commonOptions(cmd, args[0])
			code := runGraph(context.Background(), opts, stdout, stderr, true)
			if code != ExitSuccess {
				return &exitError{code: code}
			}
			return nil
		},
	}
	return cmd
}
