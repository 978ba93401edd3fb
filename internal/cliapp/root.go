package cliapp

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the taskcore command tree with stdout/stderr wired
// to the given writers, so tests can exercise it without touching the real
// process streams.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskcore",
		Short:         "Bounded-concurrency DAG task runner",
		Long:          "taskcore loads a JSON task graph and runs it across a fixed worker pool, honoring dependency order.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().Int("workers", 4, "maximum number of tasks to run concurrently")
	root.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	root.PersistentFlags().String("hooks-dir", "", "directory to scan for hook manifests")
	root.PersistentFlags().String("config", "", "config file (default .taskcore.yaml)")

	cobra.OnInitialize(func() { initConfig(root) })

	root.AddCommand(newRunCommand(stdout, stderr))
	root.AddCommand(newValidateCommand(stdout, stderr))
	root.AddCommand(newPlanCommand(stdout, stderr))

	return root
}

func initConfig(root *cobra.Command) {
	if cfgFile, _ := root.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".taskcore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TASKCORE")
	viper.AutomaticEnv()

	_ = viper.BindPFlag("workers", root.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("hooks-dir", root.PersistentFlags().Lookup("hooks-dir"))

	// No config file is the common case; defaults and flags still apply.
	_ = viper.ReadInConfig()
}

func commonOptions(cmd *cobra.Command, graphPath string) runOptions {
	workers := viper.GetInt("workers")
	if v, err := cmd.Flags().GetInt("workers"); err == nil && cmd.Flags().Changed("workers") {
		workers = v
	}
	verbose := viper.GetBool("verbose")
	if v, err := cmd.Flags().GetBool("verbose"); err == nil && cmd.Flags().Changed("verbose") {
		verbose = v
	}
	hooksDir := viper.GetString("hooks-dir")
	if v, err := cmd.Flags().GetString("hooks-dir"); err == nil && cmd.Flags().Changed("hooks-dir") {
		hooksDir = v
	}
	return runOptions{
		GraphPath: graphPath,
		Workers:   workers,
		Verbose:   verbose,
		HooksDir:  hooksDir,
	}
}

// Execute runs the command tree with args (excluding argv[0]) and returns the
// process exit code. Subcommands report their result by returning an
// *exitError rather than calling os.Exit, so this function stays the single place that decides
// the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if ec, ok := err.(*exitError); ok {
			return ec.code
		}
		io.WriteString(stderr, err.Error()+"\n")
		return ExitArgOrSystemError
	}
	return ExitSuccess
}

// exitError lets a RunE function communicate a specific exit code back to
// Execute without calling os.Exit itself, keeping subcommands testable.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }
