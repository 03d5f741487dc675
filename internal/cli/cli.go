// Package cli implements the meshctl command-line interface: a thin
// inspection wrapper over the node and blueprint packages for
// validating, describing, and generating mesh trees stored in the
// canonical text form. The core library defines no CLI surface of its
// own.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// newLogger creates the command logger, filtering at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func rootLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return newLogger(os.Stderr, level)
}

// Execute runs the meshctl root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "meshctl",
		Short:         "Inspect and validate mesh trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a meshctl TOML config file")

	root.AddCommand(newVerifyCmd())
	root.AddCommand(newDescribeCmd())
	root.AddCommand(newExampleCmd())

	return root.Execute()
}
