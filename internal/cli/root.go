// Package cli implements the stylecheck command line tool.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-style-review-be/internal/config"
	"ai-style-review-be/internal/pkg/logger"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	NoColor bool
	Verbose bool
}

// NewRootCmd wires every subcommand. Configuration comes from the same
// environment variables as the server.
func NewRootCmd() *cobra.Command {
	opts := &RootOptions{}
	root := &cobra.Command{
		Use:   "stylecheck",
		Short: "Check writing style and suggest rewrites",
		Long: "stylecheck segments documents into sentences, runs the configured style rules " +
			"and resolves rewrite suggestions. It also manages the reference example store.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.NoColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newSeedCmd(opts),
		newRefsCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// Execute runs the root command; ctx ends long-running subcommands.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *RootOptions) logger() logger.ILogger {
	return logger.NewConsoleLogger(o.Verbose)
}

// loadConfig is swapped in tests.
var loadConfig = config.Load
