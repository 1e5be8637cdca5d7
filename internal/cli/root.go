// Package cli implements reviewctl, a terminal front end to the same review pipeline
// the HTTP relay serves.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"code_reviewer/internal/domain"
	"code_reviewer/internal/shared"
	"code_reviewer/internal/wiring"
)

const version = "0.1.0"

// ReviewerFactory builds the reviewer for one invocation and a func releasing it.
type ReviewerFactory func(ctx context.Context, cfg shared.Config) (domain.Reviewer, func() error, error)

func defaultFactory(ctx context.Context, cfg shared.Config) (domain.Reviewer, func() error, error) {
	agg, closeFn, err := wiring.NewAggregator(ctx, cfg)
	if err != nil {
		return nil, closeFn, err
	}
	return agg, closeFn, nil
}

// NewRootCommand wires the command tree. stdin and stdout are injectable for tests.
func NewRootCommand(factory ReviewerFactory, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Review source files with both AI providers",
		Long:          "reviewctl sends each file to the primary and secondary model and prints the combined review.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := zerolog.WarnLevel
			if verbose {
				lvl = zerolog.DebugLevel
			}
			// stdout carries the reviews, so logs go to stderr
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log provider calls to stderr")
	root.SetOut(stdout)
	root.SetIn(stdin)

	root.AddCommand(newReviewCommand(factory))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print reviewctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reviewctl version %s\n", version)
		},
	})
	return root
}

// Run executes the CLI against the process streams and returns the exit code.
func Run() int {
	root := NewRootCommand(defaultFactory, os.Stdin, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
