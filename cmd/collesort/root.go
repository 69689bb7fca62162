package main

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/collesort"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "collesort",
		Short:         "Balance player strengths into equal-size teams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newSortCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// logger returns a text logger writing to the command's stderr.
func (o *rootOptions) logger(cmd *cobra.Command) (*collesort.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	return collesort.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})), nil
}
