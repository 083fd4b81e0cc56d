// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/db47h/doorsim/internal/logger"
	"github.com/db47h/doorsim/internal/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	quiet    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "doorsim",
		Short: "Automatic door controller simulator",
		Long: `Simulate the automatic door controller.

Stimulus scripts describe the reset line and the commands applied on every
clock tick. Each run prints the controller outputs after every tick and fails
when the final state differs from the one the script expects.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			lvl, ok := logger.ParseLogLevel(opts.logLevel)
			if !ok {
				return errors.Errorf("invalid log level %q", opts.logLevel)
			}
			logger.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the per-tick table")

	root.AddCommand(newRunCmd(opts))
	version.AttachCobraVersionCommand(root)
	return root
}

// Execute runs the doorsim CLI and exits with a non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
