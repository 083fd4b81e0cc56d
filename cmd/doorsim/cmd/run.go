// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/db47h/doorsim/bench"
	"github.com/db47h/doorsim/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

type runOptions struct {
	*rootOptions
	engine string
	trace  bool
}

func newRunCmd(ro *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: ro}
	c := &cobra.Command{
		Use:   "run script.yaml...",
		Short: "Run stimulus scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, opts, args)
		},
	}
	c.Flags().StringVarP(&opts.engine, "engine", "e", "", "override the script engine (model or circuit; circuit reports every transition one tick later)")
	c.Flags().BoolVarP(&opts.trace, "trace", "t", false, "log state transitions regardless of the log level")
	return c
}

func runScripts(cmd *cobra.Command, opts *runOptions, paths []string) error {
	ctx := cmd.Context()
	l := logger.FromContext(ctx)
	if opts.trace {
		l = l.WithOptions(logger.WithLevel(zapcore.DebugLevel))
	}
	ctx = logger.ToContext(ctx, l)

	var runOpts []bench.Option
	if opts.engine != "" {
		runOpts = append(runOpts, bench.WithEngine(bench.Engine(opts.engine)))
	}

	var failed error
	fail := func(msg, script string, err error) {
		logger.ErrorKV(ctx, msg, "script", script, "error", err)
		if failed == nil {
			failed = err
		}
	}
	for _, p := range paths {
		s, err := bench.Load(p)
		if err != nil {
			fail("load failed", p, err)
			continue
		}
		r, err := bench.Run(ctx, s, runOpts...)
		if r != nil && !opts.quiet {
			printResult(cmd.OutOrStdout(), r)
		}
		if err != nil {
			fail("run failed", s.Name, err)
		}
	}
	return failed
}

func printResult(w io.Writer, r *bench.Result) {
	fmt.Fprintf(w, "# %s (%s, run %s)\n", r.Name, r.Engine, r.ID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tRESET\tCOMMAND\tSTATE\tCODE\tINDICATOR")
	for _, s := range r.Samples {
		fmt.Fprintf(tw, "%d\t%v\t%v\t%v\t%02b\t%03b\n",
			s.Tick, !s.Inputs.ResetN, s.Inputs.Command, s.State, s.Outputs.StateCode, s.Outputs.Indicator)
	}
	tw.Flush()
	fmt.Fprintf(w, "final state: %v\n", r.Final)
}
