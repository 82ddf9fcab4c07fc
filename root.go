package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vuvietnguyenit/cuda-devquery/cuda"
	"github.com/vuvietnguyenit/cuda-devquery/report"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cuda-devquery",
		Short:         "Print static capabilities of every visible CUDA device",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(); err != nil {
				return err
			}
			return initLogger(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return appRun(cmd.OutOrStdout())
		},
	}

	addFlags(rootCmd.PersistentFlags())

	return rootCmd
}

func Execute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDriver() (cuda.Driver, error) {
	if FlagFixture == "" {
		return cuda.New(), nil
	}
	slog.Debug("using simulated driver", "fixture", FlagFixture)
	return cuda.LoadFixture(FlagFixture)
}

func appRun(out io.Writer) error {
	d, err := newDriver()
	if err != nil {
		return err
	}
	r := report.NewReporter(d, out, report.Options{
		Table: FlagTable,
		Human: FlagHuman,
	})
	return r.Run()
}
