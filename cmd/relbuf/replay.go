package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-relbuf/pkg/metrics"
	"github.com/dd0wney/cluso-relbuf/pkg/replay"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Metrics bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Run a script against a fresh buffer and print the trace",
		Long: `Run a script against a fresh buffer and print the trace.

Example:
  relbuf replay testdata/threshold.yaml
  relbuf replay --metrics --log-level debug session.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics after the trace")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions, path string) error {
	script, err := replay.LoadFile(path)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	if opts.Metrics {
		reg = metrics.NewRegistry()
	}

	trace, err := replay.NewRunner(opts.logger, reg).Run(cmd.Context(), script)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if err := trace.Render(out); err != nil {
		return err
	}
	if reg != nil {
		fmt.Fprintln(out)
		return reg.WriteText(out)
	}
	return nil
}
