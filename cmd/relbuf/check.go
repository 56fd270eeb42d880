package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-relbuf/pkg/logging"
	"github.com/dd0wney/cluso-relbuf/pkg/replay"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <script.yaml>...",
		Short: "Validate scripts without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				script, err := replay.LoadFile(path)
				if err != nil {
					rootOpts.logger.Error("script rejected", logging.Path(path), logging.Error(err))
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps)\n", path, len(script.Steps))
			}
			return nil
		},
	}
}
