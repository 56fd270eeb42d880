package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-relbuf/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string

	logger logging.Logger
}

// NewRootCommand creates the relbuf root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "relbuf",
		Short: "Inspect added-relation buffer behaviour",
		Long: `relbuf drives an added-relations buffer from a YAML script of
transaction events (adds, removals and reads) and reports what every step
observed, including when pending removals were compacted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.LookupLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			opts.logger = logging.NewJSONLogger(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	defaultLevel := strings.ToLower(logging.EnvLevel(logging.WarnLevel).String())
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", defaultLevel, "log level (debug|info|warn|error)")

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}
