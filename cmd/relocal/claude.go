package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/launch"
	"github.com/antonkrylov/relocal/internal/runner"
)

func newClaudeCmd(verbosity *int) *cobra.Command {
	return &cobra.Command{
		Use:   "claude [session-name] [-- claude-args...]",
		Short: "Sync and launch an interactive Claude session on the remote",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Everything after -- is passed through to the remote claude
			// invocation untouched.
			positional := args
			var claudeArgs []string
			if at := cmd.Flags().ArgsLenAtDash(); at >= 0 {
				positional = args[:at]
				claudeArgs = args[at:]
			}
			if len(positional) > 1 {
				return fmt.Errorf("at most one session name expected, got %d arguments", len(positional))
			}

			// Interrupts are forwarded to the remote session by the terminal
			// layer; SIGTERM still cancels the whole lifecycle.
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer cancel()

			root, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			name, err := resolveSession(positional, root)
			if err != nil {
				return err
			}
			return launch.Run(ctx, runner.Process{}, cfg, name, root, *verbosity > 0, claudeArgs)
		},
	}
}
