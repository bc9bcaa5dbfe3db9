package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/runner"
	"github.com/antonkrylov/relocal/internal/syncer"
)

func newSyncCmd(verbosity *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manually sync files between local and remote",
	}
	cmd.AddCommand(newSyncPushCmd(verbosity))
	cmd.AddCommand(newSyncPullCmd(verbosity))
	return cmd
}

func newSyncPushCmd(verbosity *int) *cobra.Command {
	return &cobra.Command{
		Use:   "push [session-name]",
		Short: "Push local files to the remote",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			root, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			name, err := resolveSession(args, root)
			if err != nil {
				return err
			}
			if err := syncer.Push(ctx, runner.Process{}, cfg, name, root, *verbosity > 0); err != nil {
				return err
			}
			pterm.Success.Println("Push complete.")
			return nil
		},
	}
}

func newSyncPullCmd(verbosity *int) *cobra.Command {
	return &cobra.Command{
		Use:   "pull [session-name]",
		Short: "Pull remote files to local",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			root, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			name, err := resolveSession(args, root)
			if err != nil {
				return err
			}
			if err := syncer.Pull(ctx, runner.Process{}, cfg, name, root, *verbosity > 0); err != nil {
				return err
			}
			pterm.Success.Println("Pull complete.")
			return nil
		},
	}
}
