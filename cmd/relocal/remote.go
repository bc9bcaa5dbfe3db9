package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/install"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
)

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage the remote environment",
	}
	cmd.AddCommand(newRemoteInstallCmd())
	cmd.AddCommand(newRemoteNukeCmd())
	return cmd
}

func newRemoteInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the full environment on the remote host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			_, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := install.Run(ctx, runner.Process{}, cfg); err != nil {
				return err
			}
			pterm.Success.Println("Remote installation complete.")
			return nil
		},
	}
}

func newRemoteNukeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nuke",
		Short: "Delete everything under ~/relocal/ on the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			_, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			confirmed, err := pterm.DefaultInteractiveConfirm.
				WithDefaultValue(false).
				Show("Delete ALL relocal data on " + cfg.Remote + "? This removes ~/relocal/ entirely (all sessions, FIFOs, and the hook script).")
			if err != nil {
				return err
			}
			if !confirmed {
				pterm.Info.Println("Aborted.")
				return nil
			}
			return runNuke(ctx, runner.Process{}, cfg)
		},
	}
}

// runNuke removes the entire remote base directory. Separated from the
// confirmation prompt so it can be tested with runner.Mock.
func runNuke(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	if _, err := r.RunSSH(ctx, cfg.Remote, remote.RemoveBaseDir()); err != nil {
		return err
	}
	pterm.Success.Println("Done. Run `relocal remote install` to set up again.")
	return nil
}
