package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
)

func newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy [session]",
		Short: "Remove a session's remote working copy and FIFOs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			repoRoot, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sess, err := resolveSession(args, repoRoot)
			if err != nil {
				return err
			}
			confirmed, err := pterm.DefaultInteractiveConfirm.
				WithDefaultValue(false).
				Show("Remove " + remote.WorkDir(sess) + " on " + cfg.Remote + "? The local copy stays untouched.")
			if err != nil {
				return err
			}
			if !confirmed {
				pterm.Info.Println("Aborted.")
				return nil
			}
			return runDestroy(ctx, runner.Process{}, cfg, sess)
		},
	}
}

func runDestroy(ctx context.Context, r runner.Runner, cfg *config.Config, session string) error {
	if _, err := r.RunSSH(ctx, cfg.Remote, remote.RemoveWorkDir(session)); err != nil {
		return err
	}
	if _, err := r.RunSSH(ctx, cfg.Remote, remote.RemoveFifos(session)); err != nil {
		return err
	}
	pterm.Success.Printfln("Session %q destroyed.", session)
	return nil
}
