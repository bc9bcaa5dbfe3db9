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

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [session]",
		Short: "Show the remote state for a session",
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
			return runStatus(ctx, runner.Process{}, cfg, sess)
		},
	}
}

func runStatus(ctx context.Context, r runner.Runner, cfg *config.Config, session string) error {
	pterm.Printf("Session:  %s\n", session)
	pterm.Printf("Remote:   %s\n", cfg.Remote)

	out, err := r.RunSSH(ctx, cfg.Remote, remote.CheckWorkDirExists(session))
	if err != nil {
		return err
	}
	printCheck("Work dir", out.Success(), remote.WorkDir(session), "not present")

	out, err = r.RunSSH(ctx, cfg.Remote, remote.CheckFifosExist(session))
	if err != nil {
		return err
	}
	if out.Success() {
		pterm.Warning.Println("FIFOs:    present (a session may be running, or a previous one exited uncleanly)")
	} else {
		pterm.Printf("FIFOs:    none\n")
	}

	out, err = r.RunSSH(ctx, cfg.Remote, remote.CheckClaudeInstalled())
	if err != nil {
		return err
	}
	printCheck("Claude", out.Success(), "installed", "not installed (run `relocal remote install`)")

	return nil
}

func printCheck(label string, ok bool, okMsg, badMsg string) {
	if ok {
		pterm.Printf("%-9s %s\n", label+":", okMsg)
	} else {
		pterm.Warning.Printfln("%-9s %s", label+":", badMsg)
	}
}
