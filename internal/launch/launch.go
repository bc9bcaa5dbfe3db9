// Package launch sequences a session's lifecycle: validation, staleness
// check, remote provisioning, initial sync, hook installation, the
// interactive Claude session with its sidecar, and teardown.
package launch

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
	"github.com/antonkrylov/relocal/internal/sidecar"
	"github.com/antonkrylov/relocal/internal/syncer"
)

// StaleSessionError reports FIFOs already present on the remote. This is a
// refusal, not a cleanup: an existing FIFO may belong to a still-running
// session, so the user has to decide via `relocal destroy`.
type StaleSessionError struct {
	Session string
}

func (e *StaleSessionError) Error() string {
	return fmt.Sprintf("stale session %s: FIFOs already exist. Another session may be running. Use `relocal destroy %s` if the previous session crashed.", e.Session, e.Session)
}

// Run drives the full session lifecycle. It returns an error only for
// failures before the interactive session starts; once Claude is running,
// the outcome (clean or dirty) is reported to the user and teardown always
// runs.
func Run(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool, claudeArgs []string) error {
	if err := Setup(ctx, r, cfg, session, repoRoot, verbose); err != nil {
		return err
	}

	log.Debug().Str("session", session).Msg("lifecycle: running")
	sc, err := sidecar.Start(ctx, r, cfg, session, repoRoot, verbose)
	if err != nil {
		return err
	}

	sshErr := r.RunSSHInteractive(ctx, cfg.Remote, remote.StartClaudeSession(session, claudeArgs))

	// Teardown always runs; pipes are removed only after the sidecar is
	// joined so the two owners never overlap.
	sc.Shutdown()
	cleanupErr := Cleanup(ctx, r, cfg, session)

	if sshErr == nil {
		printSummary(session, cfg)
	} else {
		log.Warn().Err(sshErr).Msg("interactive session ended abnormally")
		printDirtyShutdown(session, cfg)
	}

	if cleanupErr != nil {
		// Best effort: report, don't fail the command.
		pterm.Warning.Printfln("FIFO cleanup failed: %v", cleanupErr)
		pterm.Warning.Printfln("You may need to run: relocal destroy %s", session)
	}
	return nil
}

// Setup performs every pre-sidecar step: staleness gate, Claude
// availability, remote provisioning, and the initial push (which also
// installs the hooks). Fatal on any failure; nothing is torn down because
// nothing long-lived has started yet.
func Setup(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool) error {
	log.Debug().Str("session", session).Msg("lifecycle: stale check")
	pterm.Info.Println("Checking for stale session...")
	fifoCheck, err := r.RunSSH(ctx, cfg.Remote, remote.CheckFifosExist(session))
	if err != nil {
		return err
	}
	if fifoCheck.Success() {
		return &StaleSessionError{Session: session}
	}

	pterm.Info.Println("Checking Claude installation...")
	claudeCheck, err := r.RunSSH(ctx, cfg.Remote, remote.CheckClaudeInstalled())
	if err != nil {
		return err
	}
	if !claudeCheck.Success() {
		return fmt.Errorf("remote error (%s): Claude Code is not installed. Run `relocal remote install` first.", cfg.Remote)
	}

	log.Debug().Str("session", session).Msg("lifecycle: provisioning")
	pterm.Info.Println("Creating remote working directory...")
	if err := mustSucceed(r.RunSSH(ctx, cfg.Remote, remote.MkdirWorkDir(session))); err != nil {
		return err
	}

	pterm.Info.Println("Creating FIFOs...")
	if err := mustSucceed(r.RunSSH(ctx, cfg.Remote, remote.CreateFifos(session))); err != nil {
		return err
	}

	// Initial sync + hook installation: Push re-injects hooks after the
	// transfer, exactly as every later hook-triggered push will.
	log.Debug().Str("session", session).Msg("lifecycle: initial sync")
	return syncer.Push(ctx, r, cfg, session, repoRoot, verbose)
}

// Cleanup removes the session's FIFOs.
func Cleanup(ctx context.Context, r runner.Runner, cfg *config.Config, session string) error {
	log.Debug().Str("session", session).Msg("lifecycle: teardown")
	pterm.Info.Println("Cleaning up FIFOs...")
	return mustSucceed(r.RunSSH(ctx, cfg.Remote, remote.RemoveFifos(session)))
}

func mustSucceed(out runner.Output, err error) error {
	if err != nil {
		return err
	}
	if !out.Success() {
		return &runner.CommandError{Command: "ssh", Message: out.Stderr}
	}
	return nil
}

func printSummary(session string, cfg *config.Config) {
	pterm.Println()
	pterm.Success.Printfln("Session ended: %s", session)
	pterm.Printfln("Remote dir:  %s", remote.WorkDir(session))
	pterm.Printfln("Remote host: %s", cfg.Remote)
	pterm.Println()
	pterm.Printfln("To pull latest changes: relocal sync pull %s", session)
	pterm.Printfln("To push local changes:  relocal sync push %s", session)
}

func printDirtyShutdown(session string, cfg *config.Config) {
	pterm.Println()
	pterm.Warning.Printfln("Session interrupted: %s", session)
	pterm.Printfln("Remote dir:  %s", remote.WorkDir(session))
	pterm.Printfln("Remote host: %s", cfg.Remote)
	pterm.Println()
	pterm.Warning.Println("There may be unsynchronized work on the remote.")
	pterm.Printfln("Use `relocal sync pull %s` to fetch remote changes,", session)
	pterm.Printfln("or `relocal sync push %s` to overwrite with local state.", session)
}
