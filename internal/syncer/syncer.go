// Package syncer implements the push and pull sync operations shared by the
// manual `relocal sync` commands and the sidecar's hook-triggered syncs.
// Both paths run through the same functions, so behavior is identical
// whether a sync was requested by the user or by a remote hook.
package syncer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/hooks"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/rsync"
	"github.com/antonkrylov/relocal/internal/runner"
)

// TransferError reports a non-zero rsync exit.
type TransferError struct {
	Direction rsync.Direction
	Stderr    string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("rsync %s failed: %s", e.Direction, strings.TrimSpace(e.Stderr))
}

// FsckError reports a failed pre-pull integrity check. Pull is refused so a
// corrupted or emptied remote cannot propagate deletions onto the local copy.
type FsckError struct {
	Session string
	Stderr  string
}

func (e *FsckError) Error() string {
	return fmt.Sprintf("refusing to pull: remote session %s failed git fsck (not a git repo or repository is corrupted): %s",
		e.Session, strings.TrimSpace(e.Stderr))
}

// Push mirrors local -> remote, then re-injects hooks into the remote
// settings.json, since the transfer may have just overwritten it with the
// local copy.
func Push(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool) error {
	log.Info().Str("session", session).Msg("pushing to remote")
	params := rsync.BuildArgs(cfg, rsync.Push, session, repoRoot, verbose)
	out, err := r.RunRsync(ctx, params)
	if err != nil {
		return err
	}
	if !out.Success() {
		return &TransferError{Direction: rsync.Push, Stderr: out.Stderr}
	}
	if err := ReinjectHooks(ctx, r, cfg, session); err != nil {
		return err
	}
	log.Info().Str("session", session).Msg("push complete")
	return nil
}

// Pull mirrors remote -> local. The integrity gate runs first; pull is
// refused when it fails.
func Pull(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool) error {
	log.Info().Str("session", session).Msg("pulling from remote")
	fsck, err := r.RunSSH(ctx, cfg.Remote, remote.GitFsck(session))
	if err != nil {
		return err
	}
	if !fsck.Success() {
		return &FsckError{Session: session, Stderr: fsck.Stderr}
	}

	params := rsync.BuildArgs(cfg, rsync.Pull, session, repoRoot, verbose)
	out, err := r.RunRsync(ctx, params)
	if err != nil {
		return err
	}
	if !out.Success() {
		return &TransferError{Direction: rsync.Pull, Stderr: out.Stderr}
	}
	log.Info().Str("session", session).Msg("pull complete")
	return nil
}

// ReinjectHooks reads the remote settings.json (which may not exist yet),
// merges relocal's hook entries, and writes the result back. The merge works
// on a snapshot read immediately before the write — never on incremental
// patches — which is what keeps the write idempotent even though the
// settings file is both the input and the output of this mutation.
func ReinjectHooks(ctx context.Context, r runner.Runner, cfg *config.Config, session string) error {
	log.Debug().Str("session", session).Msg("re-injecting hooks")

	read, err := r.RunSSH(ctx, cfg.Remote, remote.ReadSettings(session))
	if err != nil {
		return err
	}
	var raw []byte
	if read.Success() {
		raw = []byte(read.Stdout)
	}

	merged, err := hooks.MergeJSON(raw, session)
	if err != nil {
		return fmt.Errorf("merge hooks: %w", err)
	}

	write, err := r.RunSSH(ctx, cfg.Remote, remote.WriteSettings(session, string(merged)))
	if err != nil {
		return err
	}
	if !write.Success() {
		return &runner.CommandError{Command: "write settings.json", Message: strings.TrimSpace(write.Stderr)}
	}
	return nil
}
