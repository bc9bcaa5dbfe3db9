// Package install provisions the remote environment.
//
// Every step is idempotent: already-installed tooling is detected and
// skipped, so `relocal remote install` is safe to re-run at any time.
package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/hooks"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
)

// baselinePackages are always installed; config.AptPackages adds to them.
var baselinePackages = []string{"build-essential", "nodejs", "npm"}

// Run performs all installation steps in order.
func Run(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	if err := AptPackages(ctx, r, cfg); err != nil {
		return err
	}
	if err := Rust(ctx, r, cfg); err != nil {
		return err
	}
	if err := ClaudeCode(ctx, r, cfg); err != nil {
		return err
	}
	if err := ClaudeAuth(ctx, r, cfg); err != nil {
		return err
	}
	if err := HookScript(ctx, r, cfg); err != nil {
		return err
	}
	if err := Dirs(ctx, r, cfg); err != nil {
		return err
	}
	log.Info().Msg("remote installation complete")
	return nil
}

// AptPackages installs the baseline toolchain plus configured extras.
func AptPackages(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("installing APT packages")
	packages := append(append([]string(nil), baselinePackages...), cfg.AptPackages...)
	cmd := "sudo apt-get update && sudo apt-get install -y " + strings.Join(packages, " ")
	_, err := r.RunSSH(ctx, cfg.Remote, cmd)
	return err
}

// Rust installs rustup unless it is already present.
func Rust(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("checking for Rust")
	check, err := r.RunSSH(ctx, cfg.Remote, "command -v rustup")
	if err != nil {
		return err
	}
	if check.Success() {
		log.Info().Msg("rustup already installed, skipping")
		return nil
	}
	log.Info().Msg("installing Rust via rustup")
	_, err = r.RunSSH(ctx, cfg.Remote, "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y")
	return err
}

// ClaudeCode installs the claude CLI via npm unless already on PATH.
func ClaudeCode(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("checking for Claude Code")
	check, err := r.RunSSH(ctx, cfg.Remote, remote.CheckClaudeInstalled())
	if err != nil {
		return err
	}
	if check.Success() {
		log.Info().Msg("Claude Code already installed, skipping")
		return nil
	}
	log.Info().Msg("installing Claude Code via npm")
	_, err = r.RunSSH(ctx, cfg.Remote, "npm install -g @anthropic-ai/claude-code")
	return err
}

// ClaudeAuth runs an interactive `claude login` when the remote is not
// authenticated yet. This is the only interactive step.
func ClaudeAuth(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("checking Claude authentication")
	check, err := r.RunSSH(ctx, cfg.Remote, "claude auth status")
	if err != nil {
		return err
	}
	if check.Success() {
		log.Info().Msg("Claude already authenticated, skipping")
		return nil
	}
	log.Info().Msg("running claude login (interactive)")
	return r.RunSSHInteractive(ctx, cfg.Remote, "claude login")
}

// HookScript writes relocal-hook.sh to the remote and marks it executable.
func HookScript(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("installing hook script")
	if _, err := r.RunSSH(ctx, cfg.Remote, remote.MkdirBinDir()); err != nil {
		return err
	}
	write := fmt.Sprintf("cat > %s << 'RELOCAL_HOOK_EOF'\n%s\nRELOCAL_HOOK_EOF\nchmod +x %s",
		remote.HookScriptPath(), hooks.Script, remote.HookScriptPath())
	_, err := r.RunSSH(ctx, cfg.Remote, write)
	return err
}

// Dirs creates the FIFO and log directories.
func Dirs(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	log.Info().Msg("creating FIFO directory")
	if _, err := r.RunSSH(ctx, cfg.Remote, remote.MkdirFifosDir()); err != nil {
		return err
	}
	log.Info().Msg("creating logs directory")
	_, err := r.RunSSH(ctx, cfg.Remote, remote.MkdirLogsDir())
	return err
}
