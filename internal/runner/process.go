package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/rsync"
)

// Process is the real Runner, shelling out to ssh and rsync.
type Process struct{}

var _ Runner = Process{}

func (Process) RunSSH(ctx context.Context, remote, command string) (Output, error) {
	log.Debug().Str("remote", remote).Str("command", command).Msg("ssh")
	return capture(ctx, "ssh", remote, command)
}

func (Process) RunRsync(ctx context.Context, params rsync.Params) (Output, error) {
	// Pull runs rsync --delete into the local tree. Refuse when the
	// destination doesn't look like the project we think it is. This guards
	// against wiping an arbitrary directory after a bad repo-root resolution.
	if params.Direction() == rsync.Pull {
		marker := filepath.Join(params.LocalPath(), config.FileName)
		if fi, err := os.Stat(marker); err != nil || !fi.Mode().IsRegular() {
			return Output{}, &CommandError{
				Command: "rsync",
				Message: "refusing to pull into " + params.LocalPath() + ": no " + config.FileName + " found there",
			}
		}
	}
	log.Debug().Strs("args", params.Args()).Msg("rsync")
	return capture(ctx, "rsync", params.Args()...)
}

func (Process) RunLocal(ctx context.Context, program string, args ...string) (Output, error) {
	log.Debug().Str("program", program).Strs("args", args).Msg("local")
	return capture(ctx, program, args...)
}

func capture(ctx context.Context, program string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, &CommandError{
		Command: program + " " + strings.Join(args, " "),
		Message: err.Error(),
	}
}
