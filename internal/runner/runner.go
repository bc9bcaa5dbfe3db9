// Package runner abstracts execution of external commands (ssh, rsync,
// local processes).
//
// All orchestration code depends on the Runner interface rather than
// exec.Command directly, so command sequences can be unit-tested with the
// recording Mock without real SSH or rsync.
package runner

import (
	"context"
	"fmt"

	"github.com/antonkrylov/relocal/internal/rsync"
)

// Output is what a non-interactive command produced.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited zero.
func (o Output) Success() bool { return o.ExitCode == 0 }

// CommandError reports a command that could not be run or that failed in a
// way the caller treats as fatal.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s: %s", e.Command, e.Message)
}

// Runner executes external commands. Each method is a distinct invocation
// pattern:
//
//   - RunSSH: non-interactive `ssh user@host "command"`, captures output.
//   - RunSSHInteractive: `ssh -t user@host "command"` attached to the local
//     terminal; returns nil only on a clean remote exit.
//   - RunRsync: runs rsync with a built argument list, captures output.
//   - RunLocal: runs an arbitrary local program, captures output.
//
// A non-zero remote/command exit is reported through Output.ExitCode, not as
// an error; errors mean the command could not be executed at all.
type Runner interface {
	RunSSH(ctx context.Context, remote, command string) (Output, error)
	RunSSHInteractive(ctx context.Context, remote, command string) error
	RunRsync(ctx context.Context, params rsync.Params) (Output, error)
	RunLocal(ctx context.Context, program string, args ...string) (Output, error)
}
