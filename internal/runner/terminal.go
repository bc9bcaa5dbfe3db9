package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// RunSSHInteractive runs `ssh -t remote command` attached to the local
// terminal. When stdin is a terminal the child runs under a local PTY with
// stdin in raw mode, so interrupts and control sequences are forwarded to
// the remote session by the terminal layer rather than handled here.
// Returns nil only when the remote command exited cleanly.
func (Process) RunSSHInteractive(ctx context.Context, remote, command string) error {
	cmd := exec.CommandContext(ctx, "ssh", "-t", remote, command)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Non-interactive contexts (tests, pipes): inherit stdio directly.
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return wrapInteractiveErr(cmd.Run())
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &CommandError{Command: "ssh -t " + remote, Message: err.Error()}
	}
	defer ptmx.Close()

	// Keep the child PTY sized like the local terminal.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winch <- syscall.SIGWINCH

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return &CommandError{Command: "ssh -t " + remote, Message: err.Error()}
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()
	// The PTY read side surfaces EIO once the child exits; that's the normal
	// end of an interactive session, not a failure.
	_, _ = io.Copy(os.Stdout, ptmx)

	return wrapInteractiveErr(cmd.Wait())
}

func wrapInteractiveErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: "ssh", Message: "remote session exited with status " + exitErr.Error()}
	}
	return &CommandError{Command: "ssh", Message: err.Error()}
}
