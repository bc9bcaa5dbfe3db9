// Package sidecar runs the local mediator between remote hooks and rsync.
//
// The sidecar reads sync requests from the session's remote request FIFO
// over SSH, runs the matching sync, and writes an ack back to the ack FIFO.
// Requests are handled strictly one at a time in arrival order: the remote
// hook script blocks on the ack before it can issue another request, so no
// two requests for one session are ever in flight together and the loop
// needs no locking.
package sidecar

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
	"github.com/antonkrylov/relocal/internal/syncer"
)

// ErrUnknownRequest reports a request line that is not a valid direction.
// The offending line is logged and dropped; no ack is written because no
// well-formed requester can be blocked on one.
var ErrUnknownRequest = errors.New("unknown sync request")

// Sidecar owns the background read loop for one session. Create with Start,
// stop with Shutdown. The FIFOs themselves are created and removed by the
// session lifecycle, never here.
type Sidecar struct {
	stop     chan struct{}
	done     chan struct{}
	sshChild *exec.Cmd
}

// Start spawns the SSH child that reads the request FIFO and the goroutine
// that serves requests from it.
//
// The remote side wraps cat in a loop: a FIFO signals end-of-stream once all
// writers close it, and each hook invocation opens/writes/closes
// independently, so a single cat would serve exactly one request. The loop
// re-opens the FIFO after every EOF so no request is missed.
func Start(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool) (*Sidecar, error) {
	child := exec.CommandContext(ctx, "ssh", cfg.Remote, remote.ReadRequestFifo(session))
	stdout, err := child.StdoutPipe()
	if err != nil {
		return nil, err
	}
	child.Stderr = nil
	if err := child.Start(); err != nil {
		return nil, &runner.CommandError{Command: "ssh (request fifo reader)", Message: err.Error()}
	}

	s := &Sidecar{
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		sshChild: child,
	}

	go func() {
		defer close(s.done)
		serve(ctx, r, cfg, session, repoRoot, verbose, stdout, s.stop)
	}()

	return s, nil
}

// serve reads request lines from requests and handles them strictly one at a
// time in arrival order: each decoded request gets exactly one ack written
// before the next line is read. Malformed lines are logged and dropped
// without an ack. Separated from Start so the full read/ack loop can be
// tested against an in-memory reader with runner.Mock.
func serve(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool, requests io.Reader, stop <-chan struct{}) {
	scanner := bufio.NewScanner(requests)
	for scanner.Scan() {
		select {
		case <-stop:
			return
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		id := uuid.NewString()[:8]
		log.Info().Str("session", session).Str("request", line).Str("id", id).Msg("sidecar request")

		err := HandleRequest(ctx, r, cfg, session, repoRoot, verbose, line)
		if errors.Is(err, ErrUnknownRequest) {
			log.Warn().Str("session", session).Str("request", line).Str("id", id).Msg("sidecar: dropping malformed request")
			continue
		}

		// Write the ack even when shutting down — the remote hook is
		// blocked reading it.
		ack := "ok"
		if err != nil {
			ack = "error:" + sanitizeAck(err.Error())
			log.Warn().Str("session", session).Str("id", id).Err(err).Msg("sidecar request failed")
		}
		if _, ackErr := r.RunSSH(ctx, cfg.Remote, remote.WriteAck(session, ack)); ackErr != nil {
			log.Error().Str("session", session).Str("id", id).Err(ackErr).Msg("sidecar: writing ack failed")
		}
	}
}

// Shutdown signals the loop to stop, kills the SSH child (a reader blocked
// on the FIFO only unblocks when its process dies), and joins the loop
// goroutine. Safe to call more than once.
func (s *Sidecar) Shutdown() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	if s.sshChild != nil && s.sshChild.Process != nil {
		_ = s.sshChild.Process.Kill()
		_ = s.sshChild.Wait()
	}
	<-s.done
}

// HandleRequest serves a single decoded request line. Separated from the
// process/goroutine plumbing so the dispatch logic is testable with
// runner.Mock.
func HandleRequest(ctx context.Context, r runner.Runner, cfg *config.Config, session, repoRoot string, verbose bool, request string) error {
	switch request {
	case "push":
		return syncer.Push(ctx, r, cfg, session, repoRoot, verbose)
	case "pull":
		return syncer.Pull(ctx, r, cfg, session, repoRoot, verbose)
	default:
		return ErrUnknownRequest
	}
}

// sanitizeAck keeps the ack a single line; the protocol terminator must not
// appear inside the message.
func sanitizeAck(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.ReplaceAll(msg, "\r", " ")
}
