package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/antonkrylov/relocal/internal/rsync"
)

// InvocationKind distinguishes recorded Mock calls.
type InvocationKind int

const (
	InvSSH InvocationKind = iota
	InvSSHInteractive
	InvRsync
	InvLocal
)

// Invocation is one recorded call against the Mock.
type Invocation struct {
	Kind    InvocationKind
	Remote  string   // SSH / SSHInteractive
	Command string   // SSH / SSHInteractive
	Args    []string // Rsync / Local
	Program string   // Local
}

// Response is a pre-configured result for a single Mock call.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err, when non-empty, makes the call return a CommandError instead of
	// an Output.
	Err string
}

// RespondOk returns a successful response with the given stdout.
func RespondOk(stdout string) Response { return Response{Stdout: stdout} }

// RespondFail returns a response with exit code 1 and the given stderr.
func RespondFail(stderr string) Response { return Response{Stderr: stderr, ExitCode: 1} }

// RespondErr returns a response that surfaces as a CommandError.
func RespondErr(message string) Response { return Response{Err: message} }

// Mock is a recording Runner for tests. Queue expected responses with
// AddResponse; each call pops the next response and records the invocation.
// Safe for use from multiple goroutines (the sidecar runs its loop on one).
// Panics when called with no responses remaining, so a missing expectation
// fails loudly at the exact call.
type Mock struct {
	mu          sync.Mutex
	invocations []Invocation
	responses   []Response
}

var _ Runner = (*Mock)(nil)

func NewMock() *Mock { return &Mock{} }

func (m *Mock) AddResponse(r Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, r)
}

// Invocations returns a copy of everything recorded so far.
func (m *Mock) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Invocation, len(m.invocations))
	copy(out, m.invocations)
	return out
}

func (m *Mock) next(inv Invocation) Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = append(m.invocations, inv)
	if len(m.responses) == 0 {
		panic(fmt.Sprintf("runner.Mock: no response queued for %+v", inv))
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	return r
}

func (r Response) output() (Output, error) {
	if r.Err != "" {
		return Output{}, &CommandError{Command: "mock", Message: r.Err}
	}
	return Output{Stdout: r.Stdout, Stderr: r.Stderr, ExitCode: r.ExitCode}, nil
}

func (m *Mock) RunSSH(_ context.Context, remote, command string) (Output, error) {
	return m.next(Invocation{Kind: InvSSH, Remote: remote, Command: command}).output()
}

func (m *Mock) RunSSHInteractive(_ context.Context, remote, command string) error {
	r := m.next(Invocation{Kind: InvSSHInteractive, Remote: remote, Command: command})
	if r.Err != "" {
		return &CommandError{Command: "mock", Message: r.Err}
	}
	if r.ExitCode != 0 {
		return &CommandError{Command: "mock", Message: "remote session exited non-zero"}
	}
	return nil
}

func (m *Mock) RunRsync(_ context.Context, params rsync.Params) (Output, error) {
	return m.next(Invocation{Kind: InvRsync, Args: append([]string(nil), params.Args()...)}).output()
}

func (m *Mock) RunLocal(_ context.Context, program string, args ...string) (Output, error) {
	return m.next(Invocation{Kind: InvLocal, Program: program, Args: append([]string(nil), args...)}).output()
}
