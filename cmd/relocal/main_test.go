package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/runner"
)

func TestLogLevel(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, c := range cases {
		if got := logLevel(c.verbosity); got != c.want {
			t.Errorf("logLevel(%d) = %v, want %v", c.verbosity, got, c.want)
		}
	}
}

func TestParseCommaList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" ,, ", nil},
		{"target/", []string{"target/"}},
		{"target/, *.log ,node_modules", []string{"target/", "*.log", "node_modules"}},
	}
	for _, c := range cases {
		got := parseCommaList(c.in)
		if len(got) != len(c.want) {
			t.Errorf("parseCommaList(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("parseCommaList(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestResolveSession(t *testing.T) {
	got, err := resolveSession([]string{"explicit"}, "/home/user/repo")
	if err != nil || got != "explicit" {
		t.Errorf("resolveSession = %q, %v", got, err)
	}
	got, err = resolveSession(nil, "/home/user/repo")
	if err != nil || got != "repo" {
		t.Errorf("resolveSession = %q, %v", got, err)
	}
}

func TestSessionLines(t *testing.T) {
	out := runner.Output{Stdout: "proj\t1.2G\nother\t48K\n\n"}
	lines := sessionLines(out)
	if len(lines) != 2 || lines[0] != "proj\t1.2G" {
		t.Errorf("sessionLines = %v", lines)
	}

	// A failing command means the base dir does not exist yet.
	if got := sessionLines(runner.Output{ExitCode: 1, Stdout: "junk"}); got != nil {
		t.Errorf("sessionLines on failure = %v, want nil", got)
	}
}

func TestRunDestroyRemovesWorkDirAndFifos(t *testing.T) {
	m := runner.NewMock()
	m.AddResponse(runner.RespondOk(""))
	m.AddResponse(runner.RespondOk(""))

	cfg := &config.Config{Remote: "user@host"}
	if err := runDestroy(context.Background(), m, cfg, "proj"); err != nil {
		t.Fatalf("runDestroy: %v", err)
	}

	invs := m.Invocations()
	if len(invs) != 2 {
		t.Fatalf("recorded %d invocations, want 2", len(invs))
	}
	if invs[0].Command != "rm -rf ~/relocal/proj" {
		t.Errorf("invocation 0 = %q", invs[0].Command)
	}
	if !strings.HasPrefix(invs[1].Command, "rm -f ~/relocal/.fifos/proj-") {
		t.Errorf("invocation 1 = %q", invs[1].Command)
	}
}

func TestRunNukeRemovesBaseDir(t *testing.T) {
	m := runner.NewMock()
	m.AddResponse(runner.RespondOk(""))

	cfg := &config.Config{Remote: "user@host"}
	if err := runNuke(context.Background(), m, cfg); err != nil {
		t.Fatalf("runNuke: %v", err)
	}
	if got := m.Invocations()[0].Command; got != "rm -rf ~/relocal" {
		t.Errorf("runNuke ran %q", got)
	}
}

func TestRunStatusChecks(t *testing.T) {
	m := runner.NewMock()
	m.AddResponse(runner.RespondOk(""))   // work dir exists
	m.AddResponse(runner.RespondFail("")) // no FIFOs
	m.AddResponse(runner.RespondOk(""))   // claude installed

	cfg := &config.Config{Remote: "user@host"}
	if err := runStatus(context.Background(), m, cfg, "proj"); err != nil {
		t.Fatalf("runStatus: %v", err)
	}

	invs := m.Invocations()
	wants := []string{"test -d ~/relocal/proj", "test -e ~/relocal/.fifos/proj-request", "command -v claude"}
	for i, want := range wants {
		if !strings.HasPrefix(invs[i].Command, want) {
			t.Errorf("check %d = %q, want prefix %q", i, invs[i].Command, want)
		}
	}
}
