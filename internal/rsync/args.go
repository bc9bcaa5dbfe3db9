// Package rsync constructs rsync argument lists for push and pull syncs.
//
// The functions are pure (no I/O) so the full filtering policy, including
// the .claude/ handling, can be unit-tested. Callers pass the resulting
// Params to runner.RunRsync.
package rsync

import (
	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/remote"
)

// Direction is which way a sync runs.
type Direction int

const (
	// Push mirrors local -> remote.
	Push Direction = iota
	// Pull mirrors remote -> local.
	Pull
)

func (d Direction) String() string {
	if d == Pull {
		return "pull"
	}
	return "push"
}

// Params is a structured rsync invocation carrying the argument list plus
// the metadata runner.RunRsync needs for safety validation: args, direction,
// and local path must all originate from the same BuildArgs call, which is
// why the fields are unexported.
type Params struct {
	args      []string
	direction Direction
	localPath string
}

// Args returns the complete rsync argument list.
func (p Params) Args() []string { return p.args }

// Direction returns the sync direction the args were built for.
func (p Params) Direction() Direction { return p.direction }

// LocalPath returns the local repo root the args were built for.
func (p Params) LocalPath() string { return p.localPath }

// ParamsForTest builds a Params directly. Tests only; production code must
// go through BuildArgs.
func ParamsForTest(args []string, direction Direction, localPath string) Params {
	return Params{args: args, direction: direction, localPath: localPath}
}

// BuildArgs builds the complete rsync argument list for a sync.
//
// The .claude/ directory is excluded wholesale and then selectively
// re-included: one rule per configured synced subtree, plus settings.json on
// push only. rsync filters are first-match-wins, so the re-inclusions are
// emitted before the wholesale exclusion. The settings.json asymmetry is
// deliberate: local settings (including the hook entries the sidecar keeps
// rewriting on the remote) are authoritative and flow outward, but the
// remote's copy must never be pulled back over the local one.
func BuildArgs(cfg *config.Config, direction Direction, session, repoRoot string, verbose bool) Params {
	args := []string{"-az", "--delete"}

	// Respect .gitignore at every directory level.
	args = append(args, "--filter=:- .gitignore")

	for _, pattern := range cfg.Exclude {
		if pattern == "" {
			continue
		}
		args = append(args, "--exclude="+pattern)
	}

	for _, name := range cfg.ClaudeSync {
		if name == "" {
			continue
		}
		args = append(args, "--include=.claude/"+name+"/***")
	}
	if direction == Push {
		args = append(args, "--include=.claude/settings.json")
	}
	args = append(args, "--exclude=.claude/**")

	if verbose {
		args = append(args, "--progress")
	}

	// Trailing slashes make rsync sync directory contents, not the dirs.
	localPath := repoRoot + "/"
	remotePath := cfg.Remote + ":" + remote.WorkDir(session) + "/"

	switch direction {
	case Push:
		args = append(args, localPath, remotePath)
	case Pull:
		args = append(args, remotePath, localPath)
	}

	return Params{args: args, direction: direction, localPath: repoRoot}
}
