// Package remote builds the shell command strings executed on the remote
// host. These are pure string builders — nothing here runs anything.
// Orchestration code passes the returned strings to runner.RunSSH or
// runner.RunSSHInteractive.
package remote

import (
	"fmt"
	"strings"
)

// BaseDir is the remote base directory for all relocal state.
const BaseDir = "~/relocal"

// WorkDir returns the remote working directory path for a session.
func WorkDir(session string) string {
	return BaseDir + "/" + session
}

// MkdirWorkDir creates the remote working directory.
func MkdirWorkDir(session string) string {
	return "mkdir -p " + WorkDir(session)
}

// RemoveWorkDir deletes the remote working directory.
func RemoveWorkDir(session string) string {
	return "rm -rf " + WorkDir(session)
}

// FifoRequestPath returns the path of a session's request FIFO.
func FifoRequestPath(session string) string {
	return BaseDir + "/.fifos/" + session + "-request"
}

// FifoAckPath returns the path of a session's ack FIFO.
func FifoAckPath(session string) string {
	return BaseDir + "/.fifos/" + session + "-ack"
}

// CreateFifos creates both FIFOs for a session.
func CreateFifos(session string) string {
	return fmt.Sprintf("mkfifo %s %s", FifoRequestPath(session), FifoAckPath(session))
}

// CheckFifosExist exits 0 when either FIFO exists. Used as the staleness
// gate: an existing FIFO means a prior session is still running or crashed.
func CheckFifosExist(session string) string {
	return fmt.Sprintf("test -e %s -o -e %s", FifoRequestPath(session), FifoAckPath(session))
}

// RemoveFifos removes both FIFOs for a session.
func RemoveFifos(session string) string {
	return fmt.Sprintf("rm -f %s %s", FifoRequestPath(session), FifoAckPath(session))
}

// ReadRequestFifo reads the request FIFO forever. Each cat exits after one
// writer open/write/close cycle, so the loop re-opens the FIFO for the next
// request instead of treating end-of-stream as done.
func ReadRequestFifo(session string) string {
	return fmt.Sprintf("while true; do cat %s; done", FifoRequestPath(session))
}

// WriteAck writes an ack line to the ack FIFO. The message is shell-quoted
// so error text containing quotes or metacharacters cannot break out of the
// echo.
func WriteAck(session, message string) string {
	return fmt.Sprintf("echo %s > %s", ShQuote(message), FifoAckPath(session))
}

// ReadSettings reads the remote .claude/settings.json for a session.
func ReadSettings(session string) string {
	return "cat " + WorkDir(session) + "/.claude/settings.json"
}

// WriteSettings writes content to the remote .claude/settings.json through a
// quoted heredoc, creating .claude/ first.
func WriteSettings(session, content string) string {
	dir := WorkDir(session) + "/.claude"
	return fmt.Sprintf("mkdir -p %s && cat > %s/settings.json << 'RELOCAL_EOF'\n%s\nRELOCAL_EOF", dir, dir, content)
}

// MkdirFifosDir creates the FIFO directory.
func MkdirFifosDir() string {
	return "mkdir -p " + BaseDir + "/.fifos"
}

// MkdirBinDir creates the helper-script directory.
func MkdirBinDir() string {
	return "mkdir -p " + BaseDir + "/.bin"
}

// MkdirLogsDir creates the hook log directory.
func MkdirLogsDir() string {
	return "mkdir -p " + BaseDir + "/.logs"
}

// HookScriptPath is where the hook helper script lives on the remote.
func HookScriptPath() string {
	return BaseDir + "/.bin/relocal-hook.sh"
}

// RemoveBaseDir deletes the entire ~/relocal directory (nuke).
func RemoveBaseDir() string {
	return "rm -rf " + BaseDir
}

// ListSessions lists session directories with sizes, one "name\tsize" line
// each, skipping the bookkeeping dirs.
func ListSessions() string {
	return "cd " + BaseDir + ` 2>/dev/null && for d in $(ls -1 | grep -v '^\.bin$' | grep -v '^\.fifos$' | grep -v '^\.logs$'); do size=$(du -sh "$d" 2>/dev/null | cut -f1); printf '%s\t%s\n' "$d" "$size"; done`
}

// CheckWorkDirExists exits 0 when the session working directory exists.
func CheckWorkDirExists(session string) string {
	return "test -d " + WorkDir(session)
}

// GitFsck verifies the remote working copy is an intact git repository.
// This is the safety gate before any pull: a corrupted or emptied remote
// must not propagate deletions onto the local copy via rsync --delete.
func GitFsck(session string) string {
	return fmt.Sprintf("cd %s && git fsck --strict --full --no-dangling", WorkDir(session))
}

// CheckClaudeInstalled exits 0 when claude is on the remote PATH.
func CheckClaudeInstalled() string {
	return "command -v claude"
}

// StartClaudeSession launches an interactive Claude session in the session
// working directory. Extra args are shell-quoted and appended.
func StartClaudeSession(session string, extraArgs []string) string {
	cmd := fmt.Sprintf("cd %s && claude --dangerously-skip-permissions", WorkDir(session))
	for _, a := range extraArgs {
		cmd += " " + ShQuote(a)
	}
	return cmd
}

// ShQuote single-quote escapes a string for use inside a sh command line.
func ShQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
