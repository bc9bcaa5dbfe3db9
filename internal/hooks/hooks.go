// Package hooks merges relocal's trigger entries into Claude's settings.json
// and generates the remote hook helper script.
//
// Claude hooks are how the remote Claude session triggers syncs back to the
// local machine: UserPromptSubmit pushes before the agent starts working,
// Stop pulls its results back. Relocal-managed entries are identified by the
// Marker substring in their command text; everything else in the document is
// left alone.
package hooks

import (
	"encoding/json"
	"strings"
)

// Marker identifies relocal-managed hook entries inside settings.json.
const Marker = "relocal-hook.sh"

// managedEvents maps each managed hook event to the direction its hook
// requests. Order matters only for deterministic iteration in Merge.
var managedEvents = []struct {
	event     string
	direction string
}{
	{"UserPromptSubmit", "push"},
	{"Stop", "pull"},
}

// hookCommand builds the command string for one hook entry. The session name
// travels as an environment variable so the helper script can derive the
// FIFO paths for exactly this session.
func hookCommand(session, direction string) string {
	return "RELOCAL_SESSION=" + session + " ~/relocal/.bin/relocal-hook.sh " + direction
}

// entry builds a relocal matcher group. Claude settings use a nested format
// where each array element is a matcher group holding a "hooks" array of
// handler objects.
func entry(session, direction string) map[string]any {
	return map[string]any{
		"hooks": []any{
			map[string]any{
				"type":    "command",
				"command": hookCommand(session, direction),
			},
		},
	}
}

// isRelocalEntry reports whether a matcher group contains a relocal-managed
// handler.
func isRelocalEntry(v any) bool {
	group, ok := v.(map[string]any)
	if !ok {
		return false
	}
	handlers, ok := group["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range handlers {
		m, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, ok := m["command"].(string); ok && strings.Contains(cmd, Marker) {
			return true
		}
	}
	return false
}

// upsert ensures the list contains exactly one relocal entry for the given
// session and direction. An existing marker entry is replaced at its current
// index — never moved — so merging is idempotent and user entries keep their
// positions.
func upsert(list []any, session, direction string) []any {
	fresh := entry(session, direction)
	for i, v := range list {
		if isRelocalEntry(v) {
			list[i] = fresh
			return list
		}
	}
	return append(list, fresh)
}

// Merge upserts relocal's trigger entries into a settings document.
//
// existing is the decoded settings.json (nil when the file does not exist or
// was unreadable) and is never modified: the root map, the hooks map, and
// the managed event lists are copied before the upsert. Every key other than
// "hooks", and every hook entry whose command lacks the Marker, is preserved
// untouched. Merging the result again with the same session yields an equal
// document.
func Merge(existing map[string]any, session string) map[string]any {
	root := make(map[string]any, len(existing)+1)
	for k, v := range existing {
		root[k] = v
	}

	hooksVal := map[string]any{}
	if hv, ok := root["hooks"].(map[string]any); ok {
		for k, v := range hv {
			hooksVal[k] = v
		}
	}
	root["hooks"] = hooksVal

	for _, ev := range managedEvents {
		list, _ := hooksVal[ev.event].([]any)
		hooksVal[ev.event] = upsert(append([]any(nil), list...), session, ev.direction)
	}

	return root
}

// MergeJSON decodes raw settings content, merges, and re-encodes with stable
// indented formatting. Undecodable or empty input is treated as an absent
// document: merge works on a fresh one rather than failing, since a settings
// file the transfer just clobbered may be half-written.
func MergeJSON(raw []byte, session string) ([]byte, error) {
	var existing map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &existing); err != nil {
			existing = nil
		}
	}
	merged := Merge(existing, session)
	return json.MarshalIndent(merged, "", "  ")
}
