package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMinimal(t *testing.T) {
	cfg, err := Parse([]byte("remote: user@host\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Remote != "user@host" {
		t.Errorf("Remote = %q, want %q", cfg.Remote, "user@host")
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty", cfg.Exclude)
	}
	if len(cfg.AptPackages) != 0 {
		t.Errorf("AptPackages = %v, want empty", cfg.AptPackages)
	}
}

func TestParseClaudeSyncDefaults(t *testing.T) {
	cfg, err := Parse([]byte("remote: user@host\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"skills", "commands", "plugins"}
	if len(cfg.ClaudeSync) != len(want) {
		t.Fatalf("ClaudeSync = %v, want %v", cfg.ClaudeSync, want)
	}
	for i, name := range want {
		if cfg.ClaudeSync[i] != name {
			t.Errorf("ClaudeSync[%d] = %q, want %q", i, cfg.ClaudeSync[i], name)
		}
	}
}

func TestParseClaudeSyncOverride(t *testing.T) {
	doc := "remote: user@host\nclaude_sync:\n  - skills\n"
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.ClaudeSync) != 1 || cfg.ClaudeSync[0] != "skills" {
		t.Errorf("ClaudeSync = %v, want [skills]", cfg.ClaudeSync)
	}
}

func TestParseClaudeSyncEmptyListStaysEmpty(t *testing.T) {
	// An explicit empty list disables .claude/ syncing; it must not be
	// re-defaulted.
	doc := "remote: user@host\nclaude_sync: []\n"
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.ClaudeSync == nil || len(cfg.ClaudeSync) != 0 {
		t.Errorf("ClaudeSync = %v, want explicit empty list", cfg.ClaudeSync)
	}
}

func TestParseFull(t *testing.T) {
	doc := `remote: dev@build-box
exclude:
  - target/
  - "*.log"
apt_packages:
  - cmake
  - pkg-config
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Remote != "dev@build-box" {
		t.Errorf("Remote = %q", cfg.Remote)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "target/" || cfg.Exclude[1] != "*.log" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if len(cfg.AptPackages) != 2 || cfg.AptPackages[0] != "cmake" {
		t.Errorf("AptPackages = %v", cfg.AptPackages)
	}
}

func TestParseMissingRemote(t *testing.T) {
	_, err := Parse([]byte("exclude:\n  - target/\n"))
	if err == nil {
		t.Fatal("Parse accepted config without remote")
	}
	if !strings.Contains(err.Error(), "remote") {
		t.Errorf("error %q does not name the missing key", err)
	}
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	doc := "remote: user@host\nfuture_option: true\n"
	if _, err := Parse([]byte(doc)); err != nil {
		t.Fatalf("Parse rejected unknown key: %v", err)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("remote: [unterminated\n")); err == nil {
		t.Fatal("Parse accepted malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "remote: user@host\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote != "user@host" {
		t.Errorf("Remote = %q", cfg.Remote)
	}
}

func TestFindRepoRootNearestWins(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "sub", "deeper")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(outer, FileName), "remote: outer@host\n")
	writeFile(t, filepath.Join(outer, "sub", FileName), "remote: inner@host\n")

	root, err := FindRepoRoot(inner)
	if err != nil {
		t.Fatalf("FindRepoRoot: %v", err)
	}
	want := filepath.Join(outer, "sub")
	if root != want {
		t.Errorf("root = %q, want nearest %q", root, want)
	}
}

func TestFindRepoRootWalksUp(t *testing.T) {
	top := t.TempDir()
	nested := filepath.Join(top, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(top, FileName), "remote: user@host\n")

	root, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot: %v", err)
	}
	if root != top {
		t.Errorf("root = %q, want %q", root, top)
	}
}

func TestFindRepoRootNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := FindRepoRoot(dir)
	if err == nil {
		t.Fatal("FindRepoRoot found a config in an empty tree")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
