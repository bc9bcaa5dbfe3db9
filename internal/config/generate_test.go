package config

import "testing"

func TestGenerateMinimal(t *testing.T) {
	got := Generate("user@host", nil, nil)
	if got != "remote: user@host\n" {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerateFull(t *testing.T) {
	got := Generate("dev@box", []string{"target/", ".env"}, []string{"cmake"})
	want := "remote: dev@box\nexclude:\n  - target/\n  - \".env\"\napt_packages:\n  - cmake\n"
	if got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestGenerateRoundTrips(t *testing.T) {
	doc := Generate("user@host", []string{"*.log", "node_modules/"}, []string{"pkg-config"})
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("generated config does not parse: %v\n%s", err, doc)
	}
	if cfg.Remote != "user@host" {
		t.Errorf("Remote = %q", cfg.Remote)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "*.log" {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if len(cfg.AptPackages) != 1 || cfg.AptPackages[0] != "pkg-config" {
		t.Errorf("AptPackages = %v", cfg.AptPackages)
	}
}
