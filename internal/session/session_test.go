package session

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := []string{"myproject", "my-project", "my_project", "Proj123", "a", "0"}
	for _, name := range valid {
		if err := Validate(name); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "my project", "my/project", "../escape", "proj.name", "naïve", "a;rm -rf", "$(whoami)", "name\n"}
	for _, name := range invalid {
		err := Validate(name)
		if err == nil {
			t.Errorf("Validate(%q) = nil, want error", name)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Validate(%q) returned %T, want *ValidationError", name, err)
		}
	}
}

func TestDefaultName(t *testing.T) {
	got, err := DefaultName("/home/user/my-project")
	if err != nil {
		t.Fatalf("DefaultName: %v", err)
	}
	if got != "my-project" {
		t.Errorf("DefaultName = %q, want %q", got, "my-project")
	}
}

func TestDefaultNameInvalidComponent(t *testing.T) {
	if _, err := DefaultName("/home/user/my project"); err == nil {
		t.Error("DefaultName accepted a directory with a space")
	}
	if _, err := DefaultName("/"); err == nil {
		t.Error("DefaultName accepted the filesystem root")
	}
}

func TestResolve(t *testing.T) {
	got, err := Resolve("explicit-name", "/home/user/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "explicit-name" {
		t.Errorf("Resolve = %q, want explicit name", got)
	}

	got, err = Resolve("", "/home/user/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "repo" {
		t.Errorf("Resolve = %q, want derived %q", got, "repo")
	}

	if _, err := Resolve("bad name", "/home/user/repo"); err == nil {
		t.Error("Resolve accepted an invalid explicit name")
	}
}
