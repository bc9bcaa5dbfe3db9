// Package session validates session names and derives defaults.
//
// Each session maps to a remote working directory at ~/relocal/<name>/ and a
// pair of FIFOs at ~/relocal/.fifos/<name>-{request,ack}. The name is
// embedded in filesystem paths and SSH command lines, so it is restricted to
// safe characters before any remote contact.
package session

import (
	"fmt"
	"path/filepath"
)

// ValidationError reports a rejected session name. Validation fails closed:
// no remote command is ever built from an unvalidated name.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid session name %q: %s", e.Name, e.Reason)
}

// Validate checks that a session name is non-empty and contains only
// alphanumerics, hyphens, and underscores.
func Validate(name string) error {
	if name == "" {
		return &ValidationError{Name: name, Reason: "must not be empty"}
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return &ValidationError{Name: name, Reason: "must contain only alphanumeric characters, hyphens, and underscores"}
	}
	return nil
}

// DefaultName derives a session name from a directory path by taking its
// final component (/home/user/my-project -> my-project).
func DefaultName(path string) (string, error) {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "", &ValidationError{Name: path, Reason: "cannot derive session name from directory path"}
	}
	if err := Validate(name); err != nil {
		return "", err
	}
	return name, nil
}

// Resolve returns the explicit name when given (validated), otherwise the
// default derived from the repo root.
func Resolve(explicit, repoRoot string) (string, error) {
	if explicit != "" {
		if err := Validate(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	return DefaultName(repoRoot)
}
