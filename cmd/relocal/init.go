package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a relocal.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return runInit(cwd)
		},
	}
}

// runInit prompts for the config values and writes relocal.yaml. It is the
// only command that does not require an existing config.
func runInit(dir string) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		pterm.Info.Printfln("%s already exists in %s", config.FileName, dir)
		return nil
	}

	remote, err := pterm.DefaultInteractiveTextInput.Show("Remote (user@host)")
	if err != nil {
		return err
	}
	excludeInput, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue("").
		Show("Exclude patterns (comma-separated, or empty)")
	if err != nil {
		return err
	}
	aptInput, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue("").
		Show("APT packages (comma-separated, or empty)")
	if err != nil {
		return err
	}

	content := config.Generate(strings.TrimSpace(remote), parseCommaList(excludeInput), parseCommaList(aptInput))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	pterm.Success.Printfln("Created %s", path)
	return nil
}

// parseCommaList splits a comma-separated string, trimming whitespace and
// dropping empty entries.
func parseCommaList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
