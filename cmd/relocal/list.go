package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/remote"
	"github.com/antonkrylov/relocal/internal/runner"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions on the remote with their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			_, cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runList(ctx, runner.Process{}, cfg)
		},
	}
}

func runList(ctx context.Context, r runner.Runner, cfg *config.Config) error {
	out, err := r.RunSSH(ctx, cfg.Remote, remote.ListSessions())
	if err != nil {
		return err
	}
	lines := sessionLines(out)
	if len(lines) == 0 {
		pterm.Info.Println("No sessions found.")
		return nil
	}
	rows := pterm.TableData{{"SESSION", "SIZE"}}
	for _, l := range lines {
		name, size, found := strings.Cut(l, "\t")
		if !found {
			continue
		}
		rows = append(rows, []string{name, size})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// sessionLines extracts "name\tsize" lines from the remote du output. A
// failing command (base dir absent) is treated the same as no sessions.
func sessionLines(out runner.Output) []string {
	if !out.Success() {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(out.Stdout, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
