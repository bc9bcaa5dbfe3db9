// Command relocal runs Claude Code on a remote host while keeping a local
// working copy as the source of truth. Hook-triggered syncs flow through a
// per-session FIFO pair served by a local sidecar.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/antonkrylov/relocal/internal/config"
	"github.com/antonkrylov/relocal/internal/session"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:           "relocal",
		Short:         "Run Claude Code remotely, work locally",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(logLevel(verbosity))
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newClaudeCmd(&verbosity))
	rootCmd.AddCommand(newSyncCmd(&verbosity))
	rootCmd.AddCommand(newRemoteCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDestroyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logLevel maps the -v count to a zerolog level. Default is warnings only;
// each -v steps one level down.
func logLevel(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// loadConfig finds the repo root from the working directory and loads
// relocal.yaml. Every command except `init` starts here.
func loadConfig() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	root, err := config.FindRepoRoot(cwd)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// resolveSession picks the explicit name from args when present, otherwise
// derives one from the repo root directory name.
func resolveSession(args []string, repoRoot string) (string, error) {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	return session.Resolve(explicit, repoRoot)
}
