// Package cli implements the advisor command line: the HTTP server and the
// one-shot import and delete commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/advisor/internal/config"
	"github.com/mrlokans/advisor/internal/logger"
)

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCmd(version string) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:   "advisor",
		Short: "Hearthstone archetype deck aggregator",
		Long: `Advisor imports Hearthstone archetype decks from metastats and the
HSReplay ranked ladder into a local deck list, and matches partial deck
observations against them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the deck database (overrides DATABASE_PATH)")

	load := func() *config.Config {
		cfg := config.NewConfig()
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		return cfg
	}

	serve := newServeCmd(version, load)
	root.RunE = serve.RunE
	root.AddCommand(serve, newImportCmd(load), newDeleteCmd(load))

	return root
}

// Execute runs the root command and exits with status 1 on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		l, logErr := logger.New(&logger.Config{Level: "info", Format: logger.FormatConsole})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}
