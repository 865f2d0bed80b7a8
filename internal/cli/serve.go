package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/advisor/internal/config"
	"github.com/mrlokans/advisor/internal/entrypoint"
	"github.com/mrlokans/advisor/internal/scheduler"
)

func newServeCmd(version string, load func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts the HTTP API, the background task workers and, when
IMPORT_SYNC_ENABLED is set, the periodic import.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			if cfg.ImportSync.Enabled {
				if err := scheduler.ValidateSchedule(cfg.ImportSync.Schedule); err != nil {
					return fmt.Errorf("invalid IMPORT_SYNC_SCHEDULE %q: %w", cfg.ImportSync.Schedule, err)
				}
			}

			logg, err := newLogger(cfg)
			if err != nil {
				return err
			}
			return entrypoint.Run(cfg, version, logg)
		},
	}
}
