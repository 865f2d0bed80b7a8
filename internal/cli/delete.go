package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/advisor/internal/config"
	"github.com/mrlokans/advisor/internal/entrypoint"
)

func newDeleteCmd(load func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete every imported deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			logg, err := newLogger(cfg)
			if err != nil {
				return err
			}

			app, err := entrypoint.NewApp(cfg, logg)
			if err != nil {
				return err
			}
			defer app.Close()

			deleted, err := app.Imports.DeleteDecks()
			if err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d decks\n", deleted)
			return nil
		},
	}
}
