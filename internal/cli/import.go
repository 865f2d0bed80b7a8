package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrlokans/advisor/internal/config"
	"github.com/mrlokans/advisor/internal/entrypoint"
	"github.com/mrlokans/advisor/internal/importers"
	"github.com/mrlokans/advisor/internal/services"
)

func newImportCmd(load func() *config.Config) *cobra.Command {
	var archive, deletePrevious, shortenNames bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import archetype decks once",
		Long: `Fetches every class listing and ladder game type, deduplicates the
decks and stores them. Unset flags fall back to the IMPORT_* settings.

Examples:
  # Replace the previous import and shorten long names
  advisor import --delete-previous --shorten-names`,
		Args: cobra.NoArgs,
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

			opts := app.ImportOptions()
			flags := cmd.Flags()
			if flags.Changed("archive") {
				opts.Archive = archive
			}
			if flags.Changed("delete-previous") {
				opts.DeletePrevious = deletePrevious
			}
			if flags.Changed("shorten-names") {
				opts.ShortenNames = shortenNames
			}

			out := cmd.OutOrStdout()
			opts.Progress = func(p importers.Progress) {
				fmt.Fprintf(out, "progress: %d/%d decks\n", p.Imported, p.Found)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := app.Imports.Import(ctx, services.TriggerCLI, opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(out, "Imported %d of %d archetype decks\n", result.Imported, result.Unique)
			if result.Deleted > 0 {
				fmt.Fprintf(out, "Deleted %d previously imported decks\n", result.Deleted)
			}
			if failed := result.FailedSources(); len(failed) > 0 {
				fmt.Fprintf(out, "Unreachable sources: %s\n", strings.Join(failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&archive, "archive", false, "Archive imported decks")
	cmd.Flags().BoolVar(&deletePrevious, "delete-previous", false, "Delete previously imported decks first")
	cmd.Flags().BoolVar(&shortenNames, "shorten-names", false, "Drop the class suffix from deck names")
	return cmd
}
