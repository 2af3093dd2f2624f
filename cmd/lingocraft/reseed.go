package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lingocraft/lingocraft/internal/database"
	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/seed"
	"github.com/lingocraft/lingocraft/internal/translation"
)

func newReseedCommand() *cobra.Command {
	var languages Languages
	command := &cobra.Command{
		Use:   "reseed",
		Short: "Wipe the combination cache and store the canonical combinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			synthesizer, err := newSynthesizer(cmd.Context(), cfg.TTS)
			if err != nil {
				return err
			}

			seeder := seed.NewSeeder(
				element.NewDBCacheRepository(db),
				element.NewDBAudioRepository(db),
				synthesizer,
				translation.Default(),
				languages,
			)
			report, err := seeder.Reseed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeder.Reseed() > %w", err)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	command.Flags().Var(&languages, "language", fmt.Sprintf("Language to seed, repeatable. Defaults to all of %v", translation.SupportedLanguages()))
	return command
}

func printReport(w io.Writer, report seed.Report) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	_, _ = fmt.Fprintf(w, "Deleted %d cached combinations and %d starter audio rows\n",
		report.DeletedCombinations, report.DeletedAudio)
	_, _ = green.Fprintf(w, "Inserted %d combinations and %d starter elements\n",
		report.CombinationsInserted, report.StartersInserted)

	if report.CombinationsFailed > 0 || report.StartersFailed > 0 {
		_, _ = yellow.Fprintf(w, "Failed to insert %d combinations and %d starter elements\n",
			report.CombinationsFailed, report.StartersFailed)
	}
	if report.AudioFailures > 0 {
		_, _ = yellow.Fprintf(w, "Audio could not be generated %d times\n", report.AudioFailures)
	}
}
