package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lingocraft/lingocraft/internal/database"
	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/inference/openai"
)

func newResolveCommand() *cobra.Command {
	var (
		language Language
		dryRun   bool
	)
	command := &cobra.Command{
		Use:   "resolve <element1> <element2>",
		Short: "Combine two elements and print the result as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.LLM.APIKey == "" {
				return errors.New("LLM_API_KEY environment variable is required")
			}

			var repository element.CacheRepository = element.NewMemoryCacheRepository()
			if !dryRun {
				db, err := database.Open(cfg.Database)
				if err != nil {
					return fmt.Errorf("database.Open() > %w", err)
				}
				defer func() {
					_ = db.Close()
				}()
				repository = element.NewDBCacheRepository(db)
			}

			llmClient := openai.NewClient(
				cfg.LLM.BaseURL,
				cfg.LLM.APIKey,
				cfg.LLM.Model,
				cfg.LLM.MaxRetryAttempts,
				time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
			)
			defer func() {
				_ = llmClient.Close()
			}()
			synthesizer, err := newSynthesizer(cmd.Context(), cfg.TTS)
			if err != nil {
				return err
			}

			resolver := element.NewResolver(repository, llmClient, synthesizer, nil, element.ResolverOptions{
				DefaultLanguage:         cfg.Resolver.DefaultLanguage,
				CacheMalformedResponses: cfg.Resolver.CacheMalformedResponses,
			})
			result := resolver.ResolveInLanguage(cmd.Context(), args[0], args[1], language.String())

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}
	command.Flags().Var(&language, "language", "Language of the result. Defaults to resolver.default_language")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Ask the LLM without reading or writing the database")
	return command
}
