// Package seed wipes the combination cache and fills it with canonical combinations.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/translation"
	"github.com/lingocraft/lingocraft/internal/tts"
)

// Report summarizes a reseed run.
type Report struct {
	DeletedCombinations  int64
	DeletedAudio         int64
	CombinationsInserted int
	CombinationsFailed   int
	StartersInserted     int
	StartersFailed       int
	AudioFailures        int
}

type Seeder struct {
	cache       element.CacheRepository
	audio       element.AudioRepository
	synthesizer tts.Synthesizer
	table       *translation.Table
	languages   []string
	seeds       []Combination
	starters    []translation.StarterElement
}

// NewSeeder creates a Seeder for languages, or every supported language when languages is empty.
func NewSeeder(
	cache element.CacheRepository,
	audio element.AudioRepository,
	synthesizer tts.Synthesizer,
	table *translation.Table,
	languages []string,
) *Seeder {
	if synthesizer == nil {
		synthesizer = tts.Disabled{}
	}
	if len(languages) == 0 {
		languages = translation.SupportedLanguages()
	}
	return &Seeder{
		cache:       cache,
		audio:       audio,
		synthesizer: synthesizer,
		table:       table,
		languages:   languages,
		seeds:       Combinations(),
		starters:    translation.StarterElements(),
	}
}

// Reseed deletes every cached combination and starter audio, then stores the
// canonical combinations and starter audio for each language.
// Only a failed wipe or a cancelled context aborts the run; other failures are counted in the report.
func (s *Seeder) Reseed(ctx context.Context) (Report, error) {
	var report Report
	logger := slog.Default()

	deleted, err := s.cache.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cache.DeleteAll > %w", err)
	}
	report.DeletedCombinations = deleted

	deleted, err = s.audio.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("audio.DeleteAll > %w", err)
	}
	report.DeletedAudio = deleted
	logger.Info("cleared cache",
		"combinations", report.DeletedCombinations,
		"audio", report.DeletedAudio,
	)

	for _, seed := range s.seeds {
		for _, languageCode := range s.languages {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := s.insertCombination(ctx, seed, languageCode, &report); err != nil {
				report.CombinationsFailed++
				logger.Error("failed to seed combination",
					"element1", seed.Element1,
					"element2", seed.Element2,
					"language", languageCode,
					"error", err,
				)
				continue
			}
			report.CombinationsInserted++
		}
		logger.Info("seeded combination",
			"element1", seed.Element1,
			"element2", seed.Element2,
			"result", seed.Result,
		)
	}

	for _, starter := range s.starters {
		for _, languageCode := range s.languages {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := s.insertStarter(ctx, starter, languageCode, &report); err != nil {
				report.StartersFailed++
				logger.Error("failed to seed starter audio",
					"element", starter.ID,
					"language", languageCode,
					"error", err,
				)
				continue
			}
			report.StartersInserted++
		}
	}

	logger.Info("reseed finished",
		"combinations", report.CombinationsInserted,
		"combination_failures", report.CombinationsFailed,
		"starters", report.StartersInserted,
		"starter_failures", report.StartersFailed,
		"audio_failures", report.AudioFailures,
	)
	return report, nil
}

func (s *Seeder) insertCombination(ctx context.Context, seed Combination, languageCode string, report *Report) error {
	name := s.table.ElementName(seed.Result, languageCode)
	key := element.NewCombinationKey(seed.Element1, seed.Element2, languageCode)
	result := element.Result{
		Element:  name,
		EnText:   s.table.ElementName(seed.Result, translation.DefaultLanguage),
		Emoji:    seed.Emoji,
		AudioB64: s.synthesize(ctx, languageCode, name, report),
	}
	return s.cache.Insert(ctx, element.NewCacheEntry(key, result))
}

func (s *Seeder) insertStarter(ctx context.Context, starter translation.StarterElement, languageCode string, report *Report) error {
	name := s.table.ElementName(starter.ID, languageCode)
	return s.audio.Insert(ctx, &element.InitialElementAudio{
		ElementKey:   starter.ID,
		LanguageCode: languageCode,
		ElementName:  name,
		AudioB64:     s.synthesize(ctx, languageCode, name, report),
	})
}

func (s *Seeder) synthesize(ctx context.Context, languageCode, text string, report *Report) *string {
	audio, err := s.synthesizer.Synthesize(ctx, languageCode, text)
	if errors.Is(err, tts.ErrDisabled) {
		return nil
	}
	if err != nil {
		report.AudioFailures++
		slog.Default().Warn("audio synthesis failed, storing without audio",
			"language", languageCode,
			"text", text,
			"error", err,
		)
		return nil
	}
	return &audio
}
