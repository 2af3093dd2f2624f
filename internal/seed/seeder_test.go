package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/lingocraft/lingocraft/internal/element"
	mock_element "github.com/lingocraft/lingocraft/internal/mocks/element"
	mock_tts "github.com/lingocraft/lingocraft/internal/mocks/tts"
	"github.com/lingocraft/lingocraft/internal/translation"
	"github.com/lingocraft/lingocraft/internal/tts"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCombinations(t *testing.T) {
	table := translation.Default()
	seen := make(map[element.CombinationKey]Combination)

	for _, seed := range Combinations() {
		key := element.NewCombinationKey(seed.Element1, seed.Element2, translation.DefaultLanguage)
		if previous, ok := seen[key]; ok {
			t.Errorf("%s+%s collides with %s+%s", seed.Element1, seed.Element2, previous.Element1, previous.Element2)
		}
		seen[key] = seed

		assert.True(t, table.Has(seed.Result), "result %q has no translations", seed.Result)
		assert.Equal(t, 1, uniseg.GraphemeClusterCount(seed.Emoji), "emoji of %q", seed.Result)
	}
}

func TestSeeder_Reseed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	synthesizer := mock_tts.NewMockSynthesizer(ctrl)
	synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, languageCode, text string) (string, error) {
			return languageCode + ":" + text, nil
		}).AnyTimes()

	cache := element.NewMemoryCacheRepository()
	audio := element.NewMemoryAudioRepository()
	_, err := cache.Create(ctx, element.NewCacheEntry(element.NewCombinationKey("fire", "water", "en-US"), element.MalformedResult()))
	require.NoError(t, err)
	_, err = cache.Create(ctx, element.NewCacheEntry(element.NewCombinationKey("dog", "cat", "en-US"), element.Result{Element: "Pet"}))
	require.NoError(t, err)

	seeder := NewSeeder(cache, audio, synthesizer, translation.Default(), nil)
	report, err := seeder.Reseed(ctx)
	require.NoError(t, err)

	languages := translation.SupportedLanguages()
	seeds := Combinations()
	starters := translation.StarterElements()
	assert.Equal(t, Report{
		DeletedCombinations:  2,
		DeletedAudio:         0,
		CombinationsInserted: len(seeds) * len(languages),
		StartersInserted:     len(starters) * len(languages),
	}, report)

	entries := cache.Entries()
	require.Len(t, entries, len(seeds)*len(languages))

	table := translation.Default()
	for _, seed := range seeds {
		for _, languageCode := range languages {
			stored, err := cache.Find(ctx, element.NewCombinationKey(seed.Element1, seed.Element2, languageCode))
			require.NoError(t, err)
			require.NotNil(t, stored, "%s+%s in %s", seed.Element1, seed.Element2, languageCode)
			assert.Equal(t, table.ElementName(seed.Result, "en-US"), stored.EnText)
			assert.Equal(t, table.ElementName(seed.Result, languageCode), stored.Element)
			assert.Equal(t, seed.Emoji, stored.Emoji)
		}
	}

	steam, err := cache.Find(ctx, element.NewCombinationKey("water", "fire", "en-US"))
	require.NoError(t, err)
	require.NotNil(t, steam)
	assert.Equal(t, "fire", steam.Element1)
	assert.Equal(t, "water", steam.Element2)
	assert.Equal(t, "Steam", steam.Element)
	assert.Equal(t, "Steam", steam.EnText)
	require.NotNil(t, steam.AudioB64)
	assert.Equal(t, "en-US:Steam", *steam.AudioB64)

	vapor, err := cache.Find(ctx, element.NewCombinationKey("fire", "water", "es-ES"))
	require.NoError(t, err)
	require.NotNil(t, vapor)
	assert.Equal(t, "Vapor", vapor.Element)
	assert.Equal(t, "Steam", vapor.EnText)

	spanish, err := audio.FindByLanguage(ctx, "es-ES")
	require.NoError(t, err)
	require.Len(t, spanish, len(starters))
	assert.Equal(t, "water", spanish[0].ElementKey)
	assert.Equal(t, "Agua", spanish[0].ElementName)
	require.NotNil(t, spanish[0].AudioB64)
	assert.Equal(t, "es-ES:Agua", *spanish[0].AudioB64)
}

func TestSeeder_Reseed_WipeFailureAborts(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(cache *mock_element.MockCacheRepository, audio *mock_element.MockAudioRepository)
		wantErr   string
	}{
		{
			name: "cache wipe fails",
			setupMock: func(cache *mock_element.MockCacheRepository, _ *mock_element.MockAudioRepository) {
				cache.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			wantErr: "cache.DeleteAll",
		},
		{
			name: "audio wipe fails",
			setupMock: func(cache *mock_element.MockCacheRepository, audio *mock_element.MockAudioRepository) {
				cache.EXPECT().DeleteAll(gomock.Any()).Return(int64(12), nil)
				audio.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			wantErr: "audio.DeleteAll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := mock_element.NewMockCacheRepository(ctrl)
			audio := mock_element.NewMockAudioRepository(ctrl)
			tt.setupMock(cache, audio)

			_, err := NewSeeder(cache, audio, nil, translation.Default(), nil).Reseed(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeeder_Reseed_InsertFailureContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock_element.NewMockCacheRepository(ctrl)
	audio := mock_element.NewMockAudioRepository(ctrl)
	languages := []string{"en-US", "ja-JP"}

	cache.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), nil)
	audio.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), nil)
	failing := element.NewCombinationKey("fire", "water", "ja-JP")
	cache.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *element.CacheEntry) error {
			if entry.Key() == failing {
				return errors.New("deadlock found")
			}
			return nil
		}).Times(len(Combinations()) * len(languages))
	audio.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, audio *element.InitialElementAudio) error {
			if audio.ElementKey == "wind" && audio.LanguageCode == "en-US" {
				return errors.New("deadlock found")
			}
			return nil
		}).Times(len(translation.StarterElements()) * len(languages))

	report, err := NewSeeder(cache, audio, tts.Disabled{}, translation.Default(), languages).Reseed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(Combinations())*len(languages)-1, report.CombinationsInserted)
	assert.Equal(t, 1, report.CombinationsFailed)
	assert.Equal(t, len(translation.StarterElements())*len(languages)-1, report.StartersInserted)
	assert.Equal(t, 1, report.StartersFailed)
	assert.Zero(t, report.AudioFailures, "disabled synthesis is not a failure")
}

func TestSeeder_Reseed_AudioFailureStoresWithoutAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	synthesizer := mock_tts.NewMockSynthesizer(ctrl)
	synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded")).AnyTimes()
	cache := element.NewMemoryCacheRepository()
	audio := element.NewMemoryAudioRepository()

	report, err := NewSeeder(cache, audio, synthesizer, translation.Default(), []string{"ko-KR"}).Reseed(context.Background())
	require.NoError(t, err)

	total := len(Combinations()) + len(translation.StarterElements())
	assert.Equal(t, total, report.AudioFailures)
	assert.Equal(t, len(Combinations()), report.CombinationsInserted)
	for _, entry := range cache.Entries() {
		assert.Nil(t, entry.AudioB64)
	}
}

func TestSeeder_Reseed_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cache := element.NewMemoryCacheRepository()
	_, err := NewSeeder(cache, element.NewMemoryAudioRepository(), nil, translation.Default(), nil).Reseed(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, cache.Entries())
}
