package element

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCacheRepository()
	key := NewCombinationKey("water", "fire", "en-US")

	got, err := repo.Find(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	inserted, err := repo.Create(ctx, NewCacheEntry(key, Result{Element: "Steam", EnText: "Steam", Emoji: "💨"}))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Create(ctx, NewCacheEntry(key, Result{Element: "Vapor", EnText: "Vapor", Emoji: "🌫️"}))
	require.NoError(t, err)
	assert.False(t, inserted, "an existing key is kept")

	got, err = repo.Find(ctx, NewCombinationKey("FIRE", "Water", "en-US"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Steam", got.Element)
	assert.False(t, got.CreatedAt.IsZero())

	assert.Error(t, repo.Insert(ctx, NewCacheEntry(key, Result{Element: "Steam"})), "plain insert rejects duplicates")
	require.NoError(t, repo.Insert(ctx, NewCacheEntry(NewCombinationKey("earth", "water", "en-US"), Result{Element: "Mud"})))

	entries := repo.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Steam", entries[0].Element)
	assert.Equal(t, "Mud", entries[1].Element)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Empty(t, repo.Entries())
}

func TestMemoryAudioRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAudioRepository()
	audio := "SUQz"

	require.NoError(t, repo.Insert(ctx, &InitialElementAudio{ElementKey: "water", LanguageCode: "es-ES", ElementName: "Agua", AudioB64: &audio}))
	require.NoError(t, repo.Insert(ctx, &InitialElementAudio{ElementKey: "fire", LanguageCode: "es-ES", ElementName: "Fuego"}))
	require.NoError(t, repo.Insert(ctx, &InitialElementAudio{ElementKey: "water", LanguageCode: "en-US", ElementName: "Water"}))
	assert.Error(t, repo.Insert(ctx, &InitialElementAudio{ElementKey: "water", LanguageCode: "es-ES", ElementName: "Agua"}))

	got, err := repo.FindByLanguage(ctx, "es-ES")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Agua", got[0].ElementName)
	assert.Equal(t, &audio, got[0].AudioB64)
	assert.Equal(t, "Fuego", got[1].ElementName)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	got, err = repo.FindByLanguage(ctx, "es-ES")
	require.NoError(t, err)
	assert.Empty(t, got)
}
