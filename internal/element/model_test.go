package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCombinationKey(t *testing.T) {
	tests := []struct {
		name         string
		a            string
		b            string
		languageCode string
		want         CombinationKey
	}{
		{
			name:         "already ordered",
			a:            "fire",
			b:            "water",
			languageCode: "en-US",
			want:         CombinationKey{Element1: "fire", Element2: "water", LanguageCode: "en-US"},
		},
		{
			name:         "reversed order",
			a:            "Water",
			b:            "Fire",
			languageCode: "en-US",
			want:         CombinationKey{Element1: "fire", Element2: "water", LanguageCode: "en-US"},
		},
		{
			name:         "mixed case and whitespace",
			a:            "  FIRE ",
			b:            "wAtEr\t",
			languageCode: " es-ES ",
			want:         CombinationKey{Element1: "fire", Element2: "water", LanguageCode: "es-ES"},
		},
		{
			name:         "same element twice",
			a:            "Tree",
			b:            "tree",
			languageCode: "ja-JP",
			want:         CombinationKey{Element1: "tree", Element2: "tree", LanguageCode: "ja-JP"},
		},
		{
			name:         "non latin names",
			a:            "水",
			b:            "火",
			languageCode: "ja-JP",
			want:         CombinationKey{Element1: "水", Element2: "火", LanguageCode: "ja-JP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCombinationKey(tt.a, tt.b, tt.languageCode))
		})
	}
}

func TestNewCombinationKey_OrderAndCaseIndependent(t *testing.T) {
	pairs := [][2]string{
		{"Fire", "water"},
		{"water", "FIRE"},
		{"WATER", "fire"},
		{" fire", "Water "},
	}
	want := NewCombinationKey("fire", "water", "en-US")
	for _, pair := range pairs {
		assert.Equal(t, want, NewCombinationKey(pair[0], pair[1], "en-US"), pair)
		assert.Equal(t, want.String(), NewCombinationKey(pair[1], pair[0], "en-US").String(), pair)
	}
	assert.NotEqual(t, want, NewCombinationKey("fire", "water", "es-ES"))
}

func TestCombinationKey_String(t *testing.T) {
	assert.Equal(t, "en-US:fire+water", NewCombinationKey("Water", "Fire", "en-US").String())
}

func TestCacheEntry_RoundTrip(t *testing.T) {
	audio := "SUQz"
	key := NewCombinationKey("fire", "water", "en-US")
	result := Result{Element: "Steam", EnText: "Steam", Emoji: "💨", AudioB64: &audio}

	entry := NewCacheEntry(key, result)
	assert.Equal(t, key, entry.Key())
	assert.Equal(t, result, entry.Result())
}
