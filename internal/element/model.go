// Package element resolves combinations of two elements into a new element,
// caching every answer by its order-independent combination key.
package element

import (
	"strings"
	"time"
)

// CombinationKey identifies a cached combination.
// Build it with NewCombinationKey so that "A+B" and "b+a" share one key.
type CombinationKey struct {
	Element1     string
	Element2     string
	LanguageCode string
}

// NewCombinationKey trims and lower-cases both names and orders them lexicographically.
func NewCombinationKey(a, b, languageCode string) CombinationKey {
	first := strings.ToLower(strings.TrimSpace(a))
	second := strings.ToLower(strings.TrimSpace(b))
	if second < first {
		first, second = second, first
	}
	return CombinationKey{
		Element1:     first,
		Element2:     second,
		LanguageCode: strings.TrimSpace(languageCode),
	}
}

func (k CombinationKey) String() string {
	return k.LanguageCode + ":" + k.Element1 + "+" + k.Element2
}

// Result is what a combination produces.
type Result struct {
	// Element is the display name in the requested language.
	Element string `json:"element"`
	// EnText is always the English name, used for target matching across languages.
	EnText   string  `json:"en_text"`
	Emoji    string  `json:"emoji"`
	AudioB64 *string `json:"audio_b64"`
}

// CacheEntry is a stored combination result.
type CacheEntry struct {
	ID           int64     `db:"id"`
	Element1     string    `db:"element1"`
	Element2     string    `db:"element2"`
	LanguageCode string    `db:"language_code"`
	Element      string    `db:"result_element"`
	EnText       string    `db:"result_en_text"`
	Emoji        string    `db:"result_emoji"`
	AudioB64     *string   `db:"result_audio_b64"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewCacheEntry builds the row stored for key.
func NewCacheEntry(key CombinationKey, result Result) *CacheEntry {
	return &CacheEntry{
		Element1:     key.Element1,
		Element2:     key.Element2,
		LanguageCode: key.LanguageCode,
		Element:      result.Element,
		EnText:       result.EnText,
		Emoji:        result.Emoji,
		AudioB64:     result.AudioB64,
	}
}

func (e CacheEntry) Key() CombinationKey {
	return CombinationKey{Element1: e.Element1, Element2: e.Element2, LanguageCode: e.LanguageCode}
}

func (e CacheEntry) Result() Result {
	return Result{
		Element:  e.Element,
		EnText:   e.EnText,
		Emoji:    e.Emoji,
		AudioB64: e.AudioB64,
	}
}

// InitialElementAudio holds the pronunciation of a starter element in one language.
type InitialElementAudio struct {
	ID           int64     `db:"id"`
	ElementKey   string    `db:"element_key"`
	LanguageCode string    `db:"language_code"`
	ElementName  string    `db:"element_name"`
	AudioB64     *string   `db:"audio_b64"`
	CreatedAt    time.Time `db:"created_at"`
}

// ErrorResult is returned when the LLM could not be reached. It is never cached.
func ErrorResult() Result {
	return Result{Element: "Error", EnText: "Error", Emoji: "⚠️"}
}

// MalformedResult replaces an LLM answer that could not be parsed.
func MalformedResult() Result {
	return Result{Element: "trash", EnText: "trash", Emoji: "❓"}
}
