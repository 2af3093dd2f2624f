// Package translation resolves element keys to display names per language.
package translation

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the language every element must have a name in.
const DefaultLanguage = "en-US"

var supportedLanguages = []string{
	"en-US",
	"es-ES",
	"fr-FR",
	"de-DE",
	"it-IT",
	"pt-BR",
	"ja-JP",
	"ko-KR",
	"zh-CN",
}

// SupportedLanguages returns the languages the game is played in.
func SupportedLanguages() []string {
	return slices.Clone(supportedLanguages)
}

// IsSupported reports whether languageCode is one of SupportedLanguages.
func IsSupported(languageCode string) bool {
	return slices.Contains(supportedLanguages, languageCode)
}

//go:embed elements.yaml
var elementsYAML []byte

// StarterElement is one of the elements every game starts with.
type StarterElement struct {
	ID    string
	Emoji string
}

var starterElements = []StarterElement{
	{ID: "water", Emoji: "💧"},
	{ID: "fire", Emoji: "🔥"},
	{ID: "wind", Emoji: "💨"},
	{ID: "earth", Emoji: "🌍"},
}

func StarterElements() []StarterElement {
	return slices.Clone(starterElements)
}

// InitialElement is a starter element named for one language.
type InitialElement struct {
	ID string `json:"id"`
	// Text is "translated (English)" when the two names differ.
	Text   string `json:"text"`
	EnText string `json:"en_text"`
	Emoji  string `json:"emoji"`
}

// Table maps element keys to display names per language.
type Table struct {
	elements map[string]map[string]string
}

type tableFile struct {
	Elements map[string]map[string]string `yaml:"elements"`
}

// Load reads a table from YAML. Keys are lower-cased and every element needs an en-US name.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}

	elements := make(map[string]map[string]string, len(file.Elements))
	for key, names := range file.Elements {
		if names[DefaultLanguage] == "" {
			return nil, fmt.Errorf("element %q has no %s name", key, DefaultLanguage)
		}
		elements[strings.ToLower(key)] = names
	}
	return &Table{elements: elements}, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	table, err := Load(bytes.NewReader(elementsYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded element table: %v", err))
	}
	return table
})

// Default returns the table embedded in the binary.
func Default() *Table {
	return defaultTable()
}

// ElementName returns the display name of key in languageCode.
// An unknown key is returned with its first letter upper-cased,
// a missing language falls back to en-US, and a missing en-US name to the key itself.
func (t *Table) ElementName(key, languageCode string) string {
	names, ok := t.elements[strings.ToLower(key)]
	if !ok {
		slog.Default().Warn("no translation for element", "key", key, "language", languageCode)
		return capitalize(key)
	}
	if name := names[languageCode]; name != "" {
		return name
	}
	slog.Default().Warn("no translation for language, using English",
		"key", key,
		"language", languageCode,
	)
	if name := names[DefaultLanguage]; name != "" {
		return name
	}
	return key
}

// Lookup returns the name of key in exactly languageCode, without fallbacks.
func (t *Table) Lookup(key, languageCode string) (string, bool) {
	names, ok := t.elements[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	name, ok := names[languageCode]
	return name, ok && name != ""
}

func (t *Table) Has(key string) bool {
	_, ok := t.elements[strings.ToLower(key)]
	return ok
}

// Keys returns every element key in lexical order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.elements))
	for key := range t.elements {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Languages returns the languages key has a name in, in lexical order.
func (t *Table) Languages(key string) []string {
	names := t.elements[strings.ToLower(key)]
	languages := make([]string, 0, len(names))
	for language := range names {
		languages = append(languages, language)
	}
	slices.Sort(languages)
	return languages
}

// InitialElements names the starter elements for languageCode.
func (t *Table) InitialElements(languageCode string) []InitialElement {
	elements := make([]InitialElement, 0, len(starterElements))
	for _, starter := range starterElements {
		translated := t.ElementName(starter.ID, languageCode)
		english := t.ElementName(starter.ID, DefaultLanguage)

		text := translated
		if languageCode != DefaultLanguage && translated != english {
			text = fmt.Sprintf("%s (%s)", translated, english)
		}
		elements = append(elements, InitialElement{
			ID:     starter.ID,
			Text:   text,
			EnText: english,
			Emoji:  starter.Emoji,
		})
	}
	return elements
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
