package element

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrMalformedResponse is returned when an LLM answer is not a usable combination.
var ErrMalformedResponse = errors.New("malformed combination response")

// ParsedElement is a validated LLM answer.
type ParsedElement struct {
	Element string
	EnText  string
	Emoji   string
}

func (p ParsedElement) Result() Result {
	return Result{
		Element: p.Element,
		EnText:  p.EnText,
		Emoji:   p.Emoji,
	}
}

type combinationPayload struct {
	Element *string `json:"element"`
	EnText  *string `json:"en_text"`
	Emoji   *string `json:"emoji"`
}

// ParseCombination validates the raw text returned by the LLM.
// The text must be a single JSON object, optionally wrapped in a Markdown code fence,
// with a non-empty "element" and an "emoji" of exactly one grapheme cluster.
// "en_text" defaults to "element" when it is absent or blank.
func ParseCombination(raw string) (ParsedElement, error) {
	content := stripCodeFence(raw)
	if content == "" {
		return ParsedElement{}, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var payload combinationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return ParsedElement{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if payload.Element == nil || strings.TrimSpace(*payload.Element) == "" {
		return ParsedElement{}, fmt.Errorf("%w: element is missing", ErrMalformedResponse)
	}
	element := strings.TrimSpace(*payload.Element)

	if payload.Emoji == nil {
		return ParsedElement{}, fmt.Errorf("%w: emoji is missing", ErrMalformedResponse)
	}
	emoji := strings.TrimSpace(*payload.Emoji)
	if count := uniseg.GraphemeClusterCount(emoji); count != 1 {
		return ParsedElement{}, fmt.Errorf("%w: emoji %q has %d graphemes", ErrMalformedResponse, emoji, count)
	}

	enText := element
	if payload.EnText != nil && strings.TrimSpace(*payload.EnText) != "" {
		enText = strings.TrimSpace(*payload.EnText)
	}

	return ParsedElement{
		Element: element,
		EnText:  enText,
		Emoji:   emoji,
	}, nil
}

func stripCodeFence(raw string) string {
	content := strings.TrimSpace(raw)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	// drop the info string, e.g. ```json
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	} else {
		content = ""
	}
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
