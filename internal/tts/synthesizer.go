// Package tts turns element names into pronunciation audio.
package tts

import (
	"context"
	"errors"
)

//go:generate mockgen -source=synthesizer.go -destination=../mocks/tts/mock_synthesizer.go -package=mock_tts

// ErrDisabled is returned by the Disabled synthesizer.
var ErrDisabled = errors.New("text-to-speech is disabled")

// Synthesizer renders text spoken in languageCode as base64-encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, languageCode, text string) (string, error)
}

// Disabled is used when no text-to-speech backend is configured.
type Disabled struct{}

func (Disabled) Synthesize(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
