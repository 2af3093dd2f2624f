// Package google synthesizes speech with Google Cloud Text-to-Speech.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"
)

type Config struct {
	// APIKey takes precedence over CredentialsFile.
	APIKey          string
	CredentialsFile string
	Endpoint        string
	// AudioEncoding is one of MP3, OGG_OPUS or LINEAR16. Defaults to MP3.
	AudioEncoding string
	Timeout       time.Duration
}

type Synthesizer struct {
	service       *texttospeech.Service
	audioEncoding string
	timeout       time.Duration
}

// NewSynthesizer creates a synthesizer. Extra client options are appended after the ones derived from cfg.
func NewSynthesizer(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Synthesizer, error) {
	var clientOptions []option.ClientOption
	switch {
	case cfg.APIKey != "":
		clientOptions = append(clientOptions, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		clientOptions = append(clientOptions, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, option.WithEndpoint(cfg.Endpoint))
	}
	clientOptions = append(clientOptions, opts...)

	service, err := texttospeech.NewService(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("texttospeech.NewService > %w", err)
	}

	audioEncoding := cfg.AudioEncoding
	if audioEncoding == "" {
		audioEncoding = "MP3"
	}
	return &Synthesizer{
		service:       service,
		audioEncoding: audioEncoding,
		timeout:       cfg.Timeout,
	}, nil
}

// Synthesize returns the audio content as base64, the way the API encodes it.
func (s *Synthesizer) Synthesize(ctx context.Context, languageCode, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || languageCode == "" {
		return "", errors.New("language code and text are required")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := s.service.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: languageCode,
			SsmlGender:   "NEUTRAL",
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: s.audioEncoding},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("synthesize %q in %s: %w", text, languageCode, err)
	}
	if response.AudioContent == "" {
		return "", fmt.Errorf("synthesize %q in %s: empty audio content", text, languageCode)
	}

	slog.Default().Debug("synthesized speech",
		"language", languageCode,
		"text", text,
		"bytes", len(response.AudioContent),
	)
	return response.AudioContent, nil
}
