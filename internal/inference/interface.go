package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	// CombineElements asks the model what two elements make together.
	// It returns the raw message content; validating it is up to the caller.
	CombineElements(ctx context.Context, params CombineElementsRequest) (string, error)
}

// CombineElementsRequest holds the pair to combine and the language of the answer
type CombineElementsRequest struct {
	Element1     string `json:"element1"`
	Element2     string `json:"element2"`
	LanguageCode string `json:"language_code"`
}

// CombineElementsAnswer is the JSON object the model is asked to reply with
type CombineElementsAnswer struct {
	Element string `json:"element"`
	EnText  string `json:"en_text"`
	Emoji   string `json:"emoji"`
}

const (
	DefaultMaxRetryAttempts = 2
)
