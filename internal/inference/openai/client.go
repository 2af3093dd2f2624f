package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/avast/retry-go"
	"github.com/lingocraft/lingocraft/internal/inference"
	"resty.dev/v3"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient creates a client for an OpenAI-compatible chat completions API.
// A zero timeout leaves requests bounded only by their context.
func NewClient(baseURL, apiKey, model string, retryAttempts uint, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
		retryDelay:       500 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	// Temperature is always sent; zero keeps answers deterministic.
	Temperature         float32         `json:"temperature"`
	TopP                float32         `json:"top_p,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ResponseError is a non-2xx answer from the API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// isRetryableError reports transport failures worth another attempt:
// server errors, rate limiting and broken connections.
// A reply the model got wrong is never retried here.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.StatusCode == http.StatusTooManyRequests || responseErr.StatusCode >= http.StatusInternalServerError
	}

	// Every *url.Error is a net.Error, so only timeouts and temporary DNS failures count here.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "EOF")
}

// CombineElements implements the inference.Client interface
func (client *Client) CombineElements(
	ctx context.Context,
	params inference.CombineElementsRequest,
) (string, error) {
	var content string
	if err := retry.Do(
		func() error {
			response, err := client.combineElements(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Warn("retrying chat completion",
					"element1", params.Element1,
					"element2", params.Element2,
					"error", err,
				)
				return err
			}
			content = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return content, nil
}

func (client *Client) getRequestBody(params inference.CombineElementsRequest) (ChatCompletionRequest, error) {
	messages := []Message{
		{
			Role:    RoleSystem,
			Content: inference.CombineElementsSystemPrompt,
		},
	}

	for _, example := range inference.CombineElementsExamples() {
		assistantJSON, err := json.Marshal(example.AssistantMessage)
		if err != nil {
			return ChatCompletionRequest{}, fmt.Errorf("failed to marshal example assistant answer: %w", err)
		}
		messages = append(messages,
			Message{
				Role:    RoleUser,
				Content: example.UserMessage,
			},
			Message{
				Role:    RoleAssistant,
				Content: string(assistantJSON),
			},
		)
	}

	messages = append(messages, Message{
		Role:    RoleUser,
		Content: inference.CombineElementsUserMessage(params),
	})

	return ChatCompletionRequest{
		Model:               client.model,
		Temperature:         0,
		TopP:                1,
		MaxCompletionTokens: 1024,
		ResponseFormat:      &ResponseFormat{Type: "json_object"},
		Messages:            messages,
	}, nil
}

func (client *Client) combineElements(
	ctx context.Context,
	params inference.CombineElementsRequest,
) (string, error) {
	requestBody, err := client.getRequestBody(params)
	if err != nil {
		return "", fmt.Errorf("client.getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	slog.Default().Debug("combineElements response",
		"element1", params.Element1,
		"element2", params.Element2,
		"language", params.LanguageCode,
		"response", content,
	)
	return content, nil
}
