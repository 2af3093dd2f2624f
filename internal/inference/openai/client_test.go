package openai

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/lingocraft/lingocraft/internal/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	mockResponse := ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   "openai/gpt-oss-20b",
		Choices: []Choice{
			{
				Index:        0,
				Message:      ChoiceMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	require.NoError(t, json.NewEncoder(w).Encode(mockResponse))
}

func TestClient_CombineElements(t *testing.T) {
	request := inference.CombineElementsRequest{
		Element1:     "fire",
		Element2:     "water",
		LanguageCode: "es-ES",
	}

	tests := []struct {
		name              string
		maxRetryAttempts  uint
		mockServerHandler func(t *testing.T, calls int32, w http.ResponseWriter, r *http.Request)

		wantContent     string
		wantCalls       int32
		wantError       bool
		wantErrorString string
	}{
		{
			name:             "returns raw content",
			maxRetryAttempts: 2,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var rawBody map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
				assert.Equal(t, "openai/gpt-oss-20b", rawBody["model"])
				temperature, ok := rawBody["temperature"]
				require.True(t, ok, "temperature must be sent even when zero")
				assert.Equal(t, float64(0), temperature)
				assert.Equal(t, map[string]any{"type": "json_object"}, rawBody["response_format"])

				messages := rawBody["messages"].([]any)
				first := messages[0].(map[string]any)
				assert.Equal(t, "system", first["role"])
				last := messages[len(messages)-1].(map[string]any)
				assert.Equal(t, "user", last["role"])
				assert.Equal(t, "Combine these two elements: fire + water\nLanguage: Spanish (es-ES)", last["content"])

				writeCompletion(t, w, `{"element":"Vapor","en_text":"Steam","emoji":"💨"}`)
			},
			wantContent: `{"element":"Vapor","en_text":"Steam","emoji":"💨"}`,
			wantCalls:   1,
		},
		{
			name:             "content the model got wrong is returned as is",
			maxRetryAttempts: 2,
			mockServerHandler: func(t *testing.T, _ int32, w http.ResponseWriter, _ *http.Request) {
				writeCompletion(t, w, "I think it is steam")
			},
			wantContent: "I think it is steam",
			wantCalls:   1,
		},
		{
			name:             "server error is retried",
			maxRetryAttempts: 2,
			mockServerHandler: func(t *testing.T, calls int32, w http.ResponseWriter, _ *http.Request) {
				if calls < 3 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				writeCompletion(t, w, `{"element":"Vapor","emoji":"💨"}`)
			},
			wantContent: `{"element":"Vapor","emoji":"💨"}`,
			wantCalls:   3,
		},
		{
			name:             "rate limit exhausts retries",
			maxRetryAttempts: 1,
			mockServerHandler: func(_ *testing.T, _ int32, w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = fmt.Fprint(w, `{"error":"slow down"}`)
			},
			wantCalls:       2,
			wantError:       true,
			wantErrorString: "response error 429",
		},
		{
			name:             "client error is not retried",
			maxRetryAttempts: 3,
			mockServerHandler: func(_ *testing.T, _ int32, w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = fmt.Fprint(w, `{"error":"invalid api key"}`)
			},
			wantCalls:       1,
			wantError:       true,
			wantErrorString: "response error 401",
		},
		{
			name:             "no choices",
			maxRetryAttempts: 0,
			mockServerHandler: func(_ *testing.T, _ int32, w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = fmt.Fprint(w, `{"id":"chatcmpl-123","choices":[]}`)
			},
			wantCalls:       1,
			wantError:       true,
			wantErrorString: "empty response body or choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, calls.Add(1), w, r)
			}))
			defer server.Close()

			client := &Client{
				httpClient: resty.New().
					SetBaseURL(server.URL).
					SetHeader("Authorization", "Bearer test-key").
					SetHeader("Content-Type", "application/json"),
				model:            "openai/gpt-oss-20b",
				maxRetryAttempts: tt.maxRetryAttempts,
				retryDelay:       time.Millisecond,
			}
			defer client.Close()

			gotContent, gotErr := client.CombineElements(context.Background(), request)
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantError {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				return
			}

			require.NoError(t, gotErr)
			assert.Equal(t, tt.wantContent, gotContent)
		})
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "key", "openai/gpt-oss-20b", 2, time.Minute)
	defer client.Close()

	assert.Equal(t, "openai/gpt-oss-20b", client.GetModel())
	assert.Equal(t, uint(2), client.maxRetryAttempts)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: &ResponseError{StatusCode: http.StatusServiceUnavailable}, want: true},
		{name: "rate limited", err: fmt.Errorf("wrapped: %w", &ResponseError{StatusCode: http.StatusTooManyRequests}), want: true},
		{name: "bad request", err: &ResponseError{StatusCode: http.StatusBadRequest}, want: false},
		{name: "network timeout", err: fmt.Errorf("httpClient.Post > %w", timeoutError{}), want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), want: true},
		{name: "request timeout", err: &url.Error{Op: "Post", URL: "https://llm.example.com", Err: timeoutError{}}, want: true},
		{name: "unknown host", err: &url.Error{Op: "Post", URL: "https://llm.example.com", Err: &net.DNSError{Err: "no such host", Name: "llm.example.com", IsNotFound: true}}, want: false},
		{name: "temporary DNS failure", err: &url.Error{Op: "Post", URL: "https://llm.example.com", Err: &net.DNSError{Err: "server misbehaving", Name: "llm.example.com", IsTemporary: true}}, want: true},
		{name: "untrusted certificate", err: &url.Error{Op: "Post", URL: "https://llm.example.com", Err: x509.UnknownAuthorityError{}}, want: false},
		{name: "unsupported scheme", err: &url.Error{Op: "Post", URL: "ftp://llm.example.com", Err: errors.New(`unsupported protocol scheme "ftp"`)}, want: false},
		{name: "reset connection", err: &url.Error{Op: "Post", URL: "https://llm.example.com", Err: syscall.ECONNRESET}, want: true},
		{name: "canceled", err: fmt.Errorf("httpClient.Post > %w", context.Canceled), want: false},
		{name: "other", err: errors.New("empty response body or choices"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
