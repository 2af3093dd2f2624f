package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	mu     sync.Mutex
	calls  int
	answer string
}

func (c *countingClient) CombineElements(_ context.Context, _ inference.CombineElementsRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.answer, nil
}

func (c *countingClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func dialSocket(t *testing.T, router http.Handler, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

func readResponse(t *testing.T, conn *websocket.Conn) SocketResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var response map[string]any
	require.NoError(t, conn.ReadJSON(&response))

	got := SocketResponse{
		Data: response["data"],
	}
	got.Event, _ = response["event"].(string)
	got.Type, _ = response["type"].(string)
	got.RequestID, _ = response["requestId"].(string)
	got.Success, _ = response["success"].(bool)
	got.Message, _ = response["message"].(string)
	return got
}

func TestServeSocket(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    SocketResponse
	}{
		{
			name:    "create-element",
			message: `{"type":"create-element","requestId":"r1","data":{"element1":"Fire","element2":"Water","languageCode":"en-US"}}`,
			want: SocketResponse{
				Event:     EventMessageResponse,
				Type:      MessageTypeCreateElement,
				RequestID: "r1",
				Success:   true,
				Message:   "Element created successfully",
				Data: map[string]any{
					"element":     "Steam",
					"en_text":     "Steam",
					"emoji":       "💨",
					"audio_b64":   "c3RlYW0=",
					"combination": "Fire + Water",
				},
			},
		},
		{
			name:    "create-element without data",
			message: `{"type":"create-element","requestId":"r2"}`,
			want: SocketResponse{
				Event:     EventMessageResponse,
				Type:      MessageTypeCreateElement,
				RequestID: "r2",
				Message:   "Both element1 and element2 are required",
			},
		},
		{
			name:    "create-element with a missing element",
			message: `{"type":"create-element","requestId":"r3","data":{"element1":"fire"}}`,
			want: SocketResponse{
				Event:     EventMessageResponse,
				Type:      MessageTypeCreateElement,
				RequestID: "r3",
				Message:   "element2 is a required field",
			},
		},
		{
			name:    "unknown type",
			message: `{"type":"delete-element","requestId":"r4"}`,
			want: SocketResponse{
				Event:     EventMessageError,
				Type:      "delete-element",
				RequestID: "r4",
				Message:   "Unknown message type: delete-element",
			},
		},
		{
			name:    "not json",
			message: `not json`,
			want: SocketResponse{
				Event:   EventMessageError,
				Message: "Message must be a JSON object",
			},
		},
		{
			name:    "missing type",
			message: `{"requestId":"r5"}`,
			want: SocketResponse{
				Event:     EventMessageError,
				RequestID: "r5",
				Message:   "Message type is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubResolver{result: steamResult()}, element.NewMemoryAudioRepository())
			conn, _, err := dialSocket(t, router, "http://localhost:3000")
			require.NoError(t, err)
			defer func() { _ = conn.Close() }()

			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.message)))
			assert.Equal(t, tt.want, readResponse(t, conn))
		})
	}
}

func TestServeSocket_MalformedMessageKeepsConnection(t *testing.T) {
	router := newTestRouter(t, &stubResolver{result: steamResult()}, element.NewMemoryAudioRepository())
	conn, _, err := dialSocket(t, router, "")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, SocketResponse{
		Event:   EventMessageError,
		Message: "Message must be a JSON object",
	}, readResponse(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"create-element","requestId":"after","data":{"element1":"fire","element2":"water"}}`)))
	response := readResponse(t, conn)
	assert.True(t, response.Success)
	assert.Equal(t, "after", response.RequestID)
}

func TestServeSocket_ConcurrentMessages(t *testing.T) {
	repository := element.NewMemoryCacheRepository()
	client := &countingClient{answer: `{"element":"Steam","en_text":"Steam","emoji":"💨"}`}
	resolver := element.NewResolver(repository, client, nil, nil, element.ResolverOptions{DefaultLanguage: "en-US"})
	router := newTestRouter(t, resolver, element.NewMemoryAudioRepository())

	conn, _, err := dialSocket(t, router, "")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	requestIDs := []string{"a", "b", "c"}
	for _, id := range requestIDs {
		require.NoError(t, conn.WriteJSON(map[string]any{
			"type":      MessageTypeCreateElement,
			"requestId": id,
			"data":      map[string]string{"element1": "water", "element2": "fire"},
		}))
	}

	var got []string
	for range requestIDs {
		response := readResponse(t, conn)
		assert.True(t, response.Success)
		got = append(got, response.RequestID)
	}
	assert.ElementsMatch(t, requestIDs, got)
	assert.Equal(t, 1, client.Calls())
	assert.Len(t, repository.Entries(), 1)
}

func TestServeSocket_RejectsUnknownOrigin(t *testing.T) {
	router := newTestRouter(t, &stubResolver{}, element.NewMemoryAudioRepository())

	_, resp, err := dialSocket(t, router, "https://evil.example.com")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
