package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	socketWriteWait  = 10 * time.Second
	socketPongWait   = 60 * time.Second
	socketPingPeriod = socketPongWait * 9 / 10
	socketMaxMessage = 4096
	socketSendBuffer = 16
)

// Socket message types.
const (
	MessageTypeCreateElement = "create-element"

	EventMessageResponse = "message_response"
	EventMessageError    = "message_error"
)

type SocketMessage struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type SocketResponse struct {
	Event     string `json:"event"`
	Type      string `json:"type,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

type socketConn struct {
	ws   *websocket.Conn
	send chan SocketResponse
	// done is closed when the writer stops.
	done chan struct{}
}

// ServeSocket upgrades to a WebSocket that accepts create-element messages.
// Each message is answered on its own, so a slow combination does not block the next one.
func (h *Handler) ServeSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: h.checkOrigin,
	}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	conn := &socketConn{
		ws:   ws,
		send: make(chan SocketResponse, socketSendBuffer),
		done: make(chan struct{}),
	}

	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		conn.writePump(ctx)
	}()

	var handlers sync.WaitGroup
	h.readPump(ctx, conn, &handlers)

	cancel()
	handlers.Wait()
	close(conn.send)
	writer.Wait()
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || h.origins[origin]
}

func (h *Handler) readPump(ctx context.Context, conn *socketConn, handlers *sync.WaitGroup) {
	conn.ws.SetReadLimit(socketMaxMessage)
	_ = conn.ws.SetReadDeadline(time.Now().Add(socketPongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(socketPongWait))
	})

	for {
		_, payload, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger(ctx).Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}
		var message SocketMessage
		if err := json.Unmarshal(payload, &message); err != nil {
			logger(ctx).Debug("ignoring malformed websocket message", "error", err)
			conn.reply(ctx, SocketResponse{
				Event:   EventMessageError,
				Message: "Message must be a JSON object",
			})
			continue
		}

		switch message.Type {
		case MessageTypeCreateElement:
			handlers.Add(1)
			go func() {
				defer handlers.Done()
				conn.reply(ctx, h.handleCreateElement(ctx, message))
			}()
		case "":
			conn.reply(ctx, SocketResponse{
				Event:     EventMessageError,
				RequestID: message.RequestID,
				Message:   "Message type is required",
			})
		default:
			conn.reply(ctx, SocketResponse{
				Event:     EventMessageError,
				Type:      message.Type,
				RequestID: message.RequestID,
				Message:   "Unknown message type: " + message.Type,
			})
		}
	}
}

func (h *Handler) handleCreateElement(ctx context.Context, message SocketMessage) SocketResponse {
	response := SocketResponse{
		Event:     EventMessageResponse,
		Type:      MessageTypeCreateElement,
		RequestID: message.RequestID,
	}

	var request CombineRequest
	if len(message.Data) == 0 || json.Unmarshal(message.Data, &request) != nil {
		response.Message = "Both element1 and element2 are required"
		return response
	}
	if err := h.validateCombineRequest(&request); err != nil {
		response.Message = err.Error()
		return response
	}

	response.Success = true
	response.Message = "Element created successfully"
	response.Data = CombineResponse{
		Result:      h.combine(ctx, request),
		Combination: combination(request),
	}
	return response
}

func (c *socketConn) reply(ctx context.Context, response SocketResponse) {
	select {
	case c.send <- response:
	case <-c.done:
	case <-ctx.Done():
	}
}

func (c *socketConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(socketPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
		close(c.done)
	}()

	for {
		select {
		case response, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteJSON(response); err != nil {
				logger(ctx).Warn("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
