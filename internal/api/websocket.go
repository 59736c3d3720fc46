package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
	"github.com/svg-loader/backend/internal/session"
)

// WebSocket message types for the loader control protocol
const (
	// Client -> Server messages
	MsgTypeLoaderCreate  = "loader:create"
	MsgTypeLoaderGet     = "loader:get"
	MsgTypeLoaderShow    = "loader:show"
	MsgTypeLoaderHide    = "loader:hide"
	MsgTypeLoaderToggle  = "loader:toggle"
	MsgTypeLoaderDestroy = "loader:destroy"
	MsgTypePing          = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeState     = "state"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope of every WebSocket message. ID names the loader
// instance for lifecycle messages.
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSErrorResponse is the payload of an error message
type WSErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WebSocketHandler drives live loader instances over a WebSocket
type WebSocketHandler struct {
	sessions     *session.Manager
	resolver     optionResolver
	upgrader     websocket.Upgrader
	maxMessageKB int
}

// NewWebSocketHandler creates a new WebSocket control handler
func NewWebSocketHandler(sessions *session.Manager, presets *preset.Registry, strict bool, maxShapes, maxMessageKB int) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		resolver: newOptionResolver(presets, strict, maxShapes),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
		maxMessageKB: maxMessageKB,
	}
}

// HandleWebSocket upgrades the connection and serves control messages until it closes
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	logger := c.Logger()
	if wsh.maxMessageKB > 0 {
		ws.SetReadLimit(int64(wsh.maxMessageKB) * 1024)
	}

	logger.Infoj(log.JSON{"event": "ws_connected", "remote": c.RealIP()})
	wsh.sendMessage(ws, logger, WSMessage{Type: MsgTypeConnected})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnj(log.JSON{"event": "ws_error", "error": err.Error()})
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			wsh.sendMessage(ws, logger, WSMessage{Type: MsgTypePong})
		case MsgTypeLoaderCreate:
			wsh.handleCreate(ws, logger, msg)
		case MsgTypeLoaderGet:
			state, ok := wsh.sessions.Get(msg.ID)
			if !ok {
				wsh.sendError(ws, logger, sessionError(session.ErrNotFound, msg.ID))
				continue
			}
			wsh.sendState(ws, logger, state)
		case MsgTypeLoaderShow:
			wsh.handleLifecycle(ws, logger, msg, wsh.sessions.Show)
		case MsgTypeLoaderHide:
			wsh.handleLifecycle(ws, logger, msg, wsh.sessions.Hide)
		case MsgTypeLoaderToggle:
			wsh.handleLifecycle(ws, logger, msg, wsh.sessions.Toggle)
		case MsgTypeLoaderDestroy:
			wsh.handleLifecycle(ws, logger, msg, wsh.sessions.Destroy)
		default:
			wsh.sendError(ws, logger, &APIError{Code: "INVALID_TYPE", Message: "Unknown message type: " + msg.Type})
		}
	}

	logger.Infoj(log.JSON{"event": "ws_disconnected"})
	return nil
}

func (wsh *WebSocketHandler) handleCreate(ws *websocket.Conn, logger echo.Logger, msg WSMessage) {
	var req CreateInstanceRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			wsh.sendError(ws, logger, NewBadRequestError("invalid create payload", err))
			return
		}
	}

	state, apiErr := createInstance(wsh.sessions, wsh.resolver, req)
	if apiErr != nil {
		wsh.sendError(ws, logger, apiErr)
		return
	}
	wsh.sendState(ws, logger, state)
}

func (wsh *WebSocketHandler) handleLifecycle(ws *websocket.Conn, logger echo.Logger, msg WSMessage, op func(string) (*models.InstanceState, error)) {
	state, err := op(msg.ID)
	if err != nil {
		wsh.sendError(ws, logger, sessionError(err, msg.ID))
		return
	}
	wsh.sendState(ws, logger, state)
}

func (wsh *WebSocketHandler) sendState(ws *websocket.Conn, logger echo.Logger, state *models.InstanceState) {
	wsh.sendMessage(ws, logger, WSMessage{
		Type:    MsgTypeState,
		ID:      state.ID,
		Payload: mustJSON(state),
	})
}

func (wsh *WebSocketHandler) sendMessage(ws *websocket.Conn, logger echo.Logger, msg WSMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := ws.WriteJSON(msg); err != nil {
		logger.Warnj(log.JSON{"event": "ws_send_failed", "error": err.Error()})
	}
}

func (wsh *WebSocketHandler) sendError(ws *websocket.Conn, logger echo.Logger, apiErr *APIError) {
	wsh.sendMessage(ws, logger, WSMessage{
		Type: MsgTypeError,
		Payload: mustJSON(WSErrorResponse{
			Message: apiErr.Message,
			Code:    apiErr.Code,
		}),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
