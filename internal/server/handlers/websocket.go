// internal/server/handlers/websocket.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
)

// Message types exchanged over the analysis socket
const (
	MessageAnalyze          = "analyze"
	MessageValidationFailed = "validation_failed"
	MessageAnalyzing        = "analyzing"
	MessageComplete         = "complete"
	MessageError            = "error"
)

// AnalysisInProgressMessage rejects an analyze request while one is running
const AnalysisInProgressMessage = "An analysis is already in progress."

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: maxBodyBytes,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS middleware
		return true
	},
}

type clientMessage struct {
	Type  string        `json:"type"`
	Input listing.Input `json:"input"`
}

type serverMessage struct {
	Type      string              `json:"type"`
	SessionID string              `json:"sessionId,omitempty"`
	Report    *listing.Report     `json:"report,omitempty"`
	Fields    listing.FieldErrors `json:"fields,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// analysisClient is one connected analysis socket
type analysisClient struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	handler   *AnalysisHandler
	config    WebSocketConfig
	logger    logger.Logger

	// busy is set while an analysis runs; one per connection
	busy atomic.Bool

	// ctx is cancelled when the peer goes away; in-flight analyses stop with it
	ctx    context.Context
	cancel context.CancelFunc
}

// AnalysisWebSocket streams analysis progress to the client. Results are
// stored in the same session the HTTP endpoints read from.
func (h *AnalysisHandler) AnalysisWebSocket(w http.ResponseWriter, r *http.Request) {
	sid, cookie := ensureSession(r, h.cookies)

	var header http.Header
	if cookie != nil {
		header = http.Header{}
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		h.logger.Warn("Failed to upgrade to WebSocket", logger.Error(err))
		return
	}

	// The request context ends when this handler returns
	ctx, cancel := context.WithCancel(context.Background())

	client := &analysisClient{
		conn:      conn,
		send:      make(chan []byte, 16),
		sessionID: sid,
		handler:   h,
		config:    DefaultWebSocketConfig(),
		logger:    h.logger.With(logger.String("session_id", sid)),
		ctx:       ctx,
		cancel:    cancel,
	}

	go client.writePump()
	go client.readPump()

	client.logger.Debug("WebSocket connection opened")
}

// readPump reads client requests until the connection fails
func (c *analysisClient) readPump() {
	defer func() {
		c.cancel()
		c.conn.Close()
		c.logger.Debug("WebSocket connection closed")
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket error", logger.Error(err))
			}
			return
		}

		c.processIncomingMessage(message)
	}
}

// writePump serializes outgoing messages and keeps the connection alive
func (c *analysisClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processIncomingMessage dispatches a client request
func (c *analysisClient) processIncomingMessage(message []byte) {
	var msg clientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Debug("Failed to parse WebSocket message", logger.Error(err))
		c.queue(serverMessage{Type: MessageError, Error: "Invalid message"})
		return
	}

	switch msg.Type {
	case MessageAnalyze:
		if fields := c.handler.validate(msg.Input); fields != nil {
			c.queue(serverMessage{Type: MessageValidationFailed, Fields: fields})
			return
		}

		if !c.busy.CompareAndSwap(false, true) {
			c.queue(serverMessage{Type: MessageError, Error: AnalysisInProgressMessage})
			return
		}

		c.queue(serverMessage{Type: MessageAnalyzing})
		go c.analyze(msg.Input)

	default:
		c.logger.Debug("Unknown message type", logger.String("type", msg.Type))
		c.queue(serverMessage{Type: MessageError, Error: "Unsupported message type"})
	}
}

func (c *analysisClient) analyze(input listing.Input) {
	report, err := c.handler.run(c.ctx, c.sessionID, input)
	c.busy.Store(false)
	if err != nil {
		c.queue(serverMessage{Type: MessageError, Error: AnalysisFailedMessage})
		return
	}

	c.queue(serverMessage{
		Type:      MessageComplete,
		SessionID: c.sessionID,
		Report:    report,
	})
}

// queue hands a message to writePump unless the connection is gone
func (c *analysisClient) queue(msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("Failed to marshal WebSocket message", logger.Error(err))
		return
	}

	select {
	case c.send <- data:
	case <-c.ctx.Done():
	}
}
