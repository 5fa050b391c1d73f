package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/hub"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChangeAPI streams venue file changes to websocket clients.
type ChangeAPI struct {
	hub    *hub.Hub
	logger logger.Interface
}

// NewChangeAPI creates a new ChangeAPI.
func NewChangeAPI(hub *hub.Hub, logger logger.Interface) *ChangeAPI {
	return &ChangeAPI{
		hub:    hub,
		logger: logger,
	}
}

// Stream handles GET /ws. Each change is sent as one JSON text message.
func (a *ChangeAPI) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.WarnContext(ctx, "websocket upgrade failed", logger.NewField("error", err.Error()))
		return
	}
	defer conn.Close()

	changes, unsubscribe := a.hub.Subscribe()
	defer unsubscribe()

	// The read pump only watches for the client going away.
	gone := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case change, ok := <-changes:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(change); err != nil {
				a.logger.ErrorContext(ctx, errors.NewTracer("websocket write failed").Wrap(err))
				return
			}
		}
	}
}
