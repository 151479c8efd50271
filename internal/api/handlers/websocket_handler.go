// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Maximum wait for the next message from the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub
	Log *slog.Logger
}

// ServeWs subscribes the connection to events for ?email=.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email query parameter is required"})
		return
	}
	log := requestLog(h.Log, c).With(slog.String("email", email))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", sl.Err(err))
		return
	}

	h.Hub.Register(email, conn)

	defer func() {
		h.Hub.Unregister(email, conn)
		conn.Close()
	}()

	// Each client PING extends the read deadline; gorilla answers with PONG itself.
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("unexpected websocket close", sl.Err(err))
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
