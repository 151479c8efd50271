package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parcelio-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWs_RequiresEmail(t *testing.T) {
	h := &WebSocketHandler{Hub: socket.NewHub(discardLog), Log: discardLog}

	rec := perform(t, http.MethodGet, "/ws", h.ServeWs, "/ws", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeWs_SubscribesAndReceivesEvents(t *testing.T) {
	hub := socket.NewHub(discardLog)
	h := &WebSocketHandler{Hub: hub, Log: discardLog}

	r := gin.New()
	r.GET("/ws", h.ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?email=ann@example.com"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Connected("ann@example.com") }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("ann@example.com", socket.EventParcelCreated, map[string]string{"_id": "p1"})

	var ev socket.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, socket.EventParcelCreated, ev.Event)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !hub.Connected("ann@example.com") }, 2*time.Second, 10*time.Millisecond)
}
