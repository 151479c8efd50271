package socket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// serve registers every upgraded connection under the "email" query parameter.
func serve(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		email := r.URL.Query().Get("email")
		hub.Register(email, conn)
		defer func() {
			hub.Unregister(email, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, email string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?email=" + email
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishDeliversEvent(t *testing.T) {
	hub := newTestHub()
	srv := serve(t, hub)
	conn := dial(t, srv, "a@parcelio.dev")

	require.Eventually(t, func() bool { return hub.Connected("a@parcelio.dev") }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("a@parcelio.dev", EventPaymentRecorded, map[string]string{"parcelId": "p1"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	require.Equal(t, EventPaymentRecorded, ev.Event)
	require.Equal(t, "p1", ev.Data["parcelId"])
}

func TestHub_SendToOfflineIsNotAnError(t *testing.T) {
	hub := newTestHub()
	require.NoError(t, hub.Send("nobody@parcelio.dev", []byte("{}")))
	hub.Publish("", EventParcelCreated, nil)
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := newTestHub()
	srv := serve(t, hub)
	conn := dial(t, srv, "b@parcelio.dev")

	require.Eventually(t, func() bool { return hub.Connected("b@parcelio.dev") }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !hub.Connected("b@parcelio.dev") }, 2*time.Second, 10*time.Millisecond)
}
