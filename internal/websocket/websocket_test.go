package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastWithNoConnections(t *testing.T) {
	wsm := NewWebSocketManager()

	assert.Equal(t, 0, wsm.GetConnectionCount())
	assert.NotPanics(t, func() {
		wsm.BroadcastEnhancementComplete(10, 20)
		wsm.BroadcastAnalyticsUpdate(map[string]int{"totalPaths": 3})
		wsm.BroadcastLogMessage("info", "no one is listening")
	})
}

func TestConnectionLifecycle(t *testing.T) {
	wsm := NewWebSocketManager()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsm.HandleConnection(w, r)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// A ping round trip proves the connection is registered and served.
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	var reply WSMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "pong", reply.Type)
	assert.Equal(t, 1, wsm.GetConnectionCount())
}
