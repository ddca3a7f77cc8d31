package events_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carryforward/backend/pkg/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketForwardsEvents(t *testing.T) {
	bus := events.NewBus()
	ws := events.NewWebSocket(bus)
	defer ws.Close()

	server := httptest.NewServer(ws)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.Nil(t, err)
	defer conn.Close()

	// The session is registered asynchronously after the upgrade
	require.Eventually(t, func() bool { return ws.Sessions() == 1 }, time.Second, 10*time.Millisecond)

	bus.Emit(events.ScenariosChanged, map[string]string{"name": "Cheaper flat"})

	require.Nil(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.Nil(t, err)

	var msg struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	require.Nil(t, json.Unmarshal(data, &msg))
	assert.Equal(t, events.ScenariosChanged, msg.Event)
	assert.Equal(t, "Cheaper flat", msg.Payload["name"])
}
