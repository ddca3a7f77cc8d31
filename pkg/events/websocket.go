package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// Message is the JSON document sent to WebSocket clients for every event.
type Message struct {
	Event   string `json:"event" example:"sandbox.changed"`
	Payload any    `json:"payload"`
}

// WebSocket forwards all events of a Bus to connected WebSocket clients.
type WebSocket struct {
	m   *melody.Melody
	bus *Bus
	sub Subscription
}

// NewWebSocket creates the bridge and subscribes it to all events.
func NewWebSocket(bus *Bus) *WebSocket {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		log.Debug().Str("remote", s.Request.RemoteAddr).Msg("event client connected")
	})

	m.HandleDisconnect(func(s *melody.Session) {
		log.Debug().Str("remote", s.Request.RemoteAddr).Msg("event client disconnected")
	})

	m.HandleError(func(_ *melody.Session, err error) {
		log.Warn().Err(err).Msg("event client error")
	})

	ws := &WebSocket{m: m, bus: bus}
	ws.sub = bus.On(Wildcard, ws.broadcast)
	return ws
}

func (ws *WebSocket) broadcast(name string, payload any) {
	msg, err := json.Marshal(Message{Event: name, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("event", name).Msg("could not encode event")
		return
	}

	if err := ws.m.Broadcast(msg); err != nil && !errors.Is(err, melody.ErrClosed) {
		log.Warn().Err(err).Str("event", name).Msg("could not broadcast event")
	}
}

// ServeHTTP upgrades the request to a WebSocket connection.
func (ws *WebSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := ws.m.HandleRequest(w, r); err != nil {
		log.Warn().Err(err).Msg("failed to upgrade websocket")
	}
}

// Sessions returns the number of connected clients.
func (ws *WebSocket) Sessions() int {
	return ws.m.Len()
}

// Close unsubscribes from the bus and disconnects all clients.
func (ws *WebSocket) Close() error {
	ws.bus.Off(ws.sub)
	return ws.m.Close()
}
