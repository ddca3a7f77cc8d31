// Package events implements a fire-and-forget publish/subscribe bus used to
// tell UI surfaces that data changed.
package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Event names emitted by the core.
const (
	MonthCarriedForward = "month.carried_forward"
	SandboxChanged      = "sandbox.changed"
	ScenariosChanged    = "scenarios.changed"
)

// Handler receives the payload of an event.
type Handler func(name string, payload any)

// Subscription identifies a registered handler so that it can be removed.
type Subscription struct {
	name string
	id   uint64
}

// Bus dispatches events to subscribers.
//
// Emitting never blocks on or fails because of subscribers: each handler
// runs on its own goroutine and panics are recovered and logged.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string]map[uint64]Handler
	wg       sync.WaitGroup
}

// Wildcard subscribes a handler to all events.
const Wildcard = "*"

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[uint64]Handler),
	}
}

// On registers the handler for the event name.
func (b *Bus) On(name string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.handlers[name] == nil {
		b.handlers[name] = make(map[uint64]Handler)
	}
	b.handlers[name][b.nextID] = h

	return Subscription{name: name, id: b.nextID}
}

// Off removes a handler. Removing a handler twice is a no-op.
func (b *Bus) Off(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers[s.name], s.id)
	if len(b.handlers[s.name]) == 0 {
		delete(b.handlers, s.name)
	}
}

// Emit publishes the event to all handlers registered for it and to all
// wildcard handlers. A nil Bus discards all events.
func (b *Bus) Emit(name string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	targets := make([]Handler, 0, len(b.handlers[name])+len(b.handlers[Wildcard]))
	for _, h := range b.handlers[name] {
		targets = append(targets, h)
	}
	for _, h := range b.handlers[Wildcard] {
		targets = append(targets, h)
	}
	b.mu.RUnlock()

	for _, h := range targets {
		b.wg.Add(1)
		go b.dispatch(h, name, payload)
	}
}

func (b *Bus) dispatch(h Handler, name string, payload any) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("event", name).Interface("panic", r).Msg("event handler panicked")
		}
	}()

	h(name, payload)
}

// Wait blocks until all handlers that have been started returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
