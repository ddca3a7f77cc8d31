// Package sandbox implements the what-if planning session.
//
// A session is a copy of the budget of one month that can be edited freely,
// with linear undo and redo, and saved as a named scenario. Editing a session
// never writes to the budget itself.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carryforward/backend/internal/types"
	"github.com/carryforward/backend/pkg/events"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/resolve"
	"github.com/carryforward/backend/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrEntityNotFound  = fmt.Errorf("%w sandbox entity with this id", models.ErrResourceNotFound)
	ErrUnknownKind     = fmt.Errorf("%w sandbox collection named", models.ErrResourceNotFound)
	ErrInvalidID       = fmt.Errorf("%w: invalid sandbox id", models.ErrValidation)
	ErrScenarioCorrupt = errors.New("the data of the scenario is corrupt")
)

// DefaultUndoLimit is the number of undo steps kept unless configured otherwise.
const DefaultUndoLimit = 100

var operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "sandbox_operations_total",
	Help: "How many sandbox operations have been applied successfully.",
}, []string{"operation"})

// Collectors returns the Prometheus metrics of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{operations}
}

// Change is the payload of the events.SandboxChanged event.
type Change struct {
	Operation string `json:"operation"`
	Kind      Kind   `json:"kind,omitempty"`
	ID        *ID    `json:"id,omitempty"`
}

// View is a copy of the session together with the state of the history.
type View struct {
	*Session
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Manager owns the sandbox session.
//
// All methods are safe for concurrent use, operations are applied one at a
// time.
type Manager struct {
	mu        sync.Mutex
	db        *gorm.DB
	resolver  *resolve.Resolver
	bus       *events.Bus
	now       func() time.Time
	limit     int
	current   *Session
	undo      []*Session
	redo      []*Session
	replaying bool
}

type Option func(*Manager)

// WithClock sets the clock used for timestamps and the current month.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithUndoLimit sets how many undo steps are kept. The oldest steps are
// dropped first.
func WithUndoLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

func NewManager(db *gorm.DB, resolver *resolve.Resolver, bus *events.Bus, opts ...Option) *Manager {
	m := &Manager{
		db:       db,
		resolver: resolver,
		bus:      bus,
		now:      func() time.Time { return time.Now().UTC() },
		limit:    DefaultUndoLimit,
	}

	for _, o := range opts {
		o(m)
	}

	return m
}

// Close discards the session and its history.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.undo = nil
	m.redo = nil
}

func (m *Manager) view() View {
	return View{
		Session: m.current.Clone(),
		CanUndo: len(m.undo) > 0,
		CanRedo: len(m.redo) > 0,
	}
}

func (m *Manager) emit(c Change) {
	operations.WithLabelValues(c.Operation).Inc()
	m.bus.Emit(events.SandboxChanged, c)
}

// record pushes the current session to the undo history and clears the redo
// history. Nothing is recorded while undo or redo is applied.
func (m *Manager) record() {
	if m.replaying || m.current == nil {
		return
	}

	m.undo = append(m.undo, m.current)
	if len(m.undo) > m.limit {
		m.undo = m.undo[len(m.undo)-m.limit:]
	}
	m.redo = nil
}

// install replaces the session. The previous session is recorded for undo.
func (m *Manager) install(s *Session) {
	m.record()
	m.current = s
}

// bootstrap must be called with the lock held.
func (m *Manager) bootstrap(ctx context.Context, month types.Month) error {
	snapshot, err := m.resolver.Resolve(ctx, month)
	if err != nil {
		return err
	}

	buckets, err := store.Query[models.Bucket](ctx, m.db, store.Filter{}, store.Options{OrderBy: "position"})
	if err != nil {
		return err
	}

	m.install(fromSnapshot(snapshot, buckets))
	log.Info().Str("month", snapshot.Month.String()).Int("entities", snapshot.Len()).Msg("bootstrapped sandbox")
	return nil
}

// ensure bootstraps the current month if there is no session yet.
func (m *Manager) ensure(ctx context.Context) error {
	if m.current != nil {
		return nil
	}
	return m.bootstrap(ctx, m.currentMonth())
}

func (m *Manager) currentMonth() types.Month {
	return types.MonthOf(m.now())
}

// Bootstrap replaces the session with a copy of the resolved month.
func (m *Manager) Bootstrap(ctx context.Context, month types.Month) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.bootstrap(ctx, month); err != nil {
		return View{}, err
	}

	m.emit(Change{Operation: "bootstrap"})
	return m.view(), nil
}

// Session returns the session, bootstrapping the current month if there is
// none yet.
func (m *Manager) Session(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(ctx); err != nil {
		return View{}, err
	}

	return m.view(), nil
}

// Reset discards all changes by bootstrapping the current month again.
func (m *Manager) Reset(ctx context.Context) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.bootstrap(ctx, m.currentMonth()); err != nil {
		return View{}, err
	}

	log.Info().Msg("reset sandbox")
	m.emit(Change{Operation: "reset"})
	return m.view(), nil
}

// Undo restores the session before the last change. Without history, it
// does nothing.
func (m *Manager) Undo() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undo) > 0 {
		m.replay(&m.undo, &m.redo)
		m.emit(Change{Operation: "undo"})
	}

	return m.view()
}

// Redo applies the last undone change again. Without history, it does
// nothing.
func (m *Manager) Redo() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redo) > 0 {
		m.replay(&m.redo, &m.undo)
		m.emit(Change{Operation: "redo"})
	}

	return m.view()
}

// replay pops the session from one history and pushes the current session
// to the other.
func (m *Manager) replay(from, to *[]*Session) {
	m.replaying = true
	defer func() { m.replaying = false }()

	last := len(*from) - 1
	next := (*from)[last]
	*from = (*from)[:last]

	*to = append(*to, m.current)
	m.current = next
}

// CanUndo reports if there is a change to undo.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports if there is an undone change to redo.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}
