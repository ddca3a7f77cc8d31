package sandbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carryforward/backend/pkg/events"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// SaveScenario stores the whole session, buckets included, under the name.
func (m *Manager) SaveScenario(ctx context.Context, name string) (models.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(ctx); err != nil {
		return models.Scenario{}, err
	}

	data, err := json.Marshal(m.current)
	if err != nil {
		return models.Scenario{}, err
	}

	scenario, err := store.Insert(ctx, m.db, models.Scenario{
		Name:  name,
		Month: m.current.Month,
		Data:  string(data),
	})
	if err != nil {
		return models.Scenario{}, err
	}

	operations.WithLabelValues("save_scenario").Inc()
	m.bus.Emit(events.ScenariosChanged, scenario)
	return scenario, nil
}

// ListScenarios returns the saved scenarios, newest first. If pattern is
// not empty, only scenarios with a name matching the glob are returned.
func (m *Manager) ListScenarios(ctx context.Context, pattern string) ([]models.Scenario, error) {
	scenarios, err := store.Query[models.Scenario](ctx, m.db, store.Filter{}, store.Options{OrderBy: "created_at", Order: store.Desc})
	if err != nil {
		return nil, err
	}

	if pattern == "" {
		return scenarios, nil
	}

	matching := make([]models.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if glob.Glob(pattern, s.Name) {
			matching = append(matching, s)
		}
	}
	return matching, nil
}

// LoadScenario replaces the session with the saved one. Undo and redo
// history are cleared.
func (m *Manager) LoadScenario(ctx context.Context, id uuid.UUID) (View, error) {
	scenario, err := store.GetByID[models.Scenario](ctx, m.db, id)
	if err != nil {
		return View{}, err
	}

	var s Session
	if err := json.Unmarshal([]byte(scenario.Data), &s); err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrScenarioCorrupt, err)
	}
	s.init()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = &s
	m.undo = nil
	m.redo = nil

	log.Info().Str("scenario", scenario.Name).Str("month", s.Month.String()).Msg("loaded scenario into sandbox")
	m.emit(Change{Operation: "load_scenario"})
	return m.view(), nil
}

// DeleteScenario deletes the saved scenario. The session is not affected.
func (m *Manager) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	if err := store.Delete[models.Scenario](ctx, m.db, id); err != nil {
		return err
	}

	operations.WithLabelValues("delete_scenario").Inc()
	m.bus.Emit(events.ScenariosChanged, id)
	return nil
}
