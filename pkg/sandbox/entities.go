package sandbox

import (
	"context"
	"encoding/json"
)

// mutate applies fn to a copy of the session and installs the copy if fn
// succeeds. A failed operation leaves session and history untouched.
func (m *Manager) mutate(ctx context.Context, fn func(*Session) (any, error)) (any, error) {
	if err := m.ensure(ctx); err != nil {
		return nil, err
	}

	next := m.current.Clone()
	result, err := fn(next)
	if err != nil {
		return nil, err
	}

	m.install(next)
	return result, nil
}

// Create adds an entity of the kind to the session. data is the JSON
// encoded entity, the id and timestamps are assigned by the session.
func (m *Manager) Create(ctx context.Context, kind Kind, data json.RawMessage) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id ID
	result, err := m.mutate(ctx, func(s *Session) (any, error) {
		t, err := s.table(kind)
		if err != nil {
			return nil, err
		}

		now := m.now()
		id = s.allocate()
		return t.create(id, data, Meta{
			ID:            id,
			EffectiveFrom: s.Month,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	m.emit(Change{Operation: "create", Kind: kind, ID: &id})
	return result, nil
}

// Update merges the JSON encoded changes into the entity.
func (m *Manager) Update(ctx context.Context, kind Kind, id ID, changes json.RawMessage) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, err := m.mutate(ctx, func(s *Session) (any, error) {
		t, err := s.table(kind)
		if err != nil {
			return nil, err
		}
		return t.update(id, changes, m.now())
	})
	if err != nil {
		return nil, err
	}

	m.emit(Change{Operation: "update", Kind: kind, ID: &id})
	return result, nil
}

// Delete marks the entity as deleted. It stays in the session and can still
// be read with Get.
func (m *Manager) Delete(ctx context.Context, kind Kind, id ID) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, err := m.mutate(ctx, func(s *Session) (any, error) {
		t, err := s.table(kind)
		if err != nil {
			return nil, err
		}
		return t.remove(id, m.now())
	})
	if err != nil {
		return nil, err
	}

	m.emit(Change{Operation: "delete", Kind: kind, ID: &id})
	return result, nil
}

// Get returns the entity, deleted or not.
func (m *Manager) Get(ctx context.Context, kind Kind, id ID) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(ctx); err != nil {
		return nil, err
	}

	t, err := m.current.table(kind)
	if err != nil {
		return nil, err
	}
	return t.get(id)
}

// List returns all entities of the kind that are not deleted.
func (m *Manager) List(ctx context.Context, kind Kind) ([]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(ctx); err != nil {
		return nil, err
	}

	t, err := m.current.table(kind)
	if err != nil {
		return nil, err
	}
	return t.list(), nil
}
