package entity

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/simcore/internal/core"
)

// Manager owns entities by id. Iteration follows insertion order so frame
// updates are deterministic. Removals requested while Update is running are
// staged and applied once the pass over all entities has finished.
type Manager struct {
	entities map[ID]Entity
	order    []ID
	pending  []ID
	updating bool
	onRemove func(Entity)
}

// NewManager creates an empty entity manager.
func NewManager() *Manager {
	return &Manager{entities: make(map[ID]Entity)}
}

// OnRemove sets a function called with every entity that leaves the manager
// through Remove or a staged removal. Clear does not call it.
func (m *Manager) OnRemove(fn func(Entity)) {
	m.onRemove = fn
}

// Create registers e and returns its id. Registering an id that is already
// present replaces the stored entity and cancels any staged removal of it.
func (m *Manager) Create(e Entity) (ID, error) {
	if e == nil {
		return ID{}, fmt.Errorf("entity: create nil entity: %w", core.ErrInvalidArgument)
	}
	id := e.ID()
	if _, exists := m.entities[id]; !exists {
		m.order = append(m.order, id)
	}
	m.entities[id] = e
	m.pending = slices.DeleteFunc(m.pending, func(p ID) bool { return p == id })
	return id, nil
}

// Remove takes the entity with the given id out of the manager and returns
// it. During Update the removal is staged: the entity stays visible until the
// pass returns. Absent ids return nil, false.
func (m *Manager) Remove(id ID) (Entity, bool) {
	e, ok := m.entities[id]
	if !ok {
		return nil, false
	}
	if m.updating {
		m.QueueRemove(id)
		return e, true
	}
	m.drop(id)
	return e, true
}

// QueueRemove stages a removal applied at the end of the current Update
// pass, or of the next one when no pass is running.
func (m *Manager) QueueRemove(id ID) {
	if _, ok := m.entities[id]; !ok || slices.Contains(m.pending, id) {
		return
	}
	m.pending = append(m.pending, id)
}

// Pending returns how many removals are staged.
func (m *Manager) Pending() int {
	return len(m.pending)
}

func (m *Manager) drop(id ID) {
	e, ok := m.entities[id]
	if !ok {
		return
	}
	delete(m.entities, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	if m.onRemove != nil {
		m.onRemove(e)
	}
}

// Get returns the entity with the given id.
func (m *Manager) Get(id ID) (Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Contains reports whether an entity with the given id is registered.
func (m *Manager) Contains(id ID) bool {
	_, ok := m.entities[id]
	return ok
}

// Size returns the number of registered entities.
func (m *Manager) Size() int {
	return len(m.entities)
}

// Update calls Update(dt) on every active entity in insertion order, then
// applies staged removals. Entities created during the pass are first updated
// on the next one.
func (m *Manager) Update(dt float64) {
	m.updating = true
	order := m.order
	for _, id := range order {
		e, ok := m.entities[id]
		if !ok || !e.Active() {
			continue
		}
		e.Update(dt)
	}
	m.updating = false

	pending := m.pending
	m.pending = nil
	for _, id := range pending {
		m.drop(id)
	}
}

// All returns a snapshot of the registered entities in iteration order.
// Changing the returned slice does not affect the manager.
func (m *Manager) All() []Entity {
	out := make([]Entity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entities[id])
	}
	return out
}

// Each calls fn for every entity in iteration order until fn returns false.
// fn must not add or remove entities.
func (m *Manager) Each(fn func(Entity) bool) {
	for _, id := range m.order {
		if !fn(m.entities[id]) {
			return
		}
	}
}

// Clear drops every entity and staged removal without calling any callback.
func (m *Manager) Clear() {
	clear(m.entities)
	m.order = nil
	m.pending = nil
}
