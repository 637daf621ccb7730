package collision

import "slices"

// Pass reports what the most recent Update did.
type Pass struct {
	Tests int // unordered pairs tested
	Hits  int // pairs found overlapping
}

// Manager holds non-owning references to the collidables taking part in
// collision passes. It tests every unordered pair once per Update, which is
// only suitable for small object counts.
type Manager struct {
	items    []Collidable
	snapshot []Collidable
	last     Pass
}

var _ Detector = (*Manager)(nil)

// NewManager creates an empty collision manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers c. Nil and already registered collidables are ignored.
func (m *Manager) Add(c Collidable) {
	if c == nil || m.Contains(c) {
		return
	}
	m.items = append(m.items, c)
}

// Remove unregisters c and reports whether it was present.
func (m *Manager) Remove(c Collidable) bool {
	i := slices.Index(m.items, c)
	if i < 0 {
		return false
	}
	m.items = slices.Delete(m.items, i, i+1)
	return true
}

// Contains reports whether c is registered.
func (m *Manager) Contains(c Collidable) bool {
	return slices.Contains(m.items, c)
}

// Len returns the number of registered collidables.
func (m *Manager) Len() int {
	return len(m.items)
}

// Clear drops every registered collidable without invoking callbacks.
func (m *Manager) Clear() {
	clear(m.items)
	m.items = m.items[:0]
}

// LastPass returns the counters of the most recent Update.
func (m *Manager) LastPass() Pass {
	return m.last
}

// Update runs one collision pass over the collidables registered when it
// starts. Callbacks may add or remove collidables; the changes apply to the
// next pass. For every overlapping pair a.OnCollision(b) runs before
// b.OnCollision(a). Overlaps are reported again on every pass while they last.
func (m *Manager) Update() {
	m.snapshot = append(m.snapshot[:0], m.items...)
	set := m.snapshot

	var pass Pass
	for i := 0; i < len(set); i++ {
		a := set[i]
		for j := i + 1; j < len(set); j++ {
			b := set[j]
			pass.Tests++
			if !a.Bounds().Overlaps(b.Bounds()) {
				continue
			}
			pass.Hits++
			a.OnCollision(b)
			b.OnCollision(a)
		}
	}

	clear(m.snapshot)
	m.last = pass
}
