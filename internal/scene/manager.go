package scene

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/core"
)

// Manager maps names to scenes and dispatches frames to the active one.
// The same scene may be registered under several names; it is disposed once
// no name refers to it any more.
//
// Registry operations are safe for concurrent use. Initialize and Dispose
// run with the registry locked, so scene hooks for those must not call back
// into the Manager. Update, Render and Resize run unlocked and may.
type Manager struct {
	mu          sync.RWMutex
	scenes      map[string]Scene
	initialized map[Scene]struct{}
	active      Scene
	activeName  string
	logger      *log.Logger
}

// NewManager creates an empty scene manager. A nil logger discards output.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		scenes:      make(map[string]Scene),
		initialized: make(map[Scene]struct{}),
		logger:      logger,
	}
}

// Load registers s under name. When it replaces a different scene that was
// active under name, s is initialized if needed and becomes active. The
// replaced scene is disposed if no other name still refers to it.
func (m *Manager) Load(name string, s Scene) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("scene: load: blank name: %w", core.ErrInvalidArgument)
	}
	if s == nil {
		return fmt.Errorf("scene: load %q: nil scene: %w", name, core.ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, existed := m.scenes[name]
	m.scenes[name] = s
	m.logger.Debug("scene loaded", "name", name)
	if !existed || prev == s {
		return nil
	}

	var err error
	if prev == m.active && name == m.activeName {
		if err = m.initIfNeeded(s); err != nil {
			m.active, m.activeName = nil, ""
		} else {
			m.active = s
			m.logger.Debug("active scene replaced", "name", name)
		}
	}
	m.disposeIfUnreferenced(prev)
	if err != nil {
		return fmt.Errorf("scene: load %q: %w", name, err)
	}
	return nil
}

// Unload removes the mapping for name. If the removed scene was active the
// manager is left without an active scene. Blank and unknown names are
// ignored.
func (m *Manager) Unload(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed, ok := m.scenes[name]
	if !ok {
		return
	}
	delete(m.scenes, name)
	m.logger.Debug("scene unloaded", "name", name)

	if removed == m.active {
		m.active, m.activeName = nil, ""
	}
	m.disposeIfUnreferenced(removed)
}

// SetActive makes the scene registered under name active, initializing it
// the first time it is activated.
func (m *Manager) SetActive(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("scene: set active: blank name: %w", core.ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("scene: set active %q: %w", name, core.ErrNotFound)
	}
	if err := m.initIfNeeded(next); err != nil {
		return fmt.Errorf("scene: set active %q: %w", name, err)
	}
	m.active, m.activeName = next, name
	m.logger.Debug("scene activated", "name", name)
	return nil
}

// Active returns the active scene and the name it was activated under.
func (m *Manager) Active() (Scene, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active, m.activeName
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.scenes[name]
	return ok
}

// Names returns the registered names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedNamesLocked()
}

func (m *Manager) current() Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Update advances the active scene. It does nothing without one.
func (m *Manager) Update(dt float64) error {
	s := m.current()
	if s == nil {
		return nil
	}
	return s.Update(dt)
}

// Render renders the active scene. It does nothing without one.
func (m *Manager) Render(dt float64) error {
	s := m.current()
	if s == nil {
		return nil
	}
	return s.Render(dt)
}

// Resize forwards new viewport dimensions to the active scene.
func (m *Manager) Resize(w, h int) {
	if s := m.current(); s != nil {
		s.Resize(w, h)
	}
}

// RunFrame updates and then renders the active scene. Render is skipped
// when Update fails.
func (m *Manager) RunFrame(dt float64) error {
	if err := m.Update(dt); err != nil {
		return err
	}
	return m.Render(dt)
}

// Dispose disposes every distinct registered scene once and clears the
// registry.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[Scene]struct{}, len(m.scenes))
	for _, name := range m.sortedNamesLocked() {
		s := m.scenes[name]
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		s.Dispose()
	}
	m.logger.Debug("scene manager disposed", "scenes", len(seen))

	clear(m.scenes)
	clear(m.initialized)
	m.active, m.activeName = nil, ""
}

func (m *Manager) sortedNamesLocked() []string {
	names := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (m *Manager) initIfNeeded(s Scene) error {
	if _, ok := m.initialized[s]; ok {
		return nil
	}
	if err := s.Initialize(); err != nil {
		return err
	}
	m.initialized[s] = struct{}{}
	return nil
}

func (m *Manager) referenced(s Scene) bool {
	for _, other := range m.scenes {
		if other == s {
			return true
		}
	}
	return false
}

func (m *Manager) disposeIfUnreferenced(s Scene) {
	if m.referenced(s) {
		return
	}
	delete(m.initialized, s)
	s.Dispose()
	m.logger.Debug("scene disposed")
}
