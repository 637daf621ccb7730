package scene

import (
	"fmt"

	"github.com/vovakirdan/simcore/internal/collision"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/entity"
	"github.com/vovakirdan/simcore/internal/movement"
)

// Base implements Scene on top of an entity manager, a movement manager and
// a collision detector, all owned by the scene. Concrete scenes embed *Base
// and pass themselves as Hooks.
//
// Entities created through the scene that have collision bounds are
// registered with the detector automatically and unregistered when they
// leave, each at most once.
type Base struct {
	hooks      Hooks
	entities   *entity.Manager
	movement   *movement.Manager
	collisions collision.Detector
	registered map[collision.Collidable]struct{}

	initialized bool
	disposed    bool
}

var _ Scene = (*Base)(nil)

// Option configures a Base at construction.
type Option func(*Base)

// WithMovement sets the movement manager used by the scene.
func WithMovement(m *movement.Manager) Option {
	return func(b *Base) { b.movement = m }
}

// WithDetector replaces the default all-pairs collision manager.
func WithDetector(d collision.Detector) Option {
	return func(b *Base) { b.collisions = d }
}

// NewBase creates a scene base calling hooks. A nil hooks value behaves like
// NopHooks.
func NewBase(hooks Hooks, opts ...Option) *Base {
	if hooks == nil {
		hooks = NopHooks{}
	}
	b := &Base{
		hooks:      hooks,
		entities:   entity.NewManager(),
		registered: make(map[collision.Collidable]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.movement == nil {
		b.movement = movement.NewManager(nil, nil)
	}
	if b.collisions == nil {
		b.collisions = collision.NewManager()
	}
	b.entities.OnRemove(func(e entity.Entity) {
		if c, ok := collision.As(e); ok {
			b.UnregisterCollidable(c)
		}
	})
	return b
}

// Initialize runs OnInitialize the first time it is called. A failing hook
// leaves the scene uninitialized so Initialize can be retried. After Dispose
// it does nothing.
func (b *Base) Initialize() error {
	if b.initialized || b.disposed {
		return nil
	}
	if err := b.hooks.OnInitialize(); err != nil {
		return fmt.Errorf("scene: initialize: %w", err)
	}
	b.initialized = true
	return nil
}

func (b *Base) checkFrame(op string, dt float64) error {
	switch {
	case b.disposed:
		return fmt.Errorf("scene: %s after dispose: %w", op, core.ErrInvalidState)
	case !b.initialized:
		return fmt.Errorf("scene: %s before initialize: %w", op, core.ErrInvalidState)
	case !core.IsFinite(dt) || dt < 0:
		return fmt.Errorf("scene: %s: delta %v must be finite and non-negative: %w", op, dt, core.ErrInvalidArgument)
	}
	return nil
}

// Update advances the scene by dt seconds: the entity pass, then the
// collision pass, then OnUpdate.
func (b *Base) Update(dt float64) error {
	if err := b.checkFrame("update", dt); err != nil {
		return err
	}
	b.entities.Update(dt)
	b.collisions.Update()
	return b.hooks.OnUpdate(dt)
}

// Render runs OnRender under the same state and delta checks as Update.
func (b *Base) Render(dt float64) error {
	if err := b.checkFrame("render", dt); err != nil {
		return err
	}
	return b.hooks.OnRender(dt)
}

// Resize forwards to OnResize until the scene is disposed.
func (b *Base) Resize(w, h int) {
	if b.disposed {
		return
	}
	b.hooks.OnResize(w, h)
}

// Dispose runs OnDispose, unregisters every collidable and drops all
// entities. Only the first call has effect.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.hooks.OnDispose()

	for c := range b.registered {
		b.collisions.Remove(c)
	}
	clear(b.registered)
	b.entities.Clear()
}

// CreateEntity adds e to the scene and registers it for collisions when it
// has collision bounds. A disposed scene accepts no entities.
func (b *Base) CreateEntity(e entity.Entity) (entity.ID, error) {
	if b.disposed {
		return entity.ID{}, fmt.Errorf("scene: create entity after dispose: %w", core.ErrInvalidState)
	}
	id, err := b.entities.Create(e)
	if err != nil {
		return id, fmt.Errorf("scene: %w", err)
	}
	if c, ok := collision.As(e); ok {
		b.RegisterCollidable(c)
	}
	return id, nil
}

// RemoveEntity removes the entity with the given id. Called from inside the
// entity pass, the removal and collision unregistration happen when the pass
// ends.
func (b *Base) RemoveEntity(id entity.ID) (entity.Entity, bool) {
	return b.entities.Remove(id)
}

// QueueRemoveEntity stages the removal of an entity until the end of the
// next entity pass. Use it from collision callbacks.
func (b *Base) QueueRemoveEntity(id entity.ID) {
	b.entities.QueueRemove(id)
}

// RegisterCollidable adds c to the collision detector unless it is already
// registered.
func (b *Base) RegisterCollidable(c collision.Collidable) {
	if c == nil {
		return
	}
	if _, ok := b.registered[c]; ok {
		return
	}
	b.registered[c] = struct{}{}
	b.collisions.Add(c)
}

// UnregisterCollidable removes c from the collision detector if it was
// registered.
func (b *Base) UnregisterCollidable(c collision.Collidable) {
	if c == nil {
		return
	}
	if _, ok := b.registered[c]; !ok {
		return
	}
	delete(b.registered, c)
	b.collisions.Remove(c)
}

// Registered returns the number of collidables registered with the scene.
func (b *Base) Registered() int {
	return len(b.registered)
}

// Entities returns a snapshot of the scene's entities.
func (b *Base) Entities() []entity.Entity {
	return b.entities.All()
}

// EntityManager returns the scene's entity manager.
func (b *Base) EntityManager() *entity.Manager {
	return b.entities
}

// Movement returns the scene's movement manager.
func (b *Base) Movement() *movement.Manager {
	return b.movement
}

// Collisions returns the scene's collision detector.
func (b *Base) Collisions() collision.Detector {
	return b.collisions
}

// Initialized reports whether Initialize has succeeded.
func (b *Base) Initialized() bool {
	return b.initialized
}

// Disposed reports whether Dispose has been called.
func (b *Base) Disposed() bool {
	return b.disposed
}
