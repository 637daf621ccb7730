// Package scene implements the scene lifecycle and the coordinator that
// switches between named scenes.
//
// A scene moves through three states: uninitialized, initialized and
// disposed. Update and Render only run while initialized. Initialize and
// Dispose may be called any number of times; only the first call has effect.
package scene

// Scene is a self-contained simulation context driven by a Manager.
//
// Implementations are compared by identity and must be pointer types.
type Scene interface {
	Initialize() error
	Update(dt float64) error
	Render(dt float64) error
	Resize(w, h int)
	Dispose()
}

// Hooks are the scene-specific parts of a Base-driven scene. Base calls them
// at fixed points of the lifecycle.
type Hooks interface {
	// OnInitialize runs once, on the first Initialize.
	OnInitialize() error
	// OnUpdate runs after the entity and collision passes of every Update.
	OnUpdate(dt float64) error
	// OnRender runs on every Render.
	OnRender(dt float64) error
	// OnResize runs on every Resize before disposal.
	OnResize(w, h int)
	// OnDispose runs once, on the first Dispose, before entities are dropped.
	OnDispose()
}

// NopHooks implements Hooks with methods that do nothing. Embed it to
// override only the hooks a scene needs.
type NopHooks struct{}

func (NopHooks) OnInitialize() error       { return nil }
func (NopHooks) OnUpdate(dt float64) error { return nil }
func (NopHooks) OnRender(dt float64) error { return nil }
func (NopHooks) OnResize(w, h int)         {}
func (NopHooks) OnDispose()                {}

var _ Hooks = NopHooks{}
