// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/scene"
)

// Factory builds a fresh scene bound to the given engine context.
type Factory func(ctx *engine.Context) scene.Scene

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID          string
	Title       string
	Description string
}

type entry struct {
	info    SceneInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene package's init() function.
// Panics if a scene with the same ID is already registered or f is nil.
func Register(info SceneInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for scene %q", info.ID))
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, ctx *engine.Context) (scene.Scene, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return e.factory(ctx), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// LoadAll creates every registered scene and loads it into ctx.Scenes under
// its ID. The scene named active (or the first one if empty) becomes active.
func LoadAll(ctx *engine.Context, active string) error {
	infos := List()
	if len(infos) == 0 {
		return fmt.Errorf("registry: no scenes registered")
	}
	if active == "" {
		active = infos[0].ID
	}
	if !Exists(active) {
		return fmt.Errorf("registry: unknown scene %q", active)
	}

	for _, info := range infos {
		s, err := Create(info.ID, ctx)
		if err != nil {
			return err
		}
		if err := ctx.Scenes.Load(info.ID, s); err != nil {
			return fmt.Errorf("registry: %w", err)
		}
	}
	if err := ctx.Scenes.SetActive(active); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	return nil
}
