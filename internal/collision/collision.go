// Package collision implements naive all-pairs rectangle overlap detection
// with two-sided callback dispatch.
package collision

import "github.com/vovakirdan/simcore/internal/core"

// Collidable is the capability an object exposes to take part in collision
// passes. Bounds is recomputed on demand from the object's current position.
//
// Collidables are compared by identity, so implementations should be pointer
// types.
type Collidable interface {
	Bounds() core.Rect
	OnCollision(other Collidable)
}

// Switch is implemented by records that carry collision bounds as an optional
// component. A record whose Collides reports false is not treated as a
// Collidable even though it has the methods.
type Switch interface {
	Collides() bool
}

// As reports whether v has the collision capability and returns it.
func As(v any) (Collidable, bool) {
	c, ok := v.(Collidable)
	if !ok || c == nil {
		return nil, false
	}
	if s, ok := v.(Switch); ok && !s.Collides() {
		return nil, false
	}
	return c, true
}

// Detector is the contract a collision pass implements. A spatially indexed
// broad-phase can replace Manager behind it.
type Detector interface {
	Add(c Collidable)
	Remove(c Collidable) bool
	Update()
	Clear()
}
