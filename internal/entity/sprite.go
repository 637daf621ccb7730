package entity

import (
	"github.com/vovakirdan/simcore/internal/collision"
	"github.com/vovakirdan/simcore/internal/core"
)

// HitFunc is called when a sprite's bounds overlap another collidable.
type HitFunc func(self *Sprite, other collision.Collidable)

// Sprite is the stock entity record: a sized, optionally textured body whose
// collision bounds are an optional component.
type Sprite struct {
	Base
	w, h     float64
	texture  string
	collides bool
	onHit    HitFunc
}

// Option configures a sprite at construction.
type Option func(*Sprite)

// WithTexture sets the texture handle used by render sinks.
func WithTexture(handle string) Option {
	return func(s *Sprite) { s.texture = handle }
}

// WithCollision gives the sprite collision bounds. fn may be nil when the
// sprite only needs to be hit by others.
func WithCollision(fn HitFunc) Option {
	return func(s *Sprite) {
		s.collides = true
		s.onHit = fn
	}
}

// NewSprite creates a w×h sprite with its bottom-left corner at (x, y).
func NewSprite(x, y, w, h float64, opts ...Option) *Sprite {
	s := &Sprite{Base: NewBase(x, y), w: w, h: h}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the sprite's width and height in world units.
func (s *Sprite) Size() (w, h float64) {
	return s.w, s.h
}

// SetSize changes the sprite dimensions.
func (s *Sprite) SetSize(w, h float64) {
	s.w, s.h = w, h
}

// Texture returns the texture handle, empty when nothing should be drawn.
func (s *Sprite) Texture() string {
	return s.texture
}

// SetTexture replaces the texture handle.
func (s *Sprite) SetTexture(handle string) {
	s.texture = handle
}

// Collides reports whether the sprite carries collision bounds.
func (s *Sprite) Collides() bool {
	return s.collides
}

// Bounds returns the sprite's rectangle at its current position.
func (s *Sprite) Bounds() core.Rect {
	return core.NewRect(s.pos.X, s.pos.Y, s.w, s.h)
}

// OnCollision forwards to the hit callback, if any.
func (s *Sprite) OnCollision(other collision.Collidable) {
	if s.onHit != nil {
		s.onHit(s, other)
	}
}

// SetOnHit replaces the hit callback.
func (s *Sprite) SetOnHit(fn HitFunc) {
	s.onHit = fn
}
