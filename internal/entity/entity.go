// Package entity provides the simulation object model and the registry that
// owns entities inside a scene.
package entity

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/simcore/internal/core"
)

// ID is an entity's identity. It is assigned at construction and never changes.
type ID = uuid.UUID

// Entity is a simulated object with identity, position, velocity and an
// active flag. Update is called once per frame while the entity is active.
type Entity interface {
	ID() ID
	Position() core.Vec2
	SetPosition(p core.Vec2)
	Velocity() core.Vec2
	SetVelocity(v core.Vec2)
	Active() bool
	SetActive(active bool)
	Update(dt float64)
}

// Base implements the bookkeeping part of Entity and is meant to be embedded.
// Its Update does nothing.
type Base struct {
	id     ID
	pos    core.Vec2
	vel    core.Vec2
	active bool
}

// NewBase creates an active entity at (x, y) with a fresh random id.
func NewBase(x, y float64) Base {
	return Base{
		id:     uuid.New(),
		pos:    core.V(x, y),
		active: true,
	}
}

func (b *Base) ID() ID                  { return b.id }
func (b *Base) Position() core.Vec2     { return b.pos }
func (b *Base) SetPosition(p core.Vec2) { b.pos = p }
func (b *Base) Velocity() core.Vec2     { return b.vel }
func (b *Base) SetVelocity(v core.Vec2) { b.vel = v }
func (b *Base) Active() bool            { return b.active }
func (b *Base) SetActive(active bool)   { b.active = active }

// Update does nothing; embedding types override it.
func (b *Base) Update(dt float64) {}

// ApplyMovement advances the position by velocity * dt.
func (b *Base) ApplyMovement(dt float64) {
	b.pos = b.pos.Add(b.vel.Scale(dt))
}
