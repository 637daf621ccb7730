package entity

import (
	"math"

	"github.com/vovakirdan/simcore/internal/core"
)

// DefaultMoveSpeed is the player speed in world units per second.
const DefaultMoveSpeed = 100.0

// Player is an input-controlled sprite. Direction flags are turned into a
// velocity on every update, with diagonals scaled so they are no faster than
// axis-aligned movement.
type Player struct {
	*Sprite
	Name  string
	Speed float64

	up, down, left, right bool
}

// NewPlayer creates a player sprite moving at DefaultMoveSpeed.
func NewPlayer(name string, x, y, w, h float64, opts ...Option) *Player {
	return &Player{
		Sprite: NewSprite(x, y, w, h, opts...),
		Name:   name,
		Speed:  DefaultMoveSpeed,
	}
}

func (p *Player) SetMovingUp(v bool)    { p.up = v }
func (p *Player) SetMovingDown(v bool)  { p.down = v }
func (p *Player) SetMovingLeft(v bool)  { p.left = v }
func (p *Player) SetMovingRight(v bool) { p.right = v }

// IsMoving reports whether any direction flag is set.
func (p *Player) IsMoving() bool {
	return p.up || p.down || p.left || p.right
}

// Move sets the velocity to force * Speed directly. Direction flags take
// precedence on the next update while any of them is set.
func (p *Player) Move(fx, fy float64) {
	p.SetVelocity(core.V(fx*p.Speed, fy*p.Speed))
}

// Stop zeroes the velocity and clears every direction flag.
func (p *Player) Stop() {
	p.SetVelocity(core.V(0, 0))
	p.up, p.down, p.left, p.right = false, false, false, false
}

// Update derives the velocity from the direction flags and integrates it.
func (p *Player) Update(dt float64) {
	if p.IsMoving() {
		var vx, vy float64
		if p.right {
			vx += p.Speed
		}
		if p.left {
			vx -= p.Speed
		}
		if p.up {
			vy += p.Speed
		}
		if p.down {
			vy -= p.Speed
		}

		if (p.left || p.right) && (p.up || p.down) {
			diagonal := p.Speed / math.Sqrt2
			if vx != 0 {
				vx = math.Copysign(diagonal, vx)
			}
			if vy != 0 {
				vy = math.Copysign(diagonal, vy)
			}
		}
		p.SetVelocity(core.V(vx, vy))
	}
	p.ApplyMovement(dt)
}
