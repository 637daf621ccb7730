package entity

import (
	"math"
	"testing"

	"github.com/vovakirdan/simcore/internal/collision"
	"github.com/vovakirdan/simcore/internal/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBaseIdentity(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		b := NewBase(0, 0)
		if seen[b.ID()] {
			t.Fatalf("duplicate id %s", b.ID())
		}
		seen[b.ID()] = true
		if !b.Active() {
			t.Error("new entity should be active")
		}
	}
}

func TestBaseApplyMovement(t *testing.T) {
	b := NewBase(10, 20)
	b.SetVelocity(core.V(5, -10))
	b.ApplyMovement(0.5)

	if p := b.Position(); p != core.V(12.5, 15) {
		t.Errorf("Position() = %v, expected (12.5, 15)", p)
	}
}

func TestSpriteBounds(t *testing.T) {
	s := NewSprite(3, 4, 10, 20, WithTexture("hero"))

	if s.Collides() {
		t.Error("sprite without WithCollision should not collide")
	}
	if _, ok := collision.As(s); ok {
		t.Error("collision.As should reject a sprite without bounds")
	}
	if s.Texture() != "hero" {
		t.Errorf("Texture() = %q, expected hero", s.Texture())
	}

	s.SetPosition(core.V(7, 8))
	if b := s.Bounds(); b != core.NewRect(7, 8, 10, 20) {
		t.Errorf("Bounds() = %v, expected bounds at the new position", b)
	}
}

func TestSpriteCollisionCallback(t *testing.T) {
	var got collision.Collidable
	a := NewSprite(0, 0, 10, 10, WithCollision(func(self *Sprite, other collision.Collidable) {
		got = other
	}))
	b := NewSprite(5, 5, 10, 10, WithCollision(nil))

	if _, ok := collision.As(a); !ok {
		t.Fatal("sprite with collision should be collidable")
	}

	m := collision.NewManager()
	m.Add(a)
	m.Add(b)
	m.Update()

	if got != collision.Collidable(b) {
		t.Errorf("callback other = %v, expected b", got)
	}
}

func TestPlayerAxisMovement(t *testing.T) {
	p := NewPlayer("p1", 0, 0, 10, 10)
	p.SetMovingRight(true)
	p.Update(1)

	if pos := p.Position(); !approx(pos.X, DefaultMoveSpeed) || pos.Y != 0 {
		t.Errorf("Position() = %v, expected (%v, 0)", pos, DefaultMoveSpeed)
	}
	if !p.IsMoving() {
		t.Error("IsMoving() should be true")
	}
}

func TestPlayerDiagonalMovement(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		sx, sy                float64
	}{
		{"up-right", true, false, false, true, 1, 1},
		{"down-left", false, true, true, false, -1, -1},
		{"up-left", true, false, true, false, -1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer("p", 0, 0, 1, 1)
			p.SetMovingUp(tc.up)
			p.SetMovingDown(tc.down)
			p.SetMovingLeft(tc.left)
			p.SetMovingRight(tc.right)
			p.Update(1)

			v := p.Velocity()
			diag := DefaultMoveSpeed / math.Sqrt2
			if !approx(v.X, tc.sx*diag) || !approx(v.Y, tc.sy*diag) {
				t.Errorf("Velocity() = %v, expected (%v, %v)", v, tc.sx*diag, tc.sy*diag)
			}
			if !approx(v.Len(), DefaultMoveSpeed) {
				t.Errorf("diagonal speed = %v, expected %v", v.Len(), DefaultMoveSpeed)
			}
		})
	}
}

func TestPlayerOpposingFlagsCancel(t *testing.T) {
	p := NewPlayer("p", 0, 0, 1, 1)
	p.SetMovingLeft(true)
	p.SetMovingRight(true)
	p.Update(1)

	if v := p.Velocity(); !v.IsZero() {
		t.Errorf("Velocity() = %v, expected zero", v)
	}
}

func TestPlayerMoveAndStop(t *testing.T) {
	p := NewPlayer("p", 0, 0, 1, 1)
	p.Speed = 50
	p.Move(1, -0.5)

	if v := p.Velocity(); v != core.V(50, -25) {
		t.Errorf("Velocity() = %v, expected (50, -25)", v)
	}
	p.Update(0.1)
	if pos := p.Position(); !approx(pos.X, 5) || !approx(pos.Y, -2.5) {
		t.Errorf("Position() = %v, expected (5, -2.5)", pos)
	}

	p.SetMovingUp(true)
	p.Stop()
	if p.IsMoving() || !p.Velocity().IsZero() {
		t.Error("Stop() should clear flags and velocity")
	}
}

func TestNPCUpdateFriction(t *testing.T) {
	n := NewNPC("drone", 0, 0, 5, 5)
	n.SetVelocity(core.V(100, 0))
	n.Update(0.5)

	if pos := n.Position(); !approx(pos.X, 50) {
		t.Errorf("Position().X = %v, expected 50", pos.X)
	}
	if v := n.Velocity(); !approx(v.X, 100*Friction) {
		t.Errorf("Velocity().X = %v, expected %v", v.X, 100*Friction)
	}
	if !approx(n.Timer(), 0.5) {
		t.Errorf("Timer() = %v, expected 0.5", n.Timer())
	}
}

func TestNPCAIDisabled(t *testing.T) {
	n := NewNPC("idle", 0, 0, 5, 5)
	n.AIEnabled = false
	n.SetVelocity(core.V(10, 10))
	n.Update(1)

	if !n.Position().IsZero() {
		t.Error("NPC with AI disabled should not move")
	}
	if !approx(n.Timer(), 1) {
		t.Errorf("timer should still advance, got %v", n.Timer())
	}

	n.ResetTimer()
	if n.Timer() != 0 {
		t.Errorf("Timer() = %v after reset, expected 0", n.Timer())
	}
}

func TestNPCApplyImpulse(t *testing.T) {
	n := NewNPC("drone", 0, 40, 5, 5)
	n.SetVelocity(core.V(3, 7))
	n.ApplyImpulse(2, 1)

	// Vertical component is derived from position, not velocity.
	if v := n.Velocity(); v != core.V(5, 41) {
		t.Errorf("Velocity() = %v, expected (5, 41)", v)
	}
}
