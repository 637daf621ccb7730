package entity

import "github.com/vovakirdan/simcore/internal/core"

// Friction is the per-update velocity damping applied to NPCs.
const Friction = 0.98

// NPC is an AI-driven sprite. While its AI is enabled it integrates its
// velocity and then damps it by Friction on every update.
type NPC struct {
	*Sprite
	Kind      string
	AIEnabled bool

	timer float64
}

// NewNPC creates an NPC of the given kind with AI enabled.
func NewNPC(kind string, x, y, w, h float64, opts ...Option) *NPC {
	return &NPC{
		Sprite:    NewSprite(x, y, w, h, opts...),
		Kind:      kind,
		AIEnabled: true,
	}
}

// Update advances the internal timer and, when the AI is enabled and the
// NPC is active, moves it and applies friction.
func (n *NPC) Update(dt float64) {
	n.timer += dt
	if !n.AIEnabled || !n.Active() {
		return
	}
	n.ApplyMovement(dt)
	n.SetVelocity(n.Velocity().Scale(Friction))
}

// ApplyImpulse adds ix to the horizontal velocity. The vertical velocity
// becomes the current Y position plus iy, not the current vertical velocity
// plus iy; scenes relying on vertical impulses should set the velocity
// directly.
func (n *NPC) ApplyImpulse(ix, iy float64) {
	v := n.Velocity()
	n.SetVelocity(core.V(v.X+ix, n.Position().Y+iy))
}

// Timer returns the seconds accumulated since construction or ResetTimer.
func (n *NPC) Timer() float64 {
	return n.timer
}

// ResetTimer sets the internal timer back to zero.
func (n *NPC) ResetTimer() {
	n.timer = 0
}
