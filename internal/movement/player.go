package movement

import "github.com/vovakirdan/simcore/internal/core"

// PlayerController moves bodies from held keys: W/Up is +Y, S/Down is -Y,
// A/Left is -X and D/Right is +X.
type PlayerController struct {
	input core.InputSource
}

// NewPlayerController creates a controller polling input.
func NewPlayerController(input core.InputSource) *PlayerController {
	return &PlayerController{input: input}
}

func (c *PlayerController) held(a, b core.Key) bool {
	return c.input != nil && (c.input.IsHeld(a) || c.input.IsHeld(b))
}

// HandleWASD moves b speed * dt along every held axis independently, so
// diagonals are faster by a factor of √2.
func (c *PlayerController) HandleWASD(b Body, speed, dt float64) {
	d := speed * dt
	p := b.Position()
	if c.held(core.KeyW, core.KeyUp) {
		p.Y += d
	}
	if c.held(core.KeyS, core.KeyDown) {
		p.Y -= d
	}
	if c.held(core.KeyA, core.KeyLeft) {
		p.X -= d
	}
	if c.held(core.KeyD, core.KeyRight) {
		p.X += d
	}
	b.SetPosition(p)
}

// HandleWASDNormalized sums the held directions, normalises the result and
// moves b at speed along it. Nothing moves when the directions cancel out.
func (c *PlayerController) HandleWASDNormalized(b Body, speed, dt float64) {
	dir := c.Direction()
	if dir.IsZero() {
		return
	}
	step(b, dir, speed, dt)
}

// Direction returns the normalised direction of the held keys.
func (c *PlayerController) Direction() core.Vec2 {
	var v core.Vec2
	if c.held(core.KeyW, core.KeyUp) {
		v.Y++
	}
	if c.held(core.KeyS, core.KeyDown) {
		v.Y--
	}
	if c.held(core.KeyA, core.KeyLeft) {
		v.X--
	}
	if c.held(core.KeyD, core.KeyRight) {
		v.X++
	}
	return v.Normalize()
}
