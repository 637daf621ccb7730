package movement

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/simcore/internal/core"
)

// NPCController implements the wander, chase and flee behaviours.
// Randomness comes from the injected source so runs are reproducible.
type NPCController struct {
	rng *rand.Rand
}

// NewNPCController creates a controller drawing from rng.
// A nil rng falls back to a source seeded with 1.
func NewNPCController(rng *rand.Rand) *NPCController {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &NPCController{rng: rng}
}

// WanderRandomly counts *timer down by dt and, once it reaches zero, picks a
// uniformly random heading in [0, 2π) into *dir and resets *timer to
// interval. b then moves along *dir.
func (c *NPCController) WanderRandomly(b Body, speed float64, dir *core.Vec2, timer *float64, interval, dt float64) {
	*timer -= dt
	if *timer <= 0 {
		angle := c.rng.Float64() * 2 * math.Pi
		*dir = core.V(math.Cos(angle), math.Sin(angle))
		*timer = interval
	}
	step(b, *dir, speed, dt)
}

// WanderToRandomPoints moves b towards *target. The distance is measured
// before anything changes: closer than stopDistance re-rolls *target
// uniformly inside area, and b still moves towards the old target that frame
// unless it sat exactly on it.
func (c *NPCController) WanderToRandomPoints(b Body, speed float64, target *core.Vec2, stopDistance float64, area core.Rect, dt float64) {
	delta := target.Sub(Center(b))
	dist := delta.Len()

	if dist < stopDistance {
		*target = core.V(
			area.X+c.rng.Float64()*area.W,
			area.Y+c.rng.Float64()*area.H,
		)
	}
	if dist > 0 {
		step(b, delta.Scale(1/dist), speed, dt)
	}
}

// ChaseTarget moves b straight towards the centre of target.
func (c *NPCController) ChaseTarget(b, target Body, speed, dt float64) {
	step(b, DirectionTo(b, target), speed, dt)
}

// ChaseIfInRange chases target when it is within rng and reports whether it did.
func (c *NPCController) ChaseIfInRange(b, target Body, speed, rng, dt float64) bool {
	if !InRange(b, target, rng) {
		return false
	}
	c.ChaseTarget(b, target, speed, dt)
	return true
}

// FleeFromThreat moves b straight away from the centre of threat.
func (c *NPCController) FleeFromThreat(b, threat Body, speed, dt float64) {
	step(b, DirectionAwayFrom(b, threat), speed, dt)
}

// FleeIfTooClose flees from threat when it is within rng and reports whether
// it did.
func (c *NPCController) FleeIfTooClose(b, threat Body, speed, rng, dt float64) bool {
	if !InRange(b, threat, rng) {
		return false
	}
	c.FleeFromThreat(b, threat, speed, dt)
	return true
}
