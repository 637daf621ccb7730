package movement

import (
	"math/rand"

	"github.com/vovakirdan/simcore/internal/core"
)

// Manager groups the player and NPC controllers behind one value so a scene
// can hold a single movement dependency.
type Manager struct {
	player *PlayerController
	npc    *NPCController
}

// NewManager creates a manager whose player controller polls input and whose
// NPC controller draws from rng.
func NewManager(input core.InputSource, rng *rand.Rand) *Manager {
	return &Manager{
		player: NewPlayerController(input),
		npc:    NewNPCController(rng),
	}
}

// Player returns the player controller.
func (m *Manager) Player() *PlayerController { return m.player }

// NPC returns the NPC controller.
func (m *Manager) NPC() *NPCController { return m.npc }

// HandleWASD moves b from the held WASD and arrow keys.
func (m *Manager) HandleWASD(b Body, speed, dt float64) {
	m.player.HandleWASD(b, speed, dt)
}

// HandleWASDNormalized is HandleWASD with diagonals scaled to speed.
func (m *Manager) HandleWASDNormalized(b Body, speed, dt float64) {
	m.player.HandleWASDNormalized(b, speed, dt)
}

// WanderRandomly moves b along dir, picking a new one every interval.
func (m *Manager) WanderRandomly(b Body, speed float64, dir *core.Vec2, timer *float64, interval, dt float64) {
	m.npc.WanderRandomly(b, speed, dir, timer, interval, dt)
}

// WanderToRandomPoints walks b to target, then picks another point in area.
func (m *Manager) WanderToRandomPoints(b Body, speed float64, target *core.Vec2, stopDistance float64, area core.Rect, dt float64) {
	m.npc.WanderToRandomPoints(b, speed, target, stopDistance, area, dt)
}

// ChaseTarget moves b toward target.
func (m *Manager) ChaseTarget(b, target Body, speed, dt float64) {
	m.npc.ChaseTarget(b, target, speed, dt)
}

// ChaseIfInRange chases target when it is within rng and reports whether it did.
func (m *Manager) ChaseIfInRange(b, target Body, speed, rng, dt float64) bool {
	return m.npc.ChaseIfInRange(b, target, speed, rng, dt)
}

// FleeFromThreat moves b away from threat.
func (m *Manager) FleeFromThreat(b, threat Body, speed, dt float64) {
	m.npc.FleeFromThreat(b, threat, speed, dt)
}

// FleeIfTooClose flees threat when it is within rng and reports whether it did.
func (m *Manager) FleeIfTooClose(b, threat Body, speed, rng, dt float64) bool {
	return m.npc.FleeIfTooClose(b, threat, speed, rng, dt)
}

// Center returns the centre of b.
func (m *Manager) Center(b Body) core.Vec2 { return Center(b) }

// Distance returns the distance between the centres of a and b.
func (m *Manager) Distance(a, b Body) float64 { return Distance(a, b) }

// DirectionTo returns the unit vector from one centre to the other.
func (m *Manager) DirectionTo(from, to Body) core.Vec2 { return DirectionTo(from, to) }

// DirectionAwayFrom returns the unit vector pointing from threat to from.
func (m *Manager) DirectionAwayFrom(from, threat Body) core.Vec2 {
	return DirectionAwayFrom(from, threat)
}

// InRange reports whether the centres of a and b are within rng.
func (m *Manager) InRange(a, b Body, rng float64) bool { return InRange(a, b, rng) }

// AngleTo returns the heading between the centres in degrees.
func (m *Manager) AngleTo(from, to Body) float64 { return AngleTo(from, to) }

// ApplyVelocity moves b by v over dt.
func (m *Manager) ApplyVelocity(b Body, v core.Vec2, dt float64) {
	ApplyVelocity(b, v, dt)
}

// KeepInside clamps b to area.
func (m *Manager) KeepInside(b Body, area core.Rect) {
	KeepInside(b, area)
}
