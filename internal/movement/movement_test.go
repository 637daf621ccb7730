package movement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/simcore/internal/core"
)

type body struct {
	pos  core.Vec2
	w, h float64
}

func newBody(x, y, w, h float64) *body {
	return &body{pos: core.V(x, y), w: w, h: h}
}

func (b *body) Position() core.Vec2      { return b.pos }
func (b *body) SetPosition(p core.Vec2)  { b.pos = p }
func (b *body) Size() (float64, float64) { return b.w, b.h }

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func finite(v core.Vec2) bool {
	return core.IsFinite(v.X) && core.IsFinite(v.Y)
}

func TestCenterAndDistance(t *testing.T) {
	a := newBody(0, 0, 10, 20)
	b := newBody(30, 40, 10, 20)

	if c := Center(a); c != core.V(5, 10) {
		t.Errorf("Center() = %v, expected (5, 10)", c)
	}
	if d := Distance(a, b); d != 50 {
		t.Errorf("Distance() = %v, expected 50", d)
	}
}

func TestDirectionCoincidentCentres(t *testing.T) {
	a := newBody(5, 5, 10, 10)
	b := newBody(5, 5, 10, 10)

	if d := DirectionTo(a, a); !d.IsZero() || !finite(d) {
		t.Errorf("DirectionTo(a, a) = %v, expected zero vector", d)
	}
	if d := DirectionTo(a, b); !d.IsZero() {
		t.Errorf("DirectionTo with coincident centres = %v, expected zero vector", d)
	}
	if d := DirectionAwayFrom(a, b); !d.IsZero() {
		t.Errorf("DirectionAwayFrom with coincident centres = %v, expected zero vector", d)
	}
	if ang := AngleTo(a, b); ang != 0 {
		t.Errorf("AngleTo with coincident centres = %v, expected 0", ang)
	}
}

func TestDirections(t *testing.T) {
	a := newBody(0, 0, 2, 2)
	b := newBody(3, 4, 2, 2)

	if d := DirectionTo(a, b); !near(d, core.V(0.6, 0.8)) {
		t.Errorf("DirectionTo() = %v, expected (0.6, 0.8)", d)
	}
	if d := DirectionAwayFrom(a, b); !near(d, core.V(-0.6, -0.8)) {
		t.Errorf("DirectionAwayFrom() = %v, expected (-0.6, -0.8)", d)
	}
}

func TestInRangeInclusive(t *testing.T) {
	a := newBody(0, 0, 0, 0)
	b := newBody(3, 4, 0, 0)

	if !InRange(a, b, 5) {
		t.Error("distance equal to range should be in range")
	}
	if InRange(a, b, 4.999) {
		t.Error("distance beyond range should not be in range")
	}
}

func TestAngleTo(t *testing.T) {
	origin := newBody(0, 0, 0, 0)
	tests := []struct {
		name     string
		to       *body
		expected float64
	}{
		{"east", newBody(10, 0, 0, 0), 0},
		{"north", newBody(0, 10, 0, 0), 90},
		{"south", newBody(0, -10, 0, 0), -90},
		{"west", newBody(-10, 0, 0, 0), 180},
		{"north-east", newBody(10, 10, 0, 0), 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngleTo(origin, tc.to)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("AngleTo() = %v, expected %v", got, tc.expected)
			}
			if got <= -180 || got > 180 {
				t.Errorf("AngleTo() = %v outside (-180, 180]", got)
			}
		})
	}
}

func TestApplyVelocity(t *testing.T) {
	b := newBody(1, 1, 1, 1)
	ApplyVelocity(b, core.V(10, -20), 0.5)
	if b.pos != core.V(6, -9) {
		t.Errorf("Position() = %v, expected (6, -9)", b.pos)
	}
}

func TestHandleWASD(t *testing.T) {
	tests := []struct {
		name     string
		keys     []core.Key
		expected core.Vec2
	}{
		{"W up", []core.Key{core.KeyW}, core.V(0, 10)},
		{"arrow down", []core.Key{core.KeyDown}, core.V(0, -10)},
		{"A left", []core.Key{core.KeyA}, core.V(-10, 0)},
		{"arrow right", []core.Key{core.KeyRight}, core.V(10, 0)},
		{"diagonal is not normalised", []core.Key{core.KeyW, core.KeyD}, core.V(10, 10)},
		{"W and Up count once", []core.Key{core.KeyW, core.KeyUp}, core.V(0, 10)},
		{"opposites cancel", []core.Key{core.KeyA, core.KeyD}, core.V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := core.NewKeyState()
			for _, k := range tc.keys {
				in.Press(k)
			}
			b := newBody(0, 0, 1, 1)
			NewPlayerController(in).HandleWASD(b, 100, 0.1)
			if !near(b.pos, tc.expected) {
				t.Errorf("Position() = %v, expected %v", b.pos, tc.expected)
			}
		})
	}
}

func TestHandleWASDNormalized(t *testing.T) {
	in := core.NewKeyState()
	in.Press(core.KeyW)
	in.Press(core.KeyD)

	b := newBody(0, 0, 1, 1)
	NewPlayerController(in).HandleWASDNormalized(b, 100, 1)

	if l := b.pos.Len(); math.Abs(l-100) > 1e-9 {
		t.Errorf("diagonal distance = %v, expected 100", l)
	}
	if !near(b.pos, core.V(100/math.Sqrt2, 100/math.Sqrt2)) {
		t.Errorf("Position() = %v, expected equal diagonal components", b.pos)
	}

	in.Press(core.KeyA)
	in.Press(core.KeyS)
	before := b.pos
	NewPlayerController(in).HandleWASDNormalized(b, 100, 1)
	if b.pos != before {
		t.Errorf("cancelled input moved the body to %v", b.pos)
	}
}

func TestHandleWASDNilInput(t *testing.T) {
	b := newBody(3, 3, 1, 1)
	NewPlayerController(nil).HandleWASD(b, 100, 1)
	NewPlayerController(nil).HandleWASDNormalized(b, 100, 1)
	if b.pos != core.V(3, 3) {
		t.Errorf("nil input should not move the body, got %v", b.pos)
	}
}

func TestWanderRandomly(t *testing.T) {
	c := NewNPCController(rand.New(rand.NewSource(42)))
	b := newBody(0, 0, 1, 1)
	var dir core.Vec2
	var timer float64

	c.WanderRandomly(b, 10, &dir, &timer, 2, 0.5)

	if math.Abs(dir.Len()-1) > 1e-9 {
		t.Errorf("picked direction %v is not a unit vector", dir)
	}
	if timer != 2 {
		t.Errorf("timer = %v, expected reset to 2", timer)
	}
	if !near(b.pos, dir.Scale(5)) {
		t.Errorf("Position() = %v, expected %v", b.pos, dir.Scale(5))
	}

	prev := dir
	c.WanderRandomly(b, 10, &dir, &timer, 2, 0.5)
	if dir != prev {
		t.Error("direction should not change before the timer expires")
	}
	if timer != 1.5 {
		t.Errorf("timer = %v, expected 1.5", timer)
	}
}

func TestWanderToRandomPointsAtTarget(t *testing.T) {
	c := NewNPCController(rand.New(rand.NewSource(7)))
	area := core.NewRect(0, 0, 800, 600)
	b := newBody(95, 95, 10, 10)
	target := core.V(100, 100) // exactly the body's centre

	c.WanderToRandomPoints(b, 50, &target, 5, area, 0.016)

	if target == core.V(100, 100) {
		t.Error("target should be re-rolled on arrival")
	}
	if !area.Contains(target.X, target.Y) {
		t.Errorf("new target %v outside %v", target, area)
	}
	if b.pos != core.V(95, 95) {
		t.Errorf("body moved to %v on the arrival frame", b.pos)
	}
	if !finite(b.pos) {
		t.Error("position became non-finite")
	}
}

func TestWanderToRandomPointsApproach(t *testing.T) {
	c := NewNPCController(rand.New(rand.NewSource(7)))
	area := core.NewRect(0, 0, 800, 600)
	b := newBody(0, 0, 0, 0)
	target := core.V(100, 0)

	c.WanderToRandomPoints(b, 10, &target, 5, area, 1)

	if target != core.V(100, 0) {
		t.Error("target should be kept while far away")
	}
	if !near(b.pos, core.V(10, 0)) {
		t.Errorf("Position() = %v, expected (10, 0)", b.pos)
	}

	// Inside the stop distance but not on the target: re-roll and still step
	// towards the old target.
	b.pos = core.V(97, 0)
	c.WanderToRandomPoints(b, 1, &target, 5, area, 1)
	if target == core.V(100, 0) {
		t.Error("target should be re-rolled inside the stop distance")
	}
	if !near(b.pos, core.V(98, 0)) {
		t.Errorf("Position() = %v, expected (98, 0)", b.pos)
	}
}

func TestChaseAndFlee(t *testing.T) {
	c := NewNPCController(nil)
	hunter := newBody(0, 0, 0, 0)
	prey := newBody(10, 0, 0, 0)

	if !c.ChaseIfInRange(hunter, prey, 2, 10, 1) {
		t.Error("prey at range boundary should be chased")
	}
	if !near(hunter.pos, core.V(2, 0)) {
		t.Errorf("hunter at %v, expected (2, 0)", hunter.pos)
	}

	if c.ChaseIfInRange(hunter, prey, 2, 1, 1) {
		t.Error("prey out of range should not be chased")
	}
	if !near(hunter.pos, core.V(2, 0)) {
		t.Error("hunter should not move when out of range")
	}

	if !c.FleeIfTooClose(prey, hunter, 3, 8, 1) {
		t.Error("prey should flee a close hunter")
	}
	if !near(prey.pos, core.V(13, 0)) {
		t.Errorf("prey at %v, expected (13, 0)", prey.pos)
	}
	if c.FleeIfTooClose(prey, hunter, 3, 8, 1) {
		t.Error("prey should not flee once out of danger range")
	}
}

func TestChaseCoincidentDoesNotMove(t *testing.T) {
	c := NewNPCController(nil)
	a := newBody(4, 4, 2, 2)
	b := newBody(4, 4, 2, 2)

	c.ChaseTarget(a, b, 100, 1)
	c.FleeFromThreat(a, b, 100, 1)

	if a.pos != core.V(4, 4) || !finite(a.pos) {
		t.Errorf("coincident bodies should not move, got %v", a.pos)
	}
}

func TestManagerDelegates(t *testing.T) {
	in := core.NewKeyState()
	in.Press(core.KeyD)
	m := NewManager(in, rand.New(rand.NewSource(1)))

	b := newBody(0, 0, 2, 2)
	m.HandleWASDNormalized(b, 10, 1)
	if !near(b.pos, core.V(10, 0)) {
		t.Errorf("Position() = %v, expected (10, 0)", b.pos)
	}
	if m.Player() == nil || m.NPC() == nil {
		t.Error("sub-controllers should be exposed")
	}

	other := newBody(10, 10, 2, 2)
	if !m.InRange(b, other, m.Distance(b, other)) {
		t.Error("InRange at exact distance should be true")
	}
	if math.Abs(m.AngleTo(b, other)-90) > 1e-9 {
		t.Errorf("AngleTo() = %v, expected 90", m.AngleTo(b, other))
	}
}

func TestKeepInside(t *testing.T) {
	area := core.NewRect(0, 0, 100, 100)
	tests := []struct {
		name     string
		pos      core.Vec2
		w, h     float64
		expected core.Vec2
	}{
		{"inside", core.V(10, 20), 10, 10, core.V(10, 20)},
		{"past right and top", core.V(95, 120), 10, 10, core.V(90, 90)},
		{"below origin", core.V(-5, -30), 10, 10, core.V(0, 0)},
		{"larger than area", core.V(50, 50), 200, 200, core.V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &body{pos: tc.pos, w: tc.w, h: tc.h}
			KeepInside(b, area)
			if b.pos != tc.expected {
				t.Errorf("KeepInside() = %v, expected %v", b.pos, tc.expected)
			}
		})
	}
}
