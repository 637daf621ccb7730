// Package movement provides movement behaviour primitives. Every behaviour
// moves a body by mutating its position by direction * speed * dt; velocity
// is left untouched.
package movement

import (
	"math"

	"github.com/vovakirdan/simcore/internal/core"
)

// Body is anything with a position and a size.
// entity.Sprite and every type embedding it satisfy it.
type Body interface {
	Position() core.Vec2
	SetPosition(p core.Vec2)
	Size() (w, h float64)
}

// Center returns the centre point of b.
func Center(b Body) core.Vec2 {
	w, h := b.Size()
	return b.Position().Add(core.V(w/2, h/2))
}

// Distance returns the Euclidean distance between the centres of a and b.
func Distance(a, b Body) float64 {
	return Center(b).Sub(Center(a)).Len()
}

// DirectionTo returns the unit vector from the centre of from towards the
// centre of to, or the zero vector when the centres coincide.
func DirectionTo(from, to Body) core.Vec2 {
	return Center(to).Sub(Center(from)).Normalize()
}

// DirectionAwayFrom returns the unit vector pointing from the centre of
// threat through the centre of from, or the zero vector when they coincide.
func DirectionAwayFrom(from, threat Body) core.Vec2 {
	return Center(from).Sub(Center(threat)).Normalize()
}

// InRange reports whether the centres of a and b are at most rng apart.
func InRange(a, b Body, rng float64) bool {
	return Distance(a, b) <= rng
}

// AngleTo returns the heading from from to to in degrees, in (-180, 180].
// Coincident centres give 0.
func AngleTo(from, to Body) float64 {
	d := DirectionTo(from, to)
	deg := math.Atan2(d.Y, d.X) * 180 / math.Pi
	if deg == -180 {
		return 180
	}
	return deg
}

// ApplyVelocity moves b by v * dt.
func ApplyVelocity(b Body, v core.Vec2, dt float64) {
	b.SetPosition(b.Position().Add(v.Scale(dt)))
}

// step moves b along the unit vector dir at speed for dt.
func step(b Body, dir core.Vec2, speed, dt float64) {
	b.SetPosition(b.Position().Add(dir.Scale(speed * dt)))
}

// KeepInside clamps b so it lies entirely within area.
// Bodies larger than area are pinned to its bottom-left corner.
func KeepInside(b Body, area core.Rect) {
	w, h := b.Size()
	p := b.Position()
	p.X = math.Max(area.X, math.Min(p.X, area.Right()-w))
	p.Y = math.Max(area.Y, math.Min(p.Y, area.Top()-h))
	b.SetPosition(p)
}
