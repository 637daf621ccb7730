// Package render defines the rendering sink that scenes draw into and a
// character-cell implementation backed by core.Screen.
// The simulation core never imports this package; scenes do.
package render

import "github.com/vovakirdan/simcore/internal/core"

// Drawable is anything a sink can place in the world.
type Drawable interface {
	// Texture returns the texture handle. Empty means nothing is drawn.
	Texture() string
	Position() core.Vec2
	Size() (w, h float64)
}

// Sink receives one frame of drawables at a time.
type Sink interface {
	BeginFrame()
	Draw(d Drawable)
	EndFrame()
	Resize(width, height int)
}

// Overlay is implemented by sinks that can show HUD text on top of the world.
type Overlay interface {
	Text(col, row int, text string)
}

// Discard is a sink that only counts what it is given. Used headless.
type Discard struct {
	Frames int
	Draws  int
	Width  int
	Height int
}

// BeginFrame implements Sink.
func (d *Discard) BeginFrame() { d.Frames++ }

// Draw implements Sink.
func (d *Discard) Draw(dr Drawable) {
	if dr != nil && dr.Texture() != "" {
		d.Draws++
	}
}

// EndFrame implements Sink.
func (d *Discard) EndFrame() {}

// Resize implements Sink.
func (d *Discard) Resize(width, height int) {
	d.Width, d.Height = width, height
}

var _ Sink = (*Discard)(nil)
