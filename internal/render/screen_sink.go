package render

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/core"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// ScreenSink projects a y-up world onto a core.Screen.
// The world keeps its aspect ratio and is centred in the screen (fit viewport).
type ScreenSink struct {
	screen *core.Screen
	worldW float64
	worldH float64
	atlas  Atlas
	logger *log.Logger
	warned map[string]bool

	// Viewport in screen cells, recomputed on Resize.
	offX, offY int
	vw, vh     int

	draws int
}

// NewScreenSink creates a sink drawing into screen. A nil atlas uses DefaultAtlas.
func NewScreenSink(screen *core.Screen, world core.Rect, atlas Atlas, logger *log.Logger) *ScreenSink {
	if atlas == nil {
		atlas = DefaultAtlas()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &ScreenSink{
		screen: screen,
		worldW: world.W,
		worldH: world.H,
		atlas:  atlas,
		logger: logger,
		warned: make(map[string]bool),
	}
	s.layout()
	return s
}

// layout computes the viewport for the current screen size.
func (s *ScreenSink) layout() {
	w, h := s.screen.Width(), s.screen.Height()
	if w <= 0 || h <= 0 || s.worldW <= 0 || s.worldH <= 0 {
		s.vw, s.vh, s.offX, s.offY = 0, 0, 0, 0
		return
	}

	scale := math.Min(float64(w)/s.worldW, cellAspect*float64(h)/s.worldH)
	s.vw = core.Clamp(int(math.Round(s.worldW*scale)), 1, w)
	s.vh = core.Clamp(int(math.Round(s.worldH*scale/cellAspect)), 1, h)
	s.offX = (w - s.vw) / 2
	s.offY = (h - s.vh) / 2
}

// Screen returns the target screen.
func (s *ScreenSink) Screen() *core.Screen {
	return s.screen
}

// Viewport returns the area of the screen the world occupies.
func (s *ScreenSink) Viewport() (x, y, w, h int) {
	return s.offX, s.offY, s.vw, s.vh
}

// Draws returns the number of drawables placed in the current frame.
func (s *ScreenSink) Draws() int {
	return s.draws
}

// BeginFrame clears the screen.
func (s *ScreenSink) BeginFrame() {
	s.screen.Clear()
	s.draws = 0
}

// Draw fills the cells covered by d with its glyph.
// Unknown textures are skipped with one warning per handle.
func (s *ScreenSink) Draw(d Drawable) {
	if d == nil || s.vw == 0 {
		return
	}
	tex := d.Texture()
	if tex == "" {
		return
	}
	g, ok := s.atlas.Lookup(tex)
	if !ok {
		if !s.warned[tex] {
			s.warned[tex] = true
			s.logger.Warn("unknown texture", "texture", tex)
		}
		return
	}

	pos := d.Position()
	w, h := d.Size()
	c0, c1 := s.span(pos.X, pos.X+w, s.worldW, s.vw)
	// y is up in the world and down on screen
	r0, r1 := s.span(s.worldH-(pos.Y+h), s.worldH-pos.Y, s.worldH, s.vh)

	// Clip to the viewport
	c0, c1 = max(c0, 0), min(c1, s.vw)
	r0, r1 = max(r0, 0), min(r1, s.vh)
	if c0 >= c1 || r0 >= r1 {
		return
	}

	s.screen.FillRect(s.offX+c0, s.offY+r0, c1-c0, r1-r0, core.Cell{Rune: g.Rune, Color: g.Color})
	s.draws++
}

// span maps a world interval to cells, covering at least one cell.
func (s *ScreenSink) span(lo, hi, world float64, cells int) (int, int) {
	a := int(math.Floor(lo / world * float64(cells)))
	b := int(math.Ceil(hi / world * float64(cells)))
	if b <= a {
		b = a + 1
	}
	return a, b
}

// EndFrame implements Sink.
func (s *ScreenSink) EndFrame() {}

// Resize changes the screen size and recomputes the viewport.
func (s *ScreenSink) Resize(width, height int) {
	s.screen.Resize(width, height)
	s.layout()
}

// Text writes HUD text in screen coordinates.
func (s *ScreenSink) Text(col, row int, text string) {
	s.screen.DrawText(col, row, text)
}

var (
	_ Sink    = (*ScreenSink)(nil)
	_ Overlay = (*ScreenSink)(nil)
)
