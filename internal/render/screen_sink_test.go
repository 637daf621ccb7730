package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/entity"
)

type item struct {
	tex  string
	pos  core.Vec2
	w, h float64
}

func (i item) Texture() string          { return i.tex }
func (i item) Position() core.Vec2      { return i.pos }
func (i item) Size() (float64, float64) { return i.w, i.h }

func newSink(t *testing.T, w, h int) (*ScreenSink, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf)
	return NewScreenSink(core.NewScreen(w, h), core.NewRect(0, 0, 800, 600), nil, logger), &buf
}

func TestViewportFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		x, y, vw, vh int
	}{
		{"wide terminal", 80, 24, 8, 0, 64, 24},
		{"tall terminal", 40, 40, 0, 12, 40, 15},
		{"exact fit", 80, 30, 0, 0, 80, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newSink(t, tc.w, tc.h)
			x, y, vw, vh := s.Viewport()
			if x != tc.x || y != tc.y || vw != tc.vw || vh != tc.vh {
				t.Errorf("Viewport() = (%d,%d,%d,%d), expected (%d,%d,%d,%d)",
					x, y, vw, vh, tc.x, tc.y, tc.vw, tc.vh)
			}
		})
	}
}

func TestDrawProjectsYUp(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	s.BeginFrame()
	s.Draw(item{tex: TexturePlayer, pos: core.V(0, 0), w: 100, h: 75})
	s.EndFrame()

	scr := s.Screen()
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			inside := x >= 8 && x <= 15 && y >= 21 && y <= 23
			got := scr.GetCell(x, y)
			if inside && (got.Rune != '@' || got.Color != core.ColorGreen) {
				t.Fatalf("cell (%d,%d) = %q, expected '@'", x, y, got.Rune)
			}
			if !inside && got.Rune != ' ' {
				t.Fatalf("cell (%d,%d) = %q, expected blank", x, y, got.Rune)
			}
		}
	}
	if s.Draws() != 1 {
		t.Errorf("Draws() = %d, expected 1", s.Draws())
	}
}

func TestDrawTinyEntityCoversOneCell(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	s.BeginFrame()
	s.Draw(item{tex: TextureChaser, pos: core.V(400, 300), w: 1, h: 1})
	count := strings.Count(s.Screen().String(), "X")
	if count != 1 {
		t.Errorf("tiny entity covered %d cells, expected 1", count)
	}
}

func TestDrawClipsOutsideWorld(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	s.BeginFrame()
	s.Draw(item{tex: TextureWall, pos: core.V(-1000, -1000), w: 10, h: 10})
	s.Draw(item{tex: TextureWall, pos: core.V(790, 590), w: 100, h: 100})

	if s.Draws() != 1 {
		t.Errorf("Draws() = %d, expected only the partially visible entity", s.Draws())
	}
	// Partially visible wall lands in the top-right corner of the viewport
	if got := s.Screen().Get(71, 0); got != '#' {
		t.Errorf("top-right viewport cell = %q, expected '#'", got)
	}
	if got := s.Screen().Get(72, 0); got != ' ' {
		t.Errorf("cell right of viewport = %q, expected blank", got)
	}
}

func TestDrawSkipsEmptyAndUnknownTextures(t *testing.T) {
	s, buf := newSink(t, 80, 24)
	s.BeginFrame()
	s.Draw(item{tex: "", pos: core.V(0, 0), w: 100, h: 100})
	s.Draw(item{tex: "ghost", pos: core.V(0, 0), w: 100, h: 100})
	s.Draw(item{tex: "ghost", pos: core.V(0, 0), w: 100, h: 100})
	s.Draw(nil)

	if s.Draws() != 0 {
		t.Errorf("Draws() = %d, expected 0", s.Draws())
	}
	if strings.TrimSpace(s.Screen().String()) != "" {
		t.Error("screen should stay blank")
	}
	if n := strings.Count(buf.String(), "unknown texture"); n != 1 {
		t.Errorf("logged %d warnings, expected 1 per texture", n)
	}
}

func TestBeginFrameClears(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	s.BeginFrame()
	s.Draw(item{tex: TexturePlayer, pos: core.V(0, 0), w: 100, h: 100})
	s.BeginFrame()
	if strings.Contains(s.Screen().String(), "@") {
		t.Error("BeginFrame should clear the previous frame")
	}
	if s.Draws() != 0 {
		t.Error("BeginFrame should reset the draw count")
	}
}

func TestResizeRecomputesViewport(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	s.Resize(160, 48)
	if s.Screen().Width() != 160 || s.Screen().Height() != 48 {
		t.Fatalf("screen not resized: %dx%d", s.Screen().Width(), s.Screen().Height())
	}
	x, y, vw, vh := s.Viewport()
	if x != 16 || y != 0 || vw != 128 || vh != 48 {
		t.Errorf("Viewport() = (%d,%d,%d,%d) after resize", x, y, vw, vh)
	}

	s.Resize(0, 0)
	s.BeginFrame()
	s.Draw(item{tex: TexturePlayer, pos: core.V(0, 0), w: 100, h: 100})
	if s.Draws() != 0 {
		t.Error("drawing on an empty screen should be a no-op")
	}
}

func TestOverlayText(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	var o Overlay = s
	o.Text(0, 0, "HUD")
	if got := s.Screen().Row(0)[:3]; got != "HUD" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestDiscard(t *testing.T) {
	var d Discard
	d.BeginFrame()
	d.Draw(item{tex: TexturePlayer})
	d.Draw(item{})
	d.Draw(nil)
	d.EndFrame()
	d.Resize(10, 5)

	if d.Frames != 1 || d.Draws != 1 || d.Width != 10 || d.Height != 5 {
		t.Errorf("Discard = %+v", d)
	}
}

func TestDefaultAtlasIsCopy(t *testing.T) {
	a := DefaultAtlas()
	a[TexturePlayer] = Glyph{Rune: '?'}
	if g, _ := DefaultAtlas().Lookup(TexturePlayer); g.Rune != '@' {
		t.Error("DefaultAtlas should return an independent map")
	}
}

func TestDrawAllSkipsInactiveAndUndrawable(t *testing.T) {
	visible := entity.NewSprite(0, 0, 100, 100, entity.WithTexture(TexturePlayer))
	hidden := entity.NewSprite(400, 300, 100, 100, entity.WithTexture(TextureChaser))
	hidden.SetActive(false)
	bare := entity.NewNPC("ghost", 0, 0, 10, 10)

	var d Discard
	n := DrawAll(&d, []entity.Entity{visible, hidden, bare})
	if n != 2 {
		t.Errorf("DrawAll() = %d, expected the two active sprites", n)
	}
	if d.Draws != 1 {
		t.Errorf("Discard.Draws = %d, expected only the textured sprite", d.Draws)
	}
}

func TestHUD(t *testing.T) {
	s, _ := newSink(t, 80, 24)
	HUD(s, "one", "two")
	if !strings.HasPrefix(s.Screen().Row(1), "two") {
		t.Errorf("Row(1) = %q", s.Screen().Row(1))
	}
	HUD(&Discard{}, "ignored")
}
