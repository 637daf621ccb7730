package render

import "github.com/vovakirdan/simcore/internal/entity"

// DrawAll draws every active entity that is also a Drawable, in order.
// It returns how many were handed to the sink.
func DrawAll(s Sink, entities []entity.Entity) int {
	n := 0
	for _, e := range entities {
		if !e.Active() {
			continue
		}
		if d, ok := e.(Drawable); ok {
			s.Draw(d)
			n++
		}
	}
	return n
}

// HUD writes text lines from the top-left corner when s supports overlays.
func HUD(s Sink, lines ...string) {
	o, ok := s.(Overlay)
	if !ok {
		return
	}
	for i, line := range lines {
		o.Text(0, i, line)
	}
}
