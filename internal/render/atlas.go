package render

import "github.com/vovakirdan/simcore/internal/core"

// Glyph is how a texture handle looks on a character screen.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Atlas maps texture handles to glyphs.
type Atlas map[string]Glyph

// Texture handles used by the bundled scenes.
const (
	TexturePlayer   = "player"
	TextureChaser   = "chaser"
	TextureFleer    = "fleer"
	TextureWanderer = "wanderer"
	TextureCircle   = "circle"
	TextureTriangle = "triangle"
	TextureWall     = "wall"
)

// DefaultAtlas returns a fresh copy of the built-in glyph table.
func DefaultAtlas() Atlas {
	return Atlas{
		TexturePlayer:   {Rune: '@', Color: core.ColorGreen},
		TextureChaser:   {Rune: 'X', Color: core.ColorRed},
		TextureFleer:    {Rune: 'o', Color: core.ColorCyan},
		TextureWanderer: {Rune: '*', Color: core.ColorYellow},
		TextureCircle:   {Rune: 'O', Color: core.ColorMagenta},
		TextureTriangle: {Rune: '^', Color: core.ColorOrange},
		TextureWall:     {Rune: '#', Color: core.ColorGray},
	}
}

// Lookup returns the glyph for a handle.
func (a Atlas) Lookup(texture string) (Glyph, bool) {
	g, ok := a[texture]
	return g, ok
}
