package component

import "github.com/lixenwraith/duke-roguelike/core"

// GlyphComponent is what the renderer draws at the entity's position
type GlyphComponent struct {
	Rune  rune
	Color core.RGBA
}
