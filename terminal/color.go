package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/duke-roguelike/core"
)

// RGBAToTcell converts an RGBA to a true-color tcell color
func RGBAToTcell(c core.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toColorful(c core.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Tint fades base toward grey as ratio falls from 1 to 0
// Blending happens in Lab space so hue survives until the colour is nearly grey
func Tint(base core.RGBA, ratio float64) core.RGBA {
	ratio = max(0, min(1, ratio))
	if ratio == 1 {
		return base
	}
	mixed := toColorful(core.RGBAGrey).BlendLab(toColorful(base), ratio).Clamped()
	r, g, b := mixed.RGB255()
	return core.RGBA{R: r, G: g, B: b, A: base.A}
}
