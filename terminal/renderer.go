package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/status"
)

const floorRune = '.'

// HUD is the data shown on the status line under the map
type HUD struct {
	Ticks    int64
	Health   int32
	MaxHP    uint32
	Kills    int64
	GameOver bool
}

// NewHUD reads the status line values from the registry and the player's health
func NewHUD(reg *status.Registry, w *engine.World, player core.Entity) HUD {
	hud := HUD{
		Ticks:    reg.Int(status.EngineTicks),
		Kills:    reg.Int(status.DeathKilled),
		GameOver: reg.Bools.Get(status.GameOver).Load(),
	}
	if h, err := engine.ReadValue[component.HealthComponent](w, player); err == nil {
		hud.Health, hud.MaxHP = h.Current, h.Total
	}
	return hud
}

func (h HUD) String() string {
	if h.GameOver {
		return fmt.Sprintf(" GAME OVER  tick %d  kills %d  (q to quit)", h.Ticks, h.Kills)
	}
	return fmt.Sprintf(" tick %d  HP %d/%d  kills %d", h.Ticks, max(h.Health, 0), h.MaxHP, h.Kills)
}

// Renderer draws the map area and the status line on a tcell screen
type Renderer struct {
	screen tcell.Screen
	area   core.Area

	floorStyle  tcell.Style
	statusStyle tcell.Style
}

func NewRenderer(screen tcell.Screen, width, height int) *Renderer {
	return &Renderer{
		screen: screen,
		area:   core.NewConsoleArea(width, height),
		floorStyle: tcell.StyleDefault.
			Foreground(RGBAToTcell(core.RGBAGrey)).
			Background(tcell.ColorBlack),
		statusStyle: tcell.StyleDefault.
			Foreground(tcell.ColorWhite).
			Background(tcell.ColorBlack),
	}
}

// Draw paints one frame: floor, every glyph at its position, then the status line
func (r *Renderer) Draw(w *engine.World, hud HUD) error {
	r.screen.Clear()
	r.drawFloor()

	if err := r.drawGlyphs(w); err != nil {
		return err
	}

	r.drawStatus(hud.String())
	r.screen.Show()
	return nil
}

func (r *Renderer) drawFloor() {
	for y := 0; y < r.area.Height; y++ {
		for x := 0; x < r.area.Width; x++ {
			r.screen.SetContent(x, y, floorRune, nil, r.floorStyle)
		}
	}
}

func (r *Renderer) drawGlyphs(w *engine.World) error {
	q := engine.NewQuery2[core.Position, component.GlyphComponent](w, engine.Read, engine.Read)
	for e, row := range q.Iter() {
		pos, glyph := *row.First, *row.Second
		if pos.X < 0 || pos.Y < 0 || pos.X >= r.area.Width || pos.Y >= r.area.Height {
			continue
		}

		color := glyph.Color
		if h, err := engine.ReadValue[component.HealthComponent](w, e); err == nil {
			color = Tint(color, h.Ratio())
		}
		style := tcell.StyleDefault.Foreground(RGBAToTcell(color)).Background(tcell.ColorBlack)
		r.screen.SetContent(pos.X, pos.Y, glyph.Rune, nil, style)
	}
	return q.Err()
}

// drawStatus writes line below the map, truncated to the screen width
func (r *Renderer) drawStatus(line string) {
	width, _ := r.screen.Size()
	if width <= 0 {
		width = r.area.Width
	}
	line = runewidth.Truncate(line, width, "…")

	x, y := 0, r.area.Height
	for _, ch := range line {
		r.screen.SetContent(x, y, ch, nil, r.statusStyle)
		x += runewidth.RuneWidth(ch)
	}
}
