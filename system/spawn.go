package system

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/config"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/parameter"
)

// SpawnPlayer creates the player at the console centre
func SpawnPlayer(w *engine.World, cfg *config.Config) (core.Entity, error) {
	area := core.NewConsoleArea(cfg.Console.Width, cfg.Console.Height)
	e, err := w.Spawn(
		engine.Of(area.Center()),
		engine.Of(component.GlyphComponent{Rune: parameter.PlayerGlyph, Color: core.RGBARed}),
		engine.Of(component.NewHealth(uint32(cfg.Player.Health))),
		engine.Of(component.InputStateComponent{}),
		engine.Of(component.PlayerComponent{}),
	)
	if err != nil {
		return core.NoEntity, errors.Wrap(err, "spawn player")
	}
	return e, nil
}

// Wave describes one batch of goblins
type Wave struct {
	Count     int
	MinHealth int // Inclusive
	MaxHealth int // Exclusive
	ViewRange int
	MapWidth  int // Positions fall in [1, MapWidth] x [1, MapHeight]
	MapHeight int
}

// WaveFromConfig sizes a wave to the console interior
func WaveFromConfig(cfg *config.Config) Wave {
	mapW, mapH := core.NewConsoleArea(cfg.Console.Width, cfg.Console.Height).Interior()
	return Wave{
		Count:     cfg.Goblins.Count,
		MinHealth: cfg.Goblins.MinHealth,
		MaxHealth: cfg.Goblins.MaxHealth,
		ViewRange: cfg.Goblins.ViewRange,
		MapWidth:  mapW,
		MapHeight: mapH,
	}
}

// SpawnGoblins creates a wave in one batch
// Occupied cells are re-rolled up to SpawnRetryLimit times, after which that goblin is skipped
func SpawnGoblins(w *engine.World, rng *rand.Rand, wave Wave) ([]core.Entity, error) {
	if wave.Count <= 0 {
		return nil, nil
	}
	if wave.MapWidth <= 0 || wave.MapHeight <= 0 || wave.MaxHealth <= wave.MinHealth {
		return nil, errors.Errorf("invalid wave %+v", wave)
	}

	occ, err := SnapshotOccupancy(w)
	if err != nil {
		return nil, err
	}

	bundles := make([]engine.Bundle, 0, wave.Count)
	for i := 0; i < wave.Count; i++ {
		pos, ok := freeCell(rng, wave, occ)
		if !ok {
			logger.Log.WithField("wave_index", i).Debug("no free cell for goblin")
			continue
		}
		occ[pos] = core.NoEntity

		hp := rng.IntN(wave.MaxHealth-wave.MinHealth) + wave.MinHealth
		bundles = append(bundles, engine.Bundle{
			engine.Of(component.AIComponent{State: component.AIIdling}),
			engine.Of(pos),
			engine.Of(component.NewHealth(uint32(hp))),
			engine.Of(component.VisionComponent{ViewRange: uint32(wave.ViewRange)}),
			engine.Of(component.GlyphComponent{Rune: parameter.GoblinGlyph, Color: core.RGBAGreen}),
		})
	}

	ents, err := w.SpawnBatch(bundles)
	if err != nil {
		return nil, errors.Wrap(err, "spawn goblins")
	}
	return ents, nil
}

func freeCell(rng *rand.Rand, wave Wave, occ Occupancy) (core.Position, bool) {
	for range parameter.SpawnRetryLimit {
		pos := core.NewPosition(rng.IntN(wave.MapWidth)+1, rng.IntN(wave.MapHeight)+1)
		if _, taken := occ[pos]; !taken {
			return pos, true
		}
	}
	return core.Position{}, false
}
