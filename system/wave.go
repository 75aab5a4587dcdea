package system

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

// WaveSystem spawns a fresh goblin wave once no AI entity remains
type WaveSystem struct {
	wave    Wave
	respawn bool
	rng     *rand.Rand

	statWaves *atomic.Int64
}

func NewWaveSystem(wave Wave, respawn bool, rng *rand.Rand, reg *status.Registry) *WaveSystem {
	return &WaveSystem{
		wave:      wave,
		respawn:   respawn,
		rng:       rng,
		statWaves: reg.Ints.Get(status.WavesSpawned),
	}
}

func (s *WaveSystem) Name() string {
	return "wave"
}

func (s *WaveSystem) Init(*engine.World, *event.Bus) error {
	return nil
}

func (s *WaveSystem) Call(w *engine.World, _ input.Reader, _ *event.Bus) error {
	if !s.respawn || s.wave.Count <= 0 {
		return nil
	}
	if engine.Count[component.AIComponent](w) > 0 {
		return nil
	}
	if engine.Count[component.PlayerComponent](w) == 0 {
		return nil
	}

	ents, err := SpawnGoblins(w, s.rng, s.wave)
	if err != nil {
		return err
	}
	n := s.statWaves.Add(1)
	logger.Component(s.Name()).WithField("wave", n).WithField("goblins", len(ents)).Info("wave spawned")
	return nil
}
