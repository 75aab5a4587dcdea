package game

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/config"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
	"github.com/lixenwraith/duke-roguelike/system"
)

// Game owns the world, the bus and the scheduler driving them
type Game struct {
	cfg       *config.Config
	world     *engine.World
	bus       *event.Bus
	scheduler *Scheduler
	status    *status.Registry
	rng       *rand.Rand
	player    core.Entity
}

// Option configures a Game at construction
type Option func(*Game)

// WithSeed makes goblin placement and health reproducible
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRegistry reports metrics into reg instead of a private registry
func WithRegistry(reg *status.Registry) Option {
	return func(g *Game) {
		g.status = reg
	}
}

// New wires the standard pipeline: input, ai, damage, death, wave
func New(cfg *config.Config, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.Default()
	}

	g := &Game{
		cfg:    cfg,
		world:  engine.NewWorld(),
		status: status.NewRegistry(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.bus = event.NewBus(g.status)
	g.scheduler = NewScheduler(
		system.NewInputSystem(cfg.Console.Width, cfg.Console.Height, cfg.Player.AttackDamage),
		system.NewAISystem(cfg.Console.Width, cfg.Console.Height, cfg.Goblins.AttackDamage, g.status),
		system.NewDamageSystem(g.status),
		system.NewDeadCollector(g.status),
		system.NewWaveSystem(system.WaveFromConfig(cfg), cfg.Waves.Respawn, g.rng, g.status),
	)
	g.scheduler.Instrument(g.status)
	return g
}

// Bootstrap spawns the player and the first wave, then initializes the systems
func (g *Game) Bootstrap() error {
	player, err := system.SpawnPlayer(g.world, g.cfg)
	if err != nil {
		return err
	}
	g.player = player

	goblins, err := system.SpawnGoblins(g.world, g.rng, system.WaveFromConfig(g.cfg))
	if err != nil {
		return err
	}

	if err := g.scheduler.Init(g.world, g.bus); err != nil {
		return errors.Wrap(err, "bootstrap")
	}

	logger.Component("game").
		WithField("player", player).
		WithField("goblins", len(goblins)).
		Info("world bootstrapped")
	g.updateStatus()
	return nil
}

// Tick advances the simulation once with the keys held this frame
func (g *Game) Tick(in input.Reader) error {
	err := g.scheduler.Tick(g.world, in, g.bus)
	g.updateStatus()
	if errors.Is(err, engine.ErrGameOver) {
		g.status.Bools.Get(status.GameOver).Store(true)
	}
	return err
}

// Stop terminates the scheduler; later ticks fail with ErrSchedulerState
func (g *Game) Stop() {
	g.scheduler.Stop()
}

func (g *Game) updateStatus() {
	health, err := engine.ReadValue[component.HealthComponent](g.world, g.player)
	if err != nil {
		g.status.Floats.Get(status.PlayerHealthRatio).Store(0)
		return
	}
	g.status.Floats.Get(status.PlayerHealthRatio).Store(max(health.Ratio(), 0))
}

func (g *Game) World() *engine.World     { return g.world }
func (g *Game) Bus() *event.Bus          { return g.bus }
func (g *Game) Scheduler() *Scheduler    { return g.scheduler }
func (g *Game) Status() *status.Registry { return g.status }
func (g *Game) Player() core.Entity      { return g.player }
func (g *Game) Config() *config.Config   { return g.cfg }
