package system

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/ai"
	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

// AISystem runs one decision per AI entity on ticks where the player acted
type AISystem struct {
	area   core.Area
	damage int32

	player     core.Entity
	flagEntity core.Entity

	statSkipped *atomic.Int64
	statMoves   *atomic.Int64
	statAttacks *atomic.Int64

	log *logrus.Entry
}

func NewAISystem(width, height, attackDamage int, reg *status.Registry) *AISystem {
	return &AISystem{
		area:        core.NewConsoleArea(width, height),
		damage:      int32(attackDamage),
		statSkipped: reg.Ints.Get(status.AISkipped),
		statMoves:   reg.Ints.Get(status.AIMoves),
		statAttacks: reg.Ints.Get(status.AIAttacks),
	}
}

func (s *AISystem) Name() string {
	return "ai"
}

// Init caches the player and input flag entities
func (s *AISystem) Init(w *engine.World, _ *event.Bus) error {
	player, _, err := LocatePlayer(w)
	if err != nil {
		return err
	}
	flag, err := locateInputState(w)
	if err != nil {
		return err
	}
	s.player, s.flagEntity = player, flag
	s.log = logger.Component(s.Name())
	return nil
}

func (s *AISystem) Call(w *engine.World, _ input.Reader, bus *event.Bus) error {
	flag, err := engine.ReadValue[component.InputStateComponent](w, s.flagEntity)
	if err != nil {
		return errors.Wrap(err, "input flag")
	}
	if !flag.WasInputHandledThisFrame {
		s.statSkipped.Add(1)
		return nil
	}

	occ, err := SnapshotOccupancy(w)
	if err != nil {
		return err
	}

	playerPos, err := engine.ReadValue[core.Position](w, s.player)
	if errors.Is(err, engine.ErrMissingEntity) {
		return errors.Wrap(engine.ErrGameOver, "player is gone")
	}
	if err != nil {
		return err
	}

	claimed := make(map[core.Position]struct{})

	q := engine.NewQuery4[component.AIComponent, core.Position, component.HealthComponent, component.VisionComponent](
		w, engine.Write, engine.Write, engine.Read, engine.Read)
	for e, row := range q.Iter() {
		action := ai.Decide(row.First, playerPos, *row.Second, *row.Third, *row.Fourth)

		switch action.Kind {
		case ai.ActionGoTo:
			next := row.Second.StepTowards(action.Target)
			if !s.canEnter(next, occ, claimed) {
				continue
			}
			claimed[next] = struct{}{}
			*row.Second = next
			s.statMoves.Add(1)

		case ai.ActionAttack:
			target, ok := occ.Occupant(action.Target)
			if !ok {
				continue
			}
			bus.Enqueue(&event.Damage{From: e, To: target, Amount: s.damage})
			s.statAttacks.Add(1)
		}

		s.log.WithFields(logrus.Fields{
			"entity": e,
			"action": action,
			"state":  row.First.State,
		}).Trace("ai decided")
	}

	return q.Err()
}

// canEnter rejects out-of-bounds cells, cells occupied before this tick and cells claimed this tick
func (s *AISystem) canEnter(p core.Position, occ Occupancy, claimed map[core.Position]struct{}) bool {
	if !s.area.Contains(p) {
		return false
	}
	if _, taken := occ[p]; taken {
		return false
	}
	_, dup := claimed[p]
	return !dup
}
