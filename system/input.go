package system

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
)

// InputSystem moves the player one cell per arrow key, or attacks the occupant of the destination
type InputSystem struct {
	area   core.Area
	damage int32

	flagEntity core.Entity
	log        *logrus.Entry
}

func NewInputSystem(width, height, attackDamage int) *InputSystem {
	return &InputSystem{
		area:   core.NewConsoleArea(width, height),
		damage: int32(attackDamage),
	}
}

func (s *InputSystem) Name() string {
	return "input"
}

// Init locates the input flag entity
func (s *InputSystem) Init(w *engine.World, _ *event.Bus) error {
	e, err := locateInputState(w)
	if err != nil {
		return err
	}
	s.flagEntity = e
	s.log = logger.Component(s.Name())
	return nil
}

// Call clears the input flag first, so a failed tick never leaves the previous tick's flag set
func (s *InputSystem) Call(w *engine.World, in input.Reader, bus *event.Bus) error {
	flag, err := engine.GetMut[component.InputStateComponent](w, s.flagEntity)
	if err != nil {
		return errors.Wrap(err, "input flag")
	}
	defer flag.Release()
	flag.Value().WasInputHandledThisFrame = false

	occ, err := SnapshotOccupancy(w)
	if err != nil {
		return err
	}

	player, pos, err := LocatePlayer(w)
	if errors.Is(err, engine.ErrMissingEntity) {
		return errors.Wrap(engine.ErrGameOver, "player is gone")
	}
	if err != nil {
		return err
	}

	dir, ok := input.FirstDirection(in)
	if !ok {
		return nil
	}

	dest := pos.Offset(dir.DX, dir.DY)
	if !s.area.Contains(dest) {
		return nil
	}

	if occupant, taken := occ.Occupant(dest); taken {
		bus.Enqueue(&event.Damage{From: player, To: occupant, Amount: s.damage})
		flag.Value().WasInputHandledThisFrame = true
		s.log.WithFields(logrus.Fields{"entity": player, "target": occupant}).Debug("player attacks")
		return nil
	}

	ref, err := engine.GetMut[core.Position](w, player)
	if err != nil {
		return errors.Wrap(err, "move player")
	}
	*ref.Value() = dest
	ref.Release()

	flag.Value().WasInputHandledThisFrame = true
	return nil
}
