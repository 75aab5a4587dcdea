package system

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

// DamageSystem owns health mutation and is the single flush point of the deferred queue
type DamageSystem struct {
	statInvalidated *atomic.Int64
	log             *logrus.Entry
}

func NewDamageSystem(reg *status.Registry) *DamageSystem {
	return &DamageSystem{
		statInvalidated: reg.Ints.Get(status.EventsInvalidated),
	}
}

func (s *DamageSystem) Name() string {
	return "damage"
}

func (s *DamageSystem) Init(_ *engine.World, bus *event.Bus) error {
	s.log = logger.Component(s.Name())
	return event.Subscribe(bus, s.Name(), 0, s.apply)
}

// Call dispatches every event queued this tick
func (s *DamageSystem) Call(w *engine.World, _ input.Reader, bus *event.Bus) error {
	n, err := bus.DispatchAll(w)
	if n > 0 {
		s.log.WithField("events", n).Trace("flushed")
	}
	return err
}

func (s *DamageSystem) apply(w *engine.World, d *event.Damage) error {
	ref, err := engine.GetMut[component.HealthComponent](w, d.To)
	if errors.Is(err, engine.ErrMissingEntity) {
		// Target despawned earlier in the tick
		s.statInvalidated.Add(1)
		s.log.WithField("event", d).Debug("damage target gone")
		return nil
	}
	if err != nil {
		return err
	}
	defer ref.Release()

	ref.Value().Current -= d.Amount
	s.log.WithFields(logrus.Fields{
		"entity": d.To,
		"from":   d.From,
		"amount": d.Amount,
		"health": ref.Value().Current,
	}).Debug("damage applied")
	return nil
}
