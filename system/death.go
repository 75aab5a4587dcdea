package system

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

// DeadCollector announces entities at or below zero health and despawns them
type DeadCollector struct {
	statKilled *atomic.Int64
	log        *logrus.Entry
}

func NewDeadCollector(reg *status.Registry) *DeadCollector {
	return &DeadCollector{
		statKilled: reg.Ints.Get(status.DeathKilled),
	}
}

func (s *DeadCollector) Name() string {
	return "death"
}

func (s *DeadCollector) Init(_ *engine.World, bus *event.Bus) error {
	s.log = logger.Component(s.Name())
	return event.Subscribe(bus, s.Name(), 0, s.despawn)
}

// Call snapshots the dead before publishing, so despawns never run under the health borrow
func (s *DeadCollector) Call(w *engine.World, _ input.Reader, bus *event.Bus) error {
	var dead []core.Entity

	q := engine.NewQuery1[component.HealthComponent](w, engine.Read)
	for e, row := range q.Iter() {
		if row.First.IsDead() {
			dead = append(dead, e)
		}
	}
	if err := q.Err(); err != nil {
		return errors.Wrap(err, "collect dead")
	}

	var failed int
	for _, e := range dead {
		if err := bus.Publish(w, &event.DeadEntity{Entity: e}); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d death notifications failed", failed, len(dead))
	}
	return nil
}

func (s *DeadCollector) despawn(w *engine.World, d *event.DeadEntity) error {
	if err := w.Despawn(d.Entity); err != nil {
		s.log.WithField("entity", d.Entity).WithError(err).Warn("despawn failed")
		return nil
	}
	s.statKilled.Add(1)
	s.log.WithField("entity", d.Entity).Debug("despawned")
	return nil
}
