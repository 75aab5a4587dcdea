package game

import (
	"context"
	"sync/atomic"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

// System is one ordered stage of a tick
type System interface {
	Name() string
	// Init runs once before the first tick; errors are fatal
	Init(w *engine.World, bus *event.Bus) error
	// Call runs once per tick; errors other than ErrGameOver are logged and the tick continues
	Call(w *engine.World, in input.Reader, bus *event.Bus) error
}

// Lifecycle states
const (
	StateUninitialized = "uninitialized"
	StateInitialized   = "initialized"
	StateRunning       = "running"
	StateTerminated    = "terminated"
)

const (
	eventInit  = "init"
	eventStart = "start"
	eventStop  = "stop"
)

// ErrSchedulerState reports a call not allowed in the current lifecycle state
var ErrSchedulerState = errors.New("scheduler state")

// Scheduler runs systems in registration order, once per tick
type Scheduler struct {
	systems   []System
	lifecycle *fsm.FSM
	tick      uint64

	statTicks  *atomic.Int64
	statErrors *atomic.Int64
}

// NewScheduler keeps systems in the given order; the order is load-bearing
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: systems}
	s.lifecycle = fsm.NewFSM(
		StateUninitialized,
		fsm.Events{
			{Name: eventInit, Src: []string{StateUninitialized}, Dst: StateInitialized},
			{Name: eventStart, Src: []string{StateInitialized}, Dst: StateRunning},
			{Name: eventStop, Src: []string{StateUninitialized, StateInitialized, StateRunning}, Dst: StateTerminated},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "scheduler",
					"from":      e.Src,
					"to":        e.Dst,
				}).Debug("lifecycle transition")
			},
		},
	)
	s.Instrument(status.NewRegistry())
	return s
}

// Instrument points the tick and error counters at reg
func (s *Scheduler) Instrument(reg *status.Registry) {
	s.statTicks = reg.Ints.Get(status.EngineTicks)
	s.statErrors = reg.Ints.Get(status.SystemErrors)
}

// State returns the lifecycle state name
func (s *Scheduler) State() string {
	return s.lifecycle.Current()
}

// Ticks returns how many ticks have started
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Init initializes every system in order; only valid once
// A failing system terminates the scheduler, so a failed Init is final
func (s *Scheduler) Init(w *engine.World, bus *event.Bus) error {
	if !s.lifecycle.Can(eventInit) {
		return errors.Wrapf(ErrSchedulerState, "init in state %s", s.State())
	}

	for _, sys := range s.systems {
		if err := sys.Init(w, bus); err != nil {
			// Earlier systems may hold bus subscriptions; a retry would register them twice
			s.Stop()
			return errors.Wrapf(err, "init system %s", sys.Name())
		}
	}

	return s.transition(eventInit)
}

// Tick runs every system once in order
// The first tick starts the lifecycle; ErrGameOver terminates it and is returned
func (s *Scheduler) Tick(w *engine.World, in input.Reader, bus *event.Bus) error {
	if s.lifecycle.Is(StateInitialized) {
		if err := s.transition(eventStart); err != nil {
			return err
		}
	}
	if !s.lifecycle.Is(StateRunning) {
		return errors.Wrapf(ErrSchedulerState, "tick in state %s", s.State())
	}

	s.tick++
	s.statTicks.Add(1)

	for _, sys := range s.systems {
		err := sys.Call(w, in, bus)
		if err == nil {
			continue
		}

		if errors.Is(err, engine.ErrGameOver) {
			logger.Log.WithFields(logrus.Fields{
				"component": "scheduler",
				"system":    sys.Name(),
				"tick":      s.tick,
			}).Info(err.Error())
			s.Stop()
			return err
		}

		s.statErrors.Add(1)
		logger.Log.WithFields(logrus.Fields{
			"component": "scheduler",
			"system":    sys.Name(),
			"tick":      s.tick,
		}).WithError(err).Warn("system call failed")
	}

	return nil
}

// Stop terminates the lifecycle from any live state
func (s *Scheduler) Stop() {
	if s.lifecycle.Can(eventStop) {
		s.transition(eventStop)
	}
}

func (s *Scheduler) transition(name string) error {
	if err := s.lifecycle.Event(context.Background(), name); err != nil {
		return errors.Wrapf(err, "lifecycle %s", name)
	}
	return nil
}
