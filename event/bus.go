package event

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

type subscription struct {
	name     string
	priority int
	call     func(w *engine.World, ev Event) error
}

// Bus routes events to subscribers, immediately via Publish or deferred via Enqueue/DispatchAll
//
// Architecture:
//   - One subscriber list per Kind, sorted by priority, registration order on ties
//   - Handlers run synchronously on the publishing goroutine
//   - A failing handler is logged; the remaining handlers still run
//   - Events with no subscriber are dropped and counted
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind][]subscription

	pending queue

	dispatched *atomic.Int64
	dropped    *atomic.Int64
}

// NewBus creates a bus reporting into reg; nil reg uses a private registry
func NewBus(reg *status.Registry) *Bus {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Bus{
		subs:       make(map[Kind][]subscription),
		dispatched: reg.Ints.Get(status.EventsDispatched),
		dropped:    reg.Ints.Get(status.EventsDropped),
	}
}

// Subscribe registers fn for events of type T; lower priority runs first
func Subscribe[T Event](b *Bus, name string, priority int, fn func(*engine.World, T) error) error {
	if fn == nil {
		return errors.Errorf("subscribe %s: nil handler", name)
	}

	var zero T
	kind := zero.Kind()

	sub := subscription{
		name:     name,
		priority: priority,
		call: func(w *engine.World, ev Event) error {
			typed, ok := ev.(T)
			if !ok {
				return errors.Errorf("handler %s: unexpected payload %T", name, ev)
			}
			return fn(w, typed)
		},
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Copy on write; a Publish in progress keeps iterating the old slice
	subs := append(slices.Clone(b.subs[kind]), sub)
	slices.SortStableFunc(subs, func(x, y subscription) int {
		return cmp.Compare(x.priority, y.priority)
	})
	b.subs[kind] = subs
	return nil
}

// Publish invokes every subscriber of ev's kind before returning
// Returns a wrapped error naming how many handlers failed
func (b *Bus) Publish(w *engine.World, ev Event) error {
	kind, err := kindOf(ev)
	if err != nil {
		return errors.Wrap(err, "publish")
	}

	b.mu.RLock()
	subs := b.subs[kind]
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.dropped.Add(1)
		logger.Log.WithField("event", kind).Debug("event dropped, no subscribers")
		return nil
	}

	var (
		failed   int
		firstErr error
	)
	for _, s := range subs {
		if err := s.call(w, ev); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			logger.Log.WithFields(logrus.Fields{
				"component": "event",
				"event":     kind,
				"handler":   s.name,
			}).WithError(err).Warn("event handler failed")
		}
	}
	b.dispatched.Add(1)

	if failed > 0 {
		return errors.Wrapf(firstErr, "%s: %d of %d handlers failed", kind, failed, len(subs))
	}
	return nil
}

// Enqueue defers ev to the next DispatchAll; safe from any goroutine
func (b *Bus) Enqueue(ev Event) {
	b.pending.push(ev)
}

// DispatchAll publishes every event pending at call time, in FIFO order
// Events enqueued by handlers during the flush wait for the next one
func (b *Bus) DispatchAll(w *engine.World) (int, error) {
	events := b.pending.drain()

	var (
		failed   int
		firstErr error
	)
	for _, ev := range events {
		if err := b.Publish(w, ev); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if failed > 0 {
		return len(events), errors.Wrapf(firstErr, "%d of %d events failed", failed, len(events))
	}
	return len(events), nil
}

// Pending returns the number of deferred events
func (b *Bus) Pending() int {
	return b.pending.len()
}

// HandlerCount returns the number of subscribers for kind
func (b *Bus) HandlerCount(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[kind])
}
