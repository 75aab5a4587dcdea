package status

import "sync/atomic"

// Metric keys shared by the scheduler, systems and the status line
const (
	EngineTicks       = "engine.ticks"
	SystemErrors      = "system.errors"
	EventsDispatched  = "events.dispatched"
	EventsDropped     = "events.dropped"
	EventsInvalidated = "events.invalidated"
	DeathKilled       = "death.killed"
	AISkipped         = "ai.skipped"
	AIMoves           = "ai.moves"
	AIAttacks         = "ai.attacks"
	WavesSpawned      = "waves.spawned"
	PlayerHealthRatio = "player.health_ratio"
	GameOver          = "game.over"
)

// Registry is the central metrics facade
// Systems cache pointers during init; Call loops write directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Int loads an integer metric, zero if never registered
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every metric into a flat map, suitable for structured log fields
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	for k, v := range r.Bools.All() {
		out[k] = v.Load()
	}
	for k, v := range r.Ints.All() {
		out[k] = v.Load()
	}
	for k, v := range r.Floats.All() {
		out[k] = v.Load()
	}
	return out
}
