package status

import "testing"

func TestRegistryCountersAreShared(t *testing.T) {
	reg := NewRegistry()

	ticks := reg.Ints.Get(EngineTicks)
	ticks.Add(3)
	reg.Ints.Get(EngineTicks).Add(1)

	if got := reg.Int(EngineTicks); got != 4 {
		t.Errorf("Expected 4 ticks, got %d", got)
	}
	if got := reg.Int(DeathKilled); got != 0 {
		t.Errorf("Expected unregistered metric to read 0, got %d", got)
	}
	if reg.Ints.Has(DeathKilled) {
		t.Error("Reading an unregistered metric should not register it")
	}
}

func TestRegistryAllSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(AIMoves)
	reg.Ints.Get(AIAttacks)
	reg.Ints.Get(AISkipped)

	var keys []string
	for key := range reg.Ints.All() {
		keys = append(keys, key)
		// Registering mid-iteration must not deadlock
		reg.Ints.Get(WavesSpawned)
	}

	want := []string{AIAttacks, AIMoves, AISkipped}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Expected key %q at %d, got %q", want[i], i, keys[i])
		}
	}
}

func TestAtomicFloat(t *testing.T) {
	reg := NewRegistry()
	ratio := reg.Floats.Get(PlayerHealthRatio)
	if ratio.Load() != 0 {
		t.Errorf("Expected zero value 0, got %v", ratio.Load())
	}
	ratio.Store(0.75)
	if got := reg.Floats.Get(PlayerHealthRatio).Load(); got != 0.75 {
		t.Errorf("Expected 0.75, got %v", got)
	}
	if reg.TotalCount() != 1 {
		t.Errorf("Expected 1 metric, got %d", reg.TotalCount())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(EngineTicks).Store(9)
	reg.Bools.Get(GameOver).Store(true)
	reg.Floats.Get(PlayerHealthRatio).Store(0.5)

	snap := reg.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(snap))
	}
	if snap[EngineTicks] != int64(9) {
		t.Errorf("Expected ticks 9, got %v", snap[EngineTicks])
	}
	if snap[GameOver] != true {
		t.Errorf("Expected game over true, got %v", snap[GameOver])
	}
	if snap[PlayerHealthRatio] != 0.5 {
		t.Errorf("Expected ratio 0.5, got %v", snap[PlayerHealthRatio])
	}
}
