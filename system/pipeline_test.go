package system

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/event"
	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/status"
)

func TestArrowRightMoves(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))

	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got := f.position(t, f.player); got != core.NewPosition(11, 10) {
		t.Errorf("Expected (11,10), got %v", got)
	}
	if !f.inputHandled(t) {
		t.Error("Expected input flag set after move")
	}

	if err := f.tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if f.inputHandled(t) {
		t.Error("Expected input flag reset on idle tick")
	}
}

func TestMoveIntoBorderIgnored(t *testing.T) {
	f := newFixture(t, core.NewPosition(1, 1))

	if err := f.tick(input.ArrowLeft); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got := f.position(t, f.player); got != core.NewPosition(1, 1) {
		t.Errorf("Expected player to stay at (1,1), got %v", got)
	}
	if f.inputHandled(t) {
		t.Error("Blocked move should not count as handled input")
	}
}

func TestArrowRightIntoGoblinDamages(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(11, 10), 10, component.AIIdling)

	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if got := f.health(t, goblin); got != 8 {
		t.Errorf("Expected goblin health 8, got %d", got)
	}
	if got := f.position(t, f.player); got != core.NewPosition(10, 10) {
		t.Errorf("Attacking player should not move, got %v", got)
	}
	if got := f.position(t, goblin); got != core.NewPosition(11, 10) {
		t.Errorf("Goblin should be blocked by the player, got %v", got)
	}
	if f.bus.Pending() != 0 {
		t.Errorf("Expected queue flushed, got %d pending", f.bus.Pending())
	}
}

func TestAISkipsWithoutPlayerInput(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(13, 10), 10, component.AIIdling)

	if err := f.tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got := f.position(t, goblin); got != core.NewPosition(13, 10) {
		t.Errorf("Expected goblin idle, got %v", got)
	}
	if f.reg.Int(status.AISkipped) != 1 {
		t.Errorf("Expected 1 skipped pass, got %d", f.reg.Int(status.AISkipped))
	}
}

func TestAIChasesAndAttacks(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(12, 10), 10, component.AIAngry)

	// Player steps next to the goblin; the angry goblin is adjacent and strikes
	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got := f.health(t, f.player); got != 14 {
		t.Errorf("Expected player health 14, got %d", got)
	}
	if f.reg.Int(status.AIAttacks) != 1 {
		t.Errorf("Expected 1 attack, got %d", f.reg.Int(status.AIAttacks))
	}
	if got := f.position(t, goblin); got != core.NewPosition(12, 10) {
		t.Errorf("Attacking goblin should not move, got %v", got)
	}
}

func TestAIIdleNoticesAndSteps(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(14, 10), 10, component.AIIdling)

	if err := f.tick(input.ArrowUp); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	// Player now at (10,9); goblin at (14,10) steps along the dominant x axis
	if got := f.position(t, goblin); got != core.NewPosition(13, 10) {
		t.Errorf("Expected (13,10), got %v", got)
	}
	state, _ := engine.ReadValue[component.AIComponent](f.world, goblin)
	if state.State != component.AIAngry {
		t.Errorf("Expected angry, got %v", state.State)
	}
}

func TestAIClaimedCellNotShared(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	victim := f.goblin(t, core.NewPosition(9, 10), 10, component.AIIdling)
	a := f.goblin(t, core.NewPosition(12, 9), 10, component.AIIdling)
	b := f.goblin(t, core.NewPosition(11, 8), 10, component.AIIdling)

	// Attacking keeps the player in place so both goblins aim for (11,9)
	if err := f.tick(input.ArrowLeft); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	target := core.NewPosition(11, 9)
	pa, pb := f.position(t, a), f.position(t, b)
	if pa == pb {
		t.Fatalf("Goblins share cell %v", pa)
	}
	if (pa == target) == (pb == target) {
		t.Errorf("Expected exactly one goblin at %v, got %v and %v", target, pa, pb)
	}
	if got := f.health(t, victim); got != 8 {
		t.Errorf("Expected attacked goblin at 8, got %d", got)
	}
}

func TestDeadCollected(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(11, 10), 2, component.AIIdling)

	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if f.world.Contains(goblin) {
		t.Error("Expected dead goblin despawned")
	}
	if f.reg.Int(status.DeathKilled) != 1 {
		t.Errorf("Expected 1 kill, got %d", f.reg.Int(status.DeathKilled))
	}

	// Walk into the freed cell
	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got := f.position(t, f.player); got != core.NewPosition(11, 10) {
		t.Errorf("Expected (11,10), got %v", got)
	}
}

func TestDamageToDespawnedTargetInvalidated(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(11, 10), 10, component.AIIdling)

	// Two hits land in the same flush after the target is already gone
	if err := f.world.Despawn(goblin); err != nil {
		t.Fatalf("Despawn failed: %v", err)
	}
	f.bus.Enqueue(&event.Damage{To: goblin, Amount: 2})
	f.bus.Enqueue(&event.Damage{To: goblin, Amount: 2})

	if err := f.tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if f.reg.Int(status.EventsInvalidated) != 2 {
		t.Errorf("Expected 2 invalidated events, got %d", f.reg.Int(status.EventsInvalidated))
	}
}

func TestPlayerMissingIsGameOver(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))

	if err := f.world.Despawn(f.player); err != nil {
		t.Fatalf("Despawn failed: %v", err)
	}
	err := f.tick(input.ArrowRight)
	if !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestPlayerKilledEndsGame(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	f.goblin(t, core.NewPosition(12, 10), 10, component.AIAngry)

	ref, err := engine.GetMut[component.HealthComponent](f.world, f.player)
	if err != nil {
		t.Fatalf("GetMut failed: %v", err)
	}
	ref.Value().Current = 1
	ref.Release()

	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if f.world.Contains(f.player) {
		t.Fatal("Expected player despawned after lethal hit")
	}
	if err := f.tick(); !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("Expected ErrGameOver on next tick, got %v", err)
	}
}

func TestInputFlagClearedWhenCallFails(t *testing.T) {
	f := newFixture(t, core.NewPosition(10, 10))
	goblin := f.goblin(t, core.NewPosition(13, 10), 8, component.AIIdling)

	if err := f.tick(input.ArrowRight); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !f.inputHandled(t) {
		t.Fatal("Expected input flag set after move")
	}
	before := f.position(t, goblin)

	// A held position borrow makes the occupancy snapshot fail
	held, err := engine.GetMut[core.Position](f.world, goblin)
	if err != nil {
		t.Fatalf("GetMut failed: %v", err)
	}
	err = f.systems[0].Call(f.world, input.NewKeyState(input.ArrowRight), f.bus)
	held.Release()
	if !errors.Is(err, engine.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict, got %v", err)
	}
	if f.inputHandled(t) {
		t.Error("Expected input flag cleared even though the call failed")
	}

	skipped := f.reg.Int(status.AISkipped)
	if err := f.systems[1].Call(f.world, nil, f.bus); err != nil {
		t.Fatalf("AI call failed: %v", err)
	}
	if got := f.reg.Int(status.AISkipped); got != skipped+1 {
		t.Errorf("Expected AI to skip, skipped %d -> %d", skipped, got)
	}
	if got := f.position(t, goblin); got != before {
		t.Errorf("Expected goblin to stay at %v, got %v", before, got)
	}
}
