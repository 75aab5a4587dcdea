package event

import (
	"os"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
	"github.com/lixenwraith/duke-roguelike/logger"
	"github.com/lixenwraith/duke-roguelike/status"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error"})
	os.Exit(m.Run())
}

func TestPublishPriorityOrder(t *testing.T) {
	bus := NewBus(nil)
	world := engine.NewWorld()

	var order []string
	record := func(name string) func(*engine.World, *Damage) error {
		return func(*engine.World, *Damage) error {
			order = append(order, name)
			return nil
		}
	}

	Subscribe(bus, "late", 10, record("late"))
	Subscribe(bus, "first", -5, record("first"))
	Subscribe(bus, "tie-a", 0, record("tie-a"))
	Subscribe(bus, "tie-b", 0, record("tie-b"))

	if err := bus.Publish(world, &Damage{From: 1, To: 2, Amount: 1}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	want := []string{"first", "tie-a", "tie-b", "late"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
}

func TestHandlersSeeMutations(t *testing.T) {
	bus := NewBus(nil)

	Subscribe(bus, "double", 0, func(_ *engine.World, d *Damage) error {
		d.Amount *= 2
		return nil
	})
	var seen int32
	Subscribe(bus, "observe", 1, func(_ *engine.World, d *Damage) error {
		seen = d.Amount
		return nil
	})

	bus.Publish(engine.NewWorld(), &Damage{Amount: 3})
	if seen != 6 {
		t.Errorf("Expected later handler to see 6, got %d", seen)
	}
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus(nil)
	boom := errors.New("boom")

	Subscribe(bus, "fails", 0, func(*engine.World, *DeadEntity) error { return boom })
	ran := false
	Subscribe(bus, "runs", 1, func(*engine.World, *DeadEntity) error {
		ran = true
		return nil
	})

	err := bus.Publish(engine.NewWorld(), &DeadEntity{Entity: 4})
	if !ran {
		t.Error("Expected second handler to run")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped handler error, got %v", err)
	}
}

func TestDispatchAllExactlyOnceFIFO(t *testing.T) {
	reg := status.NewRegistry()
	bus := NewBus(reg)
	world := engine.NewWorld()

	var got []core.Entity
	Subscribe(bus, "collect", 0, func(_ *engine.World, d *Damage) error {
		got = append(got, d.To)
		return nil
	})

	for i := 1; i <= 3; i++ {
		bus.Enqueue(&Damage{To: core.Entity(i), Amount: 1})
	}
	if bus.Pending() != 3 {
		t.Fatalf("Expected 3 pending, got %d", bus.Pending())
	}

	n, err := bus.DispatchAll(world)
	if err != nil || n != 3 {
		t.Fatalf("Expected 3 dispatched, got %d (%v)", n, err)
	}
	for i, e := range got {
		if e != core.Entity(i+1) {
			t.Errorf("Expected FIFO order, got %v", got)
			break
		}
	}

	n, _ = bus.DispatchAll(world)
	if n != 0 || len(got) != 3 {
		t.Errorf("Expected second flush empty, got n=%d handled=%d", n, len(got))
	}
	if reg.Int(status.EventsDispatched) != 3 {
		t.Errorf("Expected 3 dispatched in registry, got %d", reg.Int(status.EventsDispatched))
	}
}

func TestEnqueueDuringDispatchDeferred(t *testing.T) {
	bus := NewBus(nil)
	world := engine.NewWorld()

	calls := 0
	Subscribe(bus, "chain", 0, func(_ *engine.World, d *Damage) error {
		calls++
		if d.Amount > 0 {
			bus.Enqueue(&Damage{Amount: d.Amount - 1})
		}
		return nil
	})

	bus.Enqueue(&Damage{Amount: 2})
	bus.DispatchAll(world)
	if calls != 1 || bus.Pending() != 1 {
		t.Errorf("Expected 1 call and 1 pending, got %d and %d", calls, bus.Pending())
	}
	bus.DispatchAll(world)
	bus.DispatchAll(world)
	if calls != 3 || bus.Pending() != 0 {
		t.Errorf("Expected 3 calls and none pending, got %d and %d", calls, bus.Pending())
	}
}

func TestNoSubscribersDropped(t *testing.T) {
	reg := status.NewRegistry()
	bus := NewBus(reg)

	bus.Enqueue(&DeadEntity{Entity: 1})
	n, err := bus.DispatchAll(engine.NewWorld())
	if err != nil || n != 1 {
		t.Fatalf("Expected silent drop, got n=%d err=%v", n, err)
	}
	if reg.Int(status.EventsDropped) != 1 {
		t.Errorf("Expected 1 dropped, got %d", reg.Int(status.EventsDropped))
	}
	if bus.HandlerCount(KindDeadEntity) != 0 {
		t.Error("Expected no handlers")
	}
}

func TestKindRouting(t *testing.T) {
	bus := NewBus(nil)
	damage, dead := 0, 0
	Subscribe(bus, "damage", 0, func(*engine.World, *Damage) error { damage++; return nil })
	Subscribe(bus, "dead", 0, func(*engine.World, *DeadEntity) error { dead++; return nil })

	world := engine.NewWorld()
	bus.Publish(world, &Damage{})
	bus.Publish(world, &DeadEntity{})
	bus.Publish(world, &DeadEntity{})

	if damage != 1 || dead != 2 {
		t.Errorf("Expected 1 damage and 2 dead, got %d and %d", damage, dead)
	}
	if err := bus.Publish(world, nil); err == nil {
		t.Error("Expected error publishing nil")
	}
	if err := Subscribe[*Damage](bus, "nil", 0, nil); err == nil {
		t.Error("Expected error subscribing nil handler")
	}
}

func TestPublishRejectsTypedNil(t *testing.T) {
	bus := NewBus(nil)
	world := engine.NewWorld()

	called := 0
	Subscribe(bus, "damage", 0, func(_ *engine.World, d *Damage) error {
		called++
		_ = d.Amount
		return nil
	})
	Subscribe(bus, "dead", 0, func(_ *engine.World, d *DeadEntity) error {
		called++
		_ = d.Entity
		return nil
	})

	for _, ev := range []Event{(*Damage)(nil), (*DeadEntity)(nil)} {
		if err := bus.Publish(world, ev); !errors.Is(err, errNilEvent) {
			t.Errorf("Expected nil event error for %T, got %v", ev, err)
		}
	}
	if err := bus.Publish(world, nil); !errors.Is(err, errNilEvent) {
		t.Errorf("Expected nil event error for untyped nil, got %v", err)
	}
	if called != 0 {
		t.Errorf("Expected no handler calls, got %d", called)
	}
}
