package systems

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
)

func newTestShip(id uint64) *components.Ship {
	ship := &components.Ship{Active: true}
	ship.ID = ecsID(id)
	return ship
}

// TestStunRefreshResetsClock t=0 眩晕 1000ms，t=500 再次眩晕，应持续到 t=1500
func TestStunRefreshResetsClock(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)

	es.Update(0)
	es.Stun(ship, 1000)
	es.Update(500)
	es.Stun(ship, 1000)

	es.Update(1000)
	if !ship.Stunned {
		t.Fatal("Ship should still be stunned at t=1000")
	}
	es.Update(1499)
	if !ship.Stunned {
		t.Fatal("Ship should still be stunned at t=1499")
	}
	es.Update(1500)
	if ship.Stunned {
		t.Error("Ship should recover at t=1500")
	}
	if es.Len() != 0 {
		t.Errorf("Pending effects = %d, want 0", es.Len())
	}
}

// TestShieldRefreshSingleTimer 护盾期间再次获得护盾只延长，不叠加
func TestShieldRefreshSingleTimer(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)
	expired := 0

	es.Update(0)
	es.Apply(ship, components.EffectShield, 10000, func() { expired++ })
	es.Update(4000)
	es.Apply(ship, components.EffectShield, 10000, func() { expired++ })

	if es.Len() != 1 {
		t.Errorf("Pending effects = %d, want 1", es.Len())
	}
	if got := es.Remaining(ship.ID, components.EffectShield); got != 10000 {
		t.Errorf("Remaining = %v, want 10000", got)
	}
	es.Update(10000)
	if expired != 0 {
		t.Error("First shield timer should have been cancelled")
	}
	es.Update(14000)
	if expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}
}

func TestExpiryIgnoredForInactiveOwner(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)
	called := false

	es.Apply(ship, components.EffectStun, 100, func() { called = true })
	ship.Active = false
	es.Update(200)

	if called {
		t.Error("Expiry should be a no-op for an inactive owner")
	}
	if es.Len() != 0 {
		t.Error("Expired effect should be discarded")
	}
}

func TestPowerDecayRearms(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)
	ship.PowerLevel = 3
	es.ArmPowerDecay(ship, 6000)

	want := []int{2, 1, 0, 0}
	for i, w := range want {
		es.Update(float64(6000 * (i + 1)))
		if ship.PowerLevel != w {
			t.Fatalf("after %d decays level = %d, want %d", i+1, ship.PowerLevel, w)
		}
	}
	if es.Active(ship.ID, components.EffectPower) {
		t.Error("Decay should stop at level 0")
	}
}

func TestExpiryOrder(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	var order []string
	a, b := newTestShip(1), newTestShip(2)

	es.Apply(a, components.EffectStun, 300, func() { order = append(order, "a") })
	es.Apply(b, components.EffectStun, 100, func() { order = append(order, "b") })
	es.Apply(a, components.EffectShield, 200, func() { order = append(order, "a-shield") })
	es.Update(1000)

	want := []string{"b", "a-shield", "a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestCancelAll(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)
	other := newTestShip(2)
	es.Stun(ship, 1000)
	es.Shield(ship, 1000)
	es.Stun(other, 1000)

	if n := es.CancelAll(ship.ID); n != 2 {
		t.Errorf("CancelAll = %d, want 2", n)
	}
	if es.Cancel(ship.ID, components.EffectStun) {
		t.Error("Cancel after CancelAll should report nothing cancelled")
	}
	es.Update(2000)
	if !ship.Stunned || !ship.Shielded {
		t.Error("Cancelled effects must not run their expiry")
	}
	if other.Stunned {
		t.Error("Other ship's effect should still expire")
	}
}

func TestExpiryPanicIsContained(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	a, b := newTestShip(1), newTestShip(2)
	es.Apply(a, components.EffectStun, 10, func() { panic("boom") })
	es.Stun(b, 20)

	es.Update(100)
	if b.Stunned {
		t.Error("A failing expiry should not block later expiries")
	}
}

// TestResetReleasesQueuedEffects Reset 后队列底层数组不再引用旧的效果和回调
func TestResetReleasesQueuedEffects(t *testing.T) {
	es := NewEffectSystem(zerolog.Nop())
	ship := newTestShip(1)
	es.Stun(ship, 1000)
	es.Shield(ship, 2000)
	es.ArmPowerDecay(ship, 3000)

	es.Reset()

	if es.Len() != 0 || es.queue.Len() != 0 {
		t.Fatalf("Reset should empty the queue, pending=%d queued=%d", es.Len(), es.queue.Len())
	}
	for i, e := range es.queue[:cap(es.queue)] {
		if e != nil {
			t.Errorf("queue slot %d still holds an effect after Reset", i)
		}
	}
	es.Update(5000)
	if !ship.Stunned || !ship.Shielded {
		t.Error("Effects dropped by Reset must not expire")
	}
}
