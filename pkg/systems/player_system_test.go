package systems

import (
	"testing"

	"github.com/gonewx/skyraid/pkg/components"
)

func TestFireOffsets(t *testing.T) {
	tests := []struct {
		level int
		want  []float64
	}{
		{0, []float64{0}},
		{1, []float64{-10, 10}},
		{2, []float64{-15, 0, 15}},
		{3, []float64{-16, -8, 0, 8, 16}},
		{9, []float64{-16, -8, 0, 8, 16}},
	}
	for _, tt := range tests {
		got := FireOffsets(tt.level)
		if len(got) != len(tt.want) {
			t.Errorf("level %d: got %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("level %d: got %v, want %v", tt.level, got, tt.want)
				break
			}
		}
	}
}

// TestPowerLevel2FiresThreeBullets 火力等级2开火：3颗子弹，偏移 -15/0/+15，同一高度
func TestPowerLevel2FiresThreeBullets(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]
	ship.PowerLevel = 2

	if !sim.Players.TryFire(ship) {
		t.Fatal("TryFire failed")
	}
	bullets := ship.Bullets.Items()
	if len(bullets) != 3 {
		t.Fatalf("bullets = %d, want 3", len(bullets))
	}
	want := []float64{-15, 0, 15}
	for i, b := range bullets {
		if off := b.CenterX() - ship.CenterX(); off != want[i] {
			t.Errorf("bullet %d offset = %v, want %v", i, off, want[i])
		}
		if b.Y != bullets[0].Y {
			t.Errorf("bullet %d y = %v, want %v", i, b.Y, bullets[0].Y)
		}
		if b.Owner != ship.Index {
			t.Errorf("bullet %d owner = %d", i, b.Owner)
		}
	}
}

func TestFireCooldown(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	ship := gs.Ships[0]

	gs.NowMs = 0
	if !sim.Players.TryFire(ship) {
		t.Fatal("first shot should fire")
	}
	gs.NowMs = 99
	if sim.Players.TryFire(ship) {
		t.Error("shot inside the 100ms cooldown should be refused")
	}
	gs.NowMs = 100
	if !sim.Players.TryFire(ship) {
		t.Error("shot after the cooldown should fire")
	}
}

func TestStunnedShipIgnoresInput(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]
	ship.Stunned = true
	x, y := ship.X, ship.Y

	sim.Players.Update([]ShipIntent{{DX: 1, DY: -1, Fire: true}})

	if ship.X != x || ship.Y != y {
		t.Error("Stunned ship should not move")
	}
	if ship.Bullets.Len() != 0 {
		t.Error("Stunned ship should not fire")
	}
}

func TestShipClampedToPlayfield(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]

	for i := 0; i < 500; i++ {
		sim.Players.Update([]ShipIntent{{DX: -5, DY: 1}})
	}
	pf := sim.State().Config.Playfield
	if ship.X != 0 {
		t.Errorf("X = %v, want 0", ship.X)
	}
	if ship.Y != pf.Height-ship.Height {
		t.Errorf("Y = %v, want %v", ship.Y, pf.Height-ship.Height)
	}
}

func TestBulletsRemovedPastTop(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]
	ship.Bullets.Add(&components.Projectile{Body: components.Body{Y: 5, Width: 4, Height: 12, VY: -10}})
	ship.Bullets.Add(&components.Projectile{Body: components.Body{Y: 300, Width: 4, Height: 12, VY: -10}})

	sim.Players.Update(nil)
	if ship.Bullets.Len() != 2 {
		t.Fatalf("bullets = %d, want 2 (first still overlaps the top edge)", ship.Bullets.Len())
	}
	sim.Players.Update(nil)
	if ship.Bullets.Len() != 1 {
		t.Errorf("bullets = %d, want 1", ship.Bullets.Len())
	}
}

func TestCollectPowerLevel(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]
	ship.PowerLevel = components.MaxPowerLevel - 1

	sim.Players.CollectPowerLevel(ship)
	sim.Players.CollectPowerLevel(ship)
	if ship.PowerLevel != components.MaxPowerLevel {
		t.Errorf("PowerLevel = %d, want %d", ship.PowerLevel, components.MaxPowerLevel)
	}
	if !sim.Effects.Active(ship.ID, components.EffectPower) {
		t.Error("Power decay should be armed")
	}

	// 每次拾取重新开始计时
	sim.Effects.Update(5000)
	sim.Players.CollectPowerLevel(ship)
	sim.Effects.Update(10000)
	if ship.PowerLevel != components.MaxPowerLevel {
		t.Errorf("decay should be re-armed by the pickup at 5000, level = %d", ship.PowerLevel)
	}
	sim.Effects.Update(11000)
	if ship.PowerLevel != components.MaxPowerLevel-1 {
		t.Errorf("PowerLevel = %d, want %d", ship.PowerLevel, components.MaxPowerLevel-1)
	}
}

func TestFireSpecialBurst(t *testing.T) {
	sim := newTestSim(t, 1)
	ship := sim.State().Ships[0]

	n := sim.Players.FireSpecialBurst(ship)
	if n != 24 || ship.Bullets.Len() != 24 {
		t.Fatalf("burst = %d, bullets = %d, want 24", n, ship.Bullets.Len())
	}
	for _, b := range ship.Bullets.Items() {
		if b.Tag != components.ProjectileSpecial {
			t.Errorf("burst bullet tag = %v", b.Tag)
		}
	}

	// 特殊弹离开任一边界都会被删除
	for i := 0; i < 200; i++ {
		sim.Players.Update(nil)
	}
	if ship.Bullets.Len() != 0 {
		t.Errorf("burst bullets left = %d", ship.Bullets.Len())
	}
}
