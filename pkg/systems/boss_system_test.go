package systems

import (
	"math"
	"testing"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
)

func TestBossSpawnSingleInstance(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()

	if !sim.Bosses.Spawn(components.BossVariant1) {
		t.Fatal("first spawn failed")
	}
	first := gs.Boss
	if sim.Bosses.Spawn(components.BossVariant2) {
		t.Error("second boss must not spawn while one is active")
	}
	if gs.Boss != first {
		t.Error("active boss was replaced")
	}
	if first.Health != 500 || first.MaxHealth != 500 {
		t.Errorf("boss 1 health = %d/%d, want 500", first.Health, first.MaxHealth)
	}
	if countPending(gs, game.EventBossSpawned) != 1 {
		t.Error("expected one boss-spawned event")
	}
}

func TestBossHealthByVariant(t *testing.T) {
	tests := []struct {
		variant components.BossVariant
		health  int
	}{
		{components.BossVariant1, 500},
		{components.BossVariant2, 1500},
		{components.BossVariant3, 2000},
	}
	for _, tt := range tests {
		sim := newTestSim(t, 1)
		sim.Bosses.Spawn(tt.variant)
		if got := sim.State().Boss.Health; got != tt.health {
			t.Errorf("variant %d health = %d, want %d", tt.variant, got, tt.health)
		}
	}
}

// TestBossHitboxAsymmetry 第2关 Boss 碰撞盒为精灵两倍，第3关就是精灵边界
func TestBossHitboxAsymmetry(t *testing.T) {
	sim := newTestSim(t, 1)
	sim.Bosses.Spawn(components.BossVariant2)
	boss := sim.State().Boss
	hb := sim.Bosses.Behavior().Hitbox(boss)
	if hb.W != boss.Width*2 || hb.H != boss.Height*2 {
		t.Errorf("boss 2 hitbox = %vx%v, want %vx%v", hb.W, hb.H, boss.Width*2, boss.Height*2)
	}
	cx, cy := hb.Center()
	if cx != boss.CenterX() || cy != boss.CenterY() {
		t.Error("boss 2 hitbox should stay centred on the sprite")
	}

	sim = newTestSim(t, 1)
	sim.Bosses.Spawn(components.BossVariant3)
	boss = sim.State().Boss
	if hb := sim.Bosses.Behavior().Hitbox(boss); hb != boss.Rect() {
		t.Errorf("boss 3 hitbox = %+v, want sprite bounds %+v", hb, boss.Rect())
	}
}

func TestBossVolley(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant2)
	boss := gs.Boss

	if n := sim.Bosses.FireVolley(boss, 3); n != 18 {
		t.Fatalf("volley = %d, want 18", n)
	}
	radial, vertical := 0, 0
	for _, b := range gs.EnemyBullets.Items() {
		speed := math.Hypot(b.VX, b.VY)
		if math.Abs(speed-4.5) > 1e-9 {
			t.Errorf("bullet speed = %v, want 4.5 (3 x 1.5)", speed)
		}
		switch b.Tag {
		case components.ProjectileRadial:
			radial++
		case components.ProjectileNormal:
			if b.VX != 0 {
				t.Errorf("vertical bullet has VX %v", b.VX)
			}
			vertical++
		}
	}
	if radial != 16 || vertical != 2 {
		t.Errorf("radial = %d vertical = %d, want 16/2", radial, vertical)
	}
}

func TestBossFiresEveryInterval(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant3)

	for i := 0; i < 29; i++ {
		sim.Bosses.Update()
	}
	if gs.EnemyBullets.Len() != 0 {
		t.Fatalf("boss fired before 30 ticks: %d", gs.EnemyBullets.Len())
	}
	sim.Bosses.Update()
	if gs.EnemyBullets.Len() != 18 {
		t.Errorf("bullets after 30 ticks = %d, want 18", gs.EnemyBullets.Len())
	}
}

func TestBoss3Stationary(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant3)
	x, y := gs.Boss.X, gs.Boss.Y

	for i := 0; i < 1000; i++ {
		gs.NowMs += 17
		sim.Bosses.Update()
	}
	if gs.Boss.X != x || gs.Boss.Y != y {
		t.Errorf("boss 3 moved from (%v,%v) to (%v,%v)", x, y, gs.Boss.X, gs.Boss.Y)
	}
}

func TestBossMovementStaysInUpperHalf(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant1)
	pf := gs.Config.Playfield
	patterns := map[components.MovementPattern]bool{}

	for i := 0; i < 5000; i++ {
		gs.NowMs += 17
		sim.Bosses.Update()
		b := gs.Boss
		patterns[b.Pattern] = true
		if b.X < 0 || b.X+b.Width > pf.Width || b.Y < 0 || b.Y+b.Height > pf.Height/2 {
			t.Fatalf("tick %d: boss outside its area: %+v", i, b.Body)
		}
	}
	if len(patterns) < 2 {
		t.Errorf("movement pattern never re-rolled: %v", patterns)
	}
	if patterns[components.MovementStationary] {
		t.Error("boss 1 should never be stationary")
	}
}

// TestBossDefeatFiresOnce 同一帧多颗子弹命中，击败只触发一次
func TestBossDefeatFiresOnce(t *testing.T) {
	sim := newTestSim(t, 2)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant1)
	boss := gs.Boss
	boss.Health = 2

	for _, ship := range gs.Ships {
		for i := 0; i < 3; i++ {
			ship.Bullets.Add(&components.Projectile{
				Body: components.Body{X: boss.CenterX(), Y: boss.CenterY(), Width: 4, Height: 12},
			})
		}
	}

	res := sim.Bosses.ResolveHits()
	if !res.Defeated || res.Hits != 2 {
		t.Fatalf("result = %+v, want defeated after 2 hits", res)
	}
	if boss.Health != 0 {
		t.Errorf("health = %d, want 0", boss.Health)
	}
	remaining := gs.Ships[0].Bullets.Len() + gs.Ships[1].Bullets.Len()
	if remaining != 4 {
		t.Errorf("bullets left = %d, want 4 unconsumed", remaining)
	}
	if countPending(gs, game.EventBossDefeated) != 1 {
		t.Error("expected exactly one boss-defeated event")
	}

	if again := sim.Bosses.ResolveHits(); again.Defeated || again.Hits != 0 {
		t.Errorf("second resolve = %+v, want nothing", again)
	}
	if gs.Kills != 5 {
		t.Errorf("Kills = %d, want bonus 5", gs.Kills)
	}
	if gs.StageKills[game.Stage1] != 0 {
		t.Error("boss bonus must not count toward the stage gate")
	}
}

func TestBossHitFlash(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	sim.Bosses.Spawn(components.BossVariant1)
	boss := gs.Boss
	gs.Ships[0].Bullets.Add(&components.Projectile{
		Body: components.Body{X: boss.CenterX(), Y: boss.CenterY(), Width: 4, Height: 12},
	})

	sim.Bosses.ResolveHits()
	if !boss.HitFlash || boss.Health != 499 {
		t.Fatalf("flash = %v health = %d", boss.HitFlash, boss.Health)
	}
	sim.Effects.Update(100)
	if boss.HitFlash {
		t.Error("hit flash should clear after 100ms")
	}
}
