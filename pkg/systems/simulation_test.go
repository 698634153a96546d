package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
)

// newTestSim 创建使用固定随机种子的模拟
func newTestSim(t *testing.T, ships int, mutate ...func(*config.GameConfig)) *Simulation {
	t.Helper()
	cfg := config.DefaultGameConfig()
	for _, m := range mutate {
		m(cfg)
	}
	gs := game.NewGameState(cfg, ships, game.WithRand(rand.New(rand.NewSource(42))))
	return NewSimulation(gs)
}

func TestStepFramePacing(t *testing.T) {
	sim := newTestSim(t, 1)

	if r := sim.Step(0, nil); r.Skipped {
		t.Fatal("First step should run")
	}
	if r := sim.Step(10, nil); !r.Skipped {
		t.Error("Step 10ms after the last frame should be skipped")
	}
	if r := sim.Step(17, nil); r.Skipped {
		t.Error("Step after a full frame interval should run")
	}
	if sim.State().Frame != 2 {
		t.Errorf("Frame = %d, want 2", sim.State().Frame)
	}
}

// TestStepPacingAtDoubleRate 以两倍帧率调用 Step，一秒内应处理约 60 帧
func TestStepPacingAtDoubleRate(t *testing.T) {
	tests := []struct {
		name   string
		jitter float64
	}{
		{"steady", 0},
		{"jittered", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSim(t, 1)
			processed := 0
			for i := 0; i < 120; i++ {
				now := float64(i) * 1000 / 120
				if i > 0 && i%2 == 0 {
					now -= tt.jitter
				} else if i%2 == 1 {
					now += tt.jitter
				}
				if r := sim.Step(now, nil); !r.Skipped {
					processed++
				}
			}
			if sim.State().GameOver {
				t.Fatal("session should not end within one second")
			}
			if processed < 59 || processed > 61 {
				t.Errorf("processed %d frames in one second, want about 60", processed)
			}
		})
	}
}

// TestStepPacingSnapsAfterStall 落后多个帧间隔后只处理一帧并重新对齐
func TestStepPacingSnapsAfterStall(t *testing.T) {
	sim := newTestSim(t, 1)
	sim.Step(0, nil)
	if r := sim.Step(500, nil); r.Skipped {
		t.Fatal("Step after a stall should run")
	}
	if r := sim.Step(505, nil); !r.Skipped {
		t.Error("Stall should not be replayed as a burst of frames")
	}
	if r := sim.Step(517, nil); r.Skipped {
		t.Error("Step one interval after the stall should run")
	}
	if sim.State().Frame != 3 {
		t.Errorf("Frame = %d, want 3", sim.State().Frame)
	}
}

func TestStepStopsAfterGameOver(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	ship := gs.Ships[0]
	ship.Lives = 1
	gs.Enemies.Add(&components.Enemy{Body: ship.Body})

	r := sim.Step(0, nil)
	if !r.GameOver {
		t.Fatal("Expected game over")
	}
	found := false
	for _, e := range r.Events {
		if e.Type == game.EventGameOver {
			found = true
		}
	}
	if !found {
		t.Error("Game over event should be dispatched with the frame")
	}

	frame := gs.Frame
	r = sim.Step(1000, nil)
	if !r.Skipped || !r.GameOver || gs.Frame != frame {
		t.Errorf("Simulation should not advance after game over: %+v", r)
	}
}

func TestResetClearsEffects(t *testing.T) {
	sim := newTestSim(t, 2)
	gs := sim.State()
	sim.Effects.Stun(gs.Ships[0], 1000)
	sim.Effects.Shield(gs.Ships[1], 10000)
	gs.GameOver = true

	sim.Reset()

	if sim.Effects.Len() != 0 {
		t.Errorf("Effects pending after reset: %d", sim.Effects.Len())
	}
	if gs.GameOver || gs.Ships[0].Stunned || gs.Ships[1].Shielded {
		t.Error("Reset should start a clean session")
	}
	if r := sim.Step(0, nil); r.Skipped {
		t.Error("First step after reset should run")
	}
}

// TestBoss2DefeatScenario 血量为1的第2关 Boss 被一颗子弹击中
func TestBoss2DefeatScenario(t *testing.T) {
	sim := newTestSim(t, 1)
	gs := sim.State()
	gs.StageFlags[game.Stage1] = false
	gs.StageFlags[game.Stage2] = true

	if !sim.Bosses.Spawn(components.BossVariant2) {
		t.Fatal("Spawn failed")
	}
	boss := gs.Boss
	boss.Health = 1
	gs.Ships[0].Bullets.Add(&components.Projectile{
		Body: components.Body{X: boss.CenterX() - 2, Y: boss.CenterY(), Width: 4, Height: 12, VY: -10},
	})

	r := sim.Step(0, nil)

	if !boss.Defeated {
		t.Fatal("Boss should be defeated")
	}
	if gs.Boss != nil {
		t.Error("Defeated boss should leave the playfield")
	}
	explosions := 0
	for _, p := range gs.Particles.Items() {
		if p.Tag == components.ParticleExplosion {
			explosions++
		}
	}
	if explosions != 150 {
		t.Errorf("explosion particles = %d, want 150", explosions)
	}
	if !gs.StageFlags[game.Stage3] || gs.StageFlags[game.Stage2] {
		t.Errorf("stage flags = %v, want stage3 set and stage2 cleared", gs.StageFlags)
	}
	if !r.StageAdvanced {
		t.Error("FrameResult should report the stage advance")
	}
	if gs.Kills != 10 {
		t.Errorf("Kills = %d, want kill bonus 10", gs.Kills)
	}
}

// TestSimulationLongRun 长时间运行并检查各项不变量
func TestSimulationLongRun(t *testing.T) {
	sim := newTestSim(t, 3)
	gs := sim.State()
	r := rand.New(rand.NewSource(7))
	cfg := gs.Config

	intents := make([]ShipIntent, 3)
	now := 0.0
	for frame := 0; frame < 20000; frame++ {
		for i := range intents {
			intents[i] = ShipIntent{DX: r.Float64()*2 - 1, DY: r.Float64()*2 - 1, Fire: true}
		}
		res := sim.Step(now, intents)
		now += 17

		if gs.Enemies.Len() > cfg.Stage3.PopulationCap {
			t.Fatalf("frame %d: %d enemies exceed cap", frame, gs.Enemies.Len())
		}
		if gs.CurrentStage() != game.Stage3 && gs.Enemies.Len() > cfg.Wave.PopulationCap {
			t.Fatalf("frame %d: %d enemies in stage %d", frame, gs.Enemies.Len(), gs.CurrentStage())
		}
		if gs.Particles.Len() > cfg.Particles.Cap {
			t.Fatalf("frame %d: %d particles exceed cap", frame, gs.Particles.Len())
		}
		for _, s := range gs.Ships {
			if s.PowerLevel < 0 || s.PowerLevel > components.MaxPowerLevel {
				t.Fatalf("frame %d: ship %d power level %d", frame, s.Index, s.PowerLevel)
			}
			if s.RedPoints >= cfg.Ship.RedPointThreshold {
				t.Fatalf("frame %d: ship %d red points %d not reset", frame, s.Index, s.RedPoints)
			}
			if s.Lives < 0 {
				t.Fatalf("frame %d: ship %d negative lives", frame, s.Index)
			}
		}
		if gs.Boss != nil && gs.Boss.Health < 0 {
			t.Fatalf("frame %d: boss health %d", frame, gs.Boss.Health)
		}
		if res.GameOver || res.Victory {
			break
		}
	}
	if gs.Frame == 0 {
		t.Error("No frames processed")
	}
}

func TestGuardEntityRecovers(t *testing.T) {
	sim := newTestSim(t, 1)
	if guardEntity(sim.log, 1, func() { panic("bad entity") }) {
		t.Error("guardEntity should report failure")
	}
	if !guardEntity(sim.log, 1, func() {}) {
		t.Error("guardEntity should report success")
	}
}
