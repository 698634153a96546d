package systems

import (
	"testing"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
)

type fakeSpawner struct {
	gs      *game.GameState
	spawned []components.BossVariant
}

func (f *fakeSpawner) Spawn(variant components.BossVariant) bool {
	f.spawned = append(f.spawned, variant)
	f.gs.Boss = &components.Boss{Variant: variant, Health: 1, MaxHealth: 1}
	return true
}

func newTestProgression(t *testing.T) (*ProgressionSystem, *fakeSpawner, *game.GameState) {
	t.Helper()
	gs := newTestSim(t, 1).State()
	spawner := &fakeSpawner{gs: gs}
	return NewProgressionSystem(gs, spawner), spawner, gs
}

func TestBossGate(t *testing.T) {
	ps, spawner, gs := newTestProgression(t)

	gs.StageKills[game.Stage1] = 24
	if ps.Update() {
		t.Fatal("boss should not spawn at 24 kills")
	}
	gs.StageKills[game.Stage1] = 25
	if !ps.Update() {
		t.Fatal("boss should spawn at 25 kills")
	}
	if len(spawner.spawned) != 1 || spawner.spawned[0] != components.BossVariant1 {
		t.Fatalf("spawned = %v, want [1]", spawner.spawned)
	}

	// Boss 在场时不再触发
	if ps.Update() {
		t.Error("boss must not spawn while another is active")
	}

	// 同一个击杀数不会触发两次
	gs.Boss = nil
	if ps.Update() {
		t.Error("same kill count must not retrigger")
	}

	gs.StageKills[game.Stage1] = 50
	if !ps.Update() {
		t.Error("next multiple should retrigger")
	}
}

func TestBossGateUsesStageThreshold(t *testing.T) {
	ps, spawner, gs := newTestProgression(t)
	gs.StageFlags[game.Stage2] = true
	gs.StageFlags[game.Stage1] = false

	gs.StageKills[game.Stage2] = 25
	if ps.Update() {
		t.Error("stage 2 threshold is 40")
	}
	gs.StageKills[game.Stage2] = 40
	if !ps.Update() || spawner.spawned[0] != components.BossVariant2 {
		t.Error("stage 2 boss should spawn at 40 kills")
	}
}

func TestBossGateStopsAfterGameOver(t *testing.T) {
	ps, _, gs := newTestProgression(t)
	gs.StageKills[game.Stage1] = 25
	gs.GameOver = true
	if ps.ShouldSpawnBoss() {
		t.Error("no boss after game over")
	}
}

func TestOnBossDefeatedAdvances(t *testing.T) {
	ps, _, gs := newTestProgression(t)

	if !ps.OnBossDefeated(components.BossVariant1) {
		t.Fatal("defeating boss 1 should advance")
	}
	if gs.StageFlags[game.Stage1] || !gs.StageFlags[game.Stage2] || gs.CurrentStage() != game.Stage2 {
		t.Errorf("stage flags = %v", gs.StageFlags)
	}
	if countPending(gs, game.EventStageAdvanced) != 1 {
		t.Error("expected stage-advanced event")
	}

	ps.OnBossDefeated(components.BossVariant2)
	if gs.CurrentStage() != game.Stage3 {
		t.Errorf("stage = %d, want 3", gs.CurrentStage())
	}
}

func TestOnFinalBossDefeatedVictory(t *testing.T) {
	ps, _, gs := newTestProgression(t)
	gs.StageFlags[game.Stage3] = true

	if ps.OnBossDefeated(components.BossVariant3) {
		t.Error("final boss does not advance")
	}
	if !gs.Victory {
		t.Error("victory should be set")
	}
	if countPending(gs, game.EventVictory) != 1 {
		t.Error("expected victory event")
	}
}
