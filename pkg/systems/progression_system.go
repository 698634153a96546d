package systems

import (
	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
)

// BossSpawner 由进度状态机调用的 Boss 生成接口
type BossSpawner interface {
	Spawn(variant components.BossVariant) bool
}

// ProgressionSystem 关卡进度状态机：stage1 → stage2 → stage3 → victory
//
// 当前关卡的击杀数是阈值的整数倍且没有 Boss 在场时生成该关的 Boss；
// 同一个击杀数不会触发两次。击败第 N 关 Boss 进入第 N+1 关，击败最后一关 Boss 即胜利。
type ProgressionSystem struct {
	gs      *game.GameState
	spawner BossSpawner
	log     zerolog.Logger

	triggeredAt [game.FinalStage + 1]int // 每关上次触发 Boss 时的击杀数
}

// NewProgressionSystem 创建进度状态机
func NewProgressionSystem(gs *game.GameState, spawner BossSpawner) *ProgressionSystem {
	return &ProgressionSystem{
		gs:      gs,
		spawner: spawner,
		log:     gs.Log.With().Str("system", "Progression").Logger(),
	}
}

// Reset 清除触发记录
func (ps *ProgressionSystem) Reset() {
	ps.triggeredAt = [game.FinalStage + 1]int{}
}

// ShouldSpawnBoss Boss 触发条件
func (ps *ProgressionSystem) ShouldSpawnBoss() bool {
	if ps.gs.BossActive() || ps.gs.GameOver || ps.gs.Victory {
		return false
	}
	stage := ps.gs.CurrentStage()
	threshold := ps.gs.Config.KillThreshold(stage)
	kills := ps.gs.StageKills[stage]
	if threshold <= 0 || kills <= 0 || kills%threshold != 0 {
		return false
	}
	return kills != ps.triggeredAt[stage]
}

// Update 检查击杀数并在满足条件时生成 Boss（下一帧开始战斗）
//
// 返回:
//   - bool: 本帧是否生成了 Boss
func (ps *ProgressionSystem) Update() bool {
	if !ps.ShouldSpawnBoss() {
		return false
	}
	stage := ps.gs.CurrentStage()
	if !ps.spawner.Spawn(components.BossVariant(stage)) {
		return false
	}
	ps.triggeredAt[stage] = ps.gs.StageKills[stage]
	ps.log.Info().
		Int("stage", stage).
		Int("stageKills", ps.gs.StageKills[stage]).
		Msg("boss gate reached")
	return true
}

// OnBossDefeated 第 N 关 Boss 被击败
//
// 返回:
//   - bool: 是否进入了下一关（最后一关返回 false 并设置胜利）
func (ps *ProgressionSystem) OnBossDefeated(variant components.BossVariant) bool {
	stage := int(variant)
	if stage >= game.FinalStage {
		ps.gs.Victory = true
		ps.gs.Emit(game.EventVictory, -1, stage, 0, 0)
		ps.log.Info().Int("kills", ps.gs.Kills).Msg("victory")
		return false
	}

	ps.gs.StageFlags[stage+1] = true
	ps.gs.StageFlags[stage] = false
	ps.gs.Emit(game.EventStageAdvanced, -1, stage+1, 0, 0)
	ps.log.Info().Int("stage", stage+1).Msg("stage advanced")
	return true
}
