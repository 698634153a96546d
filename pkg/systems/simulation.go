package systems

import (
	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/game"
)

// pacingToleranceMs 帧间隔比较的容差，吸收时钟抖动
const pacingToleranceMs = 1.0

// FrameResult 一次 Step 的结果
type FrameResult struct {
	Skipped       bool // 距上一帧不足一个帧间隔，未执行逻辑
	GameOver      bool
	Victory       bool
	StageAdvanced bool
	Events        []game.Event // 本帧分发的事件
}

// Simulation 帧调度器
//
// 每帧顺序：定时效果 → 飞船 → 粒子 → 波次生成与敌机 → Boss → 敌方子弹 → 道具 →
// 碰撞（游戏结束时立即返回）→ 道具拾取 → Boss 受击 → 关卡进度 → 压缩仓库 → 分发事件。
type Simulation struct {
	gs *game.GameState

	Effects     *EffectSystem
	Players     *PlayerSystem
	Particles   *ParticleSystem
	Waves       *WaveSystem
	Bosses      *BossSystem
	Projectiles *ProjectileSystem
	PowerUps    *PowerUpSystem
	Collisions  *CollisionSystem
	Progression *ProgressionSystem

	frameIntervalMs float64
	lastFrameMs     float64
	started         bool
	log             zerolog.Logger
}

// NewSimulation 在模拟上下文上组装所有子系统
func NewSimulation(gs *game.GameState) *Simulation {
	effects := NewEffectSystem(gs.Log)
	particles := NewParticleSystem(gs)
	players := NewPlayerSystem(gs, effects)
	bosses := NewBossSystem(gs, effects, particles)

	return &Simulation{
		gs:              gs,
		Effects:         effects,
		Players:         players,
		Particles:       particles,
		Waves:           NewWaveSystem(gs),
		Bosses:          bosses,
		Projectiles:     NewProjectileSystem(gs),
		PowerUps:        NewPowerUpSystem(gs, players, particles),
		Collisions:      NewCollisionSystem(gs, effects, particles),
		Progression:     NewProgressionSystem(gs, bosses),
		frameIntervalMs: gs.Config.FrameIntervalMs(),
		log:             gs.Log.With().Str("system", "Simulation").Logger(),
	}
}

// State 返回模拟上下文
func (s *Simulation) State() *game.GameState {
	return s.gs
}

// Step 推进一帧
//
// 参数:
//   - nowMs: 当前时间（毫秒，单调递增）
//   - intents: 各飞船的输入意图
//
// 距上一次处理的帧不足一个帧间隔时直接返回 Skipped。
// 游戏结束或胜利后不再推进。
func (s *Simulation) Step(nowMs float64, intents []ShipIntent) FrameResult {
	gs := s.gs
	if gs.GameOver || gs.Victory {
		return FrameResult{Skipped: true, GameOver: gs.GameOver, Victory: gs.Victory}
	}
	if !s.advancePacing(nowMs) {
		return FrameResult{Skipped: true}
	}

	gs.NowMs = nowMs
	gs.Frame++
	stageBefore := gs.CurrentStage()

	s.Effects.Update(nowMs)
	s.Players.Update(intents)
	s.Particles.Update()
	s.Waves.Update()
	s.Bosses.Update()
	s.Projectiles.Update()
	s.PowerUps.Update()

	if s.Collisions.ResolveFrame().GameOver {
		return s.finish(FrameResult{GameOver: true})
	}

	s.PowerUps.ResolveCollisions()
	if hit := s.Bosses.ResolveHits(); hit.Defeated {
		s.Progression.OnBossDefeated(hit.Variant)
	}
	s.Progression.Update()

	return s.finish(FrameResult{
		Victory:       gs.Victory,
		StageAdvanced: gs.CurrentStage() != stageBefore,
	})
}

// advancePacing 判断本次调用是否处理一帧
// 帧时钟按整数个帧间隔前进，调用频率高于帧率时不会因舍入误差丢帧；
// 落后超过一个间隔（例如窗口被拖动）时直接对齐到 nowMs，不补帧。
func (s *Simulation) advancePacing(nowMs float64) bool {
	if !s.started {
		s.started = true
		s.lastFrameMs = nowMs
		return true
	}
	if nowMs-s.lastFrameMs < s.frameIntervalMs-pacingToleranceMs {
		return false
	}
	s.lastFrameMs += s.frameIntervalMs
	if nowMs-s.lastFrameMs >= s.frameIntervalMs {
		s.lastFrameMs = nowMs
	}
	return true
}

// finish 压缩仓库、记录指标并分发本帧事件
func (s *Simulation) finish(result FrameResult) FrameResult {
	gs := s.gs
	gs.Enemies.RemoveMarked()
	gs.EnemyBullets.RemoveMarked()
	gs.Particles.RemoveMarked()
	gs.PowerUps.RemoveMarked()
	for _, ship := range gs.Ships {
		ship.Bullets.RemoveMarked()
	}

	if gs.Metrics != nil {
		gs.Metrics.FrameProcessed(gs.CurrentStage())
	}
	result.Events = gs.Events.Drain()
	return result
}

// Reset 开始新的一局
func (s *Simulation) Reset() {
	s.gs.Reset()
	s.Effects.Reset()
	s.Waves.Reset()
	s.Bosses.Reset()
	s.PowerUps.Reset()
	s.Progression.Reset()
	s.started = false
	s.lastFrameMs = 0
	s.log.Info().Int("ships", len(s.gs.Ships)).Msg("session reset")
}
