package systems

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

const (
	// radialVolleyShots Boss 环形弹幕方向数（22.5° 间隔）
	radialVolleyShots = 16
	// orbitRadius 圆周和8字形移动的半径
	orbitRadius = 80
	// orbitStep 每帧相位增量（乘以 Boss 速度）
	orbitStep = 0.01
	// zigzagRowDrop 之字形触边时下移的距离
	zigzagRowDrop = 20
	// dashDurationMs 一次冲刺的时长
	dashDurationMs = 800
	// bossTopMargin Boss 出现时距场地顶部的距离
	bossTopMargin = 40
)

// DefeatEffect Boss 被击败时的效果
type DefeatEffect struct {
	Particles int // 爆炸粒子数
	KillBonus int // 奖励击杀数（只计入全局击杀数）
}

// BossBehavior Boss 变体的统一接口
type BossBehavior interface {
	Variant() components.BossVariant
	// Move 推进一帧移动
	Move(b *components.Boss, gs *game.GameState)
	// Hitbox 返回碰撞盒
	Hitbox(b *components.Boss) utils.Rect
	BulletSpeedMultiplier() float64
	DefeatEffect() DefeatEffect
}

// bossBase 三个变体共用的参数和移动模式
type bossBase struct {
	cfg config.BossConfig
}

func (bb bossBase) Variant() components.BossVariant {
	return components.BossVariant(bb.cfg.Variant)
}

func (bb bossBase) BulletSpeedMultiplier() float64 {
	return bb.cfg.BulletSpeedMultiplier
}

func (bb bossBase) DefeatEffect() DefeatEffect {
	return DefeatEffect{Particles: bb.cfg.ExplosionParticles, KillBonus: bb.cfg.KillBonus}
}

func (bb bossBase) Hitbox(b *components.Boss) utils.Rect {
	return b.Rect().Scale(bb.cfg.HitboxScale)
}

// Move 按当前移动模式推进，每 PatternDurationMs 重新随机一次模式
func (bb bossBase) Move(b *components.Boss, gs *game.GameState) {
	now := gs.NowMs
	if now-b.PatternStartMs >= bb.cfg.PatternDurationMs {
		bb.rollPattern(b, gs)
	}

	speed := bb.cfg.Speed
	switch b.Pattern {
	case components.MovementOrbit:
		b.Angle += orbitStep * speed
		b.X = b.AnchorX + orbitRadius*(math.Cos(b.Angle)-1) - b.Width/2
		b.Y = b.AnchorY + orbitRadius*0.5*math.Sin(b.Angle) - b.Height/2

	case components.MovementZigzag:
		b.X += b.ZigDir * speed
		if b.X <= 0 || b.X+b.Width >= gs.Config.Playfield.Width {
			b.ZigDir = -b.ZigDir
			b.Y += zigzagRowDrop
			if b.Y+b.Height > bossMaxY(gs) {
				b.Y = bossTopMargin
			}
		}

	case components.MovementFigureEight:
		b.Angle += orbitStep * speed
		b.X = b.AnchorX + orbitRadius*math.Sin(b.Angle) - b.Width/2
		b.Y = b.AnchorY + orbitRadius*0.5*math.Sin(2*b.Angle) - b.Height/2

	case components.MovementDash:
		t := (now - b.DashStartMs) / dashDurationMs
		if t >= 1 {
			bb.startDash(b, gs)
			t = 0
		}
		eased := utils.EaseInOutSine(t)
		b.X = utils.Lerp(b.DashFromX, b.DashToX, eased)
		b.Y = utils.Lerp(b.DashFromY, b.DashToY, eased)
	}

	clampBoss(b, gs)
}

// rollPattern 从四种移动模式中随机选一种，以当前位置为锚点避免跳变
func (bb bossBase) rollPattern(b *components.Boss, gs *game.GameState) {
	b.Pattern = components.MovementPattern(gs.Rand.Intn(int(components.MovementDash) + 1))
	b.PatternStartMs = gs.NowMs
	b.AnchorX, b.AnchorY = b.CenterX(), b.CenterY()
	b.Angle = 0
	if b.ZigDir == 0 {
		b.ZigDir = 1
	}
	if b.Pattern == components.MovementDash {
		bb.startDash(b, gs)
	}
}

func (bb bossBase) startDash(b *components.Boss, gs *game.GameState) {
	pf := gs.Config.Playfield
	b.DashFromX, b.DashFromY = b.X, b.Y
	b.DashToX = gs.Rand.Float64() * (pf.Width - b.Width)
	b.DashToY = bossTopMargin + gs.Rand.Float64()*math.Max(bossMaxY(gs)-b.Height-bossTopMargin, 0)
	b.DashStartMs = gs.NowMs
}

// bossMaxY Boss 活动区域的下边界（场地上半部分）
func bossMaxY(gs *game.GameState) float64 {
	return gs.Config.Playfield.Height / 2
}

func clampBoss(b *components.Boss, gs *game.GameState) {
	b.X = utils.Clamp(b.X, 0, gs.Config.Playfield.Width-b.Width)
	b.Y = utils.Clamp(b.Y, 0, math.Max(bossMaxY(gs)-b.Height, 0))
}

// boss1 第1关 Boss：精灵尺寸碰撞盒
type boss1 struct{ bossBase }

// boss2 第2关 Boss：碰撞盒是精灵的两倍，弹速 1.5 倍
type boss2 struct{ bossBase }

// boss3 第3关 Boss：固定不动，碰撞盒就是精灵边界
type boss3 struct{ bossBase }

func (boss3) Move(b *components.Boss, gs *game.GameState) {}

func (boss3) Hitbox(b *components.Boss) utils.Rect {
	return b.Rect()
}

// newBossBehavior 根据变体创建行为
func newBossBehavior(cfg config.BossConfig) BossBehavior {
	switch components.BossVariant(cfg.Variant) {
	case components.BossVariant2:
		return boss2{bossBase{cfg}}
	case components.BossVariant3:
		return boss3{bossBase{cfg}}
	default:
		return boss1{bossBase{cfg}}
	}
}

// BossHitResult 一帧内 Boss 受击的结果
type BossHitResult struct {
	Hits     int
	Defeated bool
	Variant  components.BossVariant
}

// BossSystem Boss 生成、移动、开火和受击
type BossSystem struct {
	gs        *game.GameState
	effects   *EffectSystem
	particles *ParticleSystem
	behavior  BossBehavior
	log       zerolog.Logger
}

// NewBossSystem 创建 Boss 系统
func NewBossSystem(gs *game.GameState, effects *EffectSystem, particles *ParticleSystem) *BossSystem {
	return &BossSystem{
		gs:        gs,
		effects:   effects,
		particles: particles,
		log:       gs.Log.With().Str("system", "Boss").Logger(),
	}
}

// Reset 移除当前 Boss
func (bs *BossSystem) Reset() {
	bs.gs.Boss = nil
	bs.behavior = nil
}

// Behavior 返回当前 Boss 的行为，没有 Boss 时为 nil
func (bs *BossSystem) Behavior() BossBehavior {
	return bs.behavior
}

// Spawn 生成指定变体的 Boss
//
// 返回:
//   - bool: 已有 Boss 在场或变体未配置时返回 false
func (bs *BossSystem) Spawn(variant components.BossVariant) bool {
	if bs.gs.BossActive() {
		return false
	}
	cfg, ok := bs.gs.Config.Boss(int(variant))
	if !ok {
		bs.log.Warn().Int("variant", int(variant)).Msg("boss variant not configured")
		return false
	}

	pf := bs.gs.Config.Playfield
	boss := &components.Boss{
		Body: components.Body{
			X:      (pf.Width - cfg.Width) / 2,
			Y:      bossTopMargin,
			Width:  cfg.Width,
			Height: cfg.Height,
		},
		Variant:        variant,
		Health:         cfg.Health,
		MaxHealth:      cfg.Health,
		PatternStartMs: bs.gs.NowMs,
		ZigDir:         1,
	}
	boss.ID = bs.gs.Entities.NewID()
	boss.AnchorX, boss.AnchorY = boss.CenterX(), boss.CenterY()
	if cfg.Stationary {
		boss.Pattern = components.MovementStationary
	} else {
		boss.Pattern = components.MovementPattern(bs.gs.Rand.Intn(int(components.MovementDash) + 1))
		if boss.Pattern == components.MovementDash {
			bossBase{cfg}.startDash(boss, bs.gs)
		}
	}

	bs.gs.Boss = boss
	bs.behavior = newBossBehavior(cfg)
	bs.gs.Emit(game.EventBossSpawned, -1, int(variant), boss.CenterX(), boss.CenterY())
	bs.log.Info().
		Int("variant", int(variant)).
		Int("health", boss.Health).
		Stringer("pattern", boss.Pattern).
		Msg("boss spawned")
	return true
}

// Update 移动 Boss 并按固定间隔开火
func (bs *BossSystem) Update() {
	boss := bs.gs.Boss
	if boss == nil || !boss.IsActive() || bs.behavior == nil {
		return
	}
	ok := guardEntity(bs.log, boss.ID, func() {
		bs.behavior.Move(boss, bs.gs)
		if boss.Pattern == components.MovementDash {
			bs.particles.SpawnTrail(boss.CenterX(), boss.Y)
		}

		boss.ShootTicks++
		cfg, _ := bs.gs.Config.Boss(int(boss.Variant))
		if boss.ShootTicks >= cfg.ShootIntervalTicks {
			boss.ShootTicks = 0
			bs.FireVolley(boss, cfg.BulletSpeed)
		}
	})
	if !ok {
		// Boss 被丢弃后生成恢复，下一个击杀阈值会重新触发
		bs.effects.CancelAll(boss.ID)
		bs.Reset()
	}
}

// FireVolley 发射 16 方向环形弹幕加上下两颗直线子弹
//
// 返回生成的子弹数
func (bs *BossSystem) FireVolley(boss *components.Boss, baseSpeed float64) int {
	speed := baseSpeed * bs.behavior.BulletSpeedMultiplier() * bs.gs.Difficulty.EnemyBulletSpeed
	fc := bs.gs.Config.EnemyFire
	cx, cy := boss.CenterX(), boss.CenterY()

	add := func(vx, vy float64, tag components.ProjectileTag) {
		bs.gs.EnemyBullets.Add(&components.Projectile{
			Body: components.Body{
				X:      cx - fc.BulletWidth/2,
				Y:      cy - fc.BulletHeight/2,
				Width:  fc.BulletWidth,
				Height: fc.BulletHeight,
				VX:     vx,
				VY:     vy,
			},
			Tag:   tag,
			Owner: components.NoOwner,
		})
	}

	for i := 0; i < radialVolleyShots; i++ {
		rad := float64(i) * 2 * math.Pi / radialVolleyShots
		add(math.Cos(rad)*speed, math.Sin(rad)*speed, components.ProjectileRadial)
	}
	add(0, -speed, components.ProjectileNormal)
	add(0, speed, components.ProjectileNormal)
	return radialVolleyShots + 2
}

// ResolveHits 处理玩家子弹与 Boss 的碰撞
//
// 每颗命中的子弹被消耗并造成 1 点伤害（与子弹类型无关）。
// 血量归零后本帧剩余子弹不再结算，击败效果只触发一次。
func (bs *BossSystem) ResolveHits() BossHitResult {
	boss := bs.gs.Boss
	if boss == nil || !boss.IsActive() || bs.behavior == nil {
		return BossHitResult{}
	}

	result := BossHitResult{Variant: boss.Variant}
	hitbox := bs.behavior.Hitbox(boss)

	for _, ship := range bs.gs.Ships {
		if boss.Health <= 0 {
			break
		}
		ship.Bullets.ReverseEach(func(i int, b *components.Projectile) bool {
			if !utils.Intersects(b.Rect(), hitbox) {
				return true
			}
			ship.Bullets.RemoveAt(i)
			boss.Health--
			result.Hits++
			return boss.Health > 0
		})
	}

	if result.Hits > 0 {
		bs.effects.FlashBoss(boss, bs.gs.Config.Effects.BossHitFlashMs)
		bs.gs.Emit(game.EventBossHit, -1, boss.Health, boss.CenterX(), boss.CenterY())
	}
	if boss.Health <= 0 && !boss.Defeated {
		bs.defeat(boss)
		result.Defeated = true
	}
	return result
}

// defeat Boss 击败效果：爆炸、奖励击杀，然后移出场地
func (bs *BossSystem) defeat(boss *components.Boss) {
	boss.Defeated = true
	boss.Health = 0
	boss.HitFlash = false
	bs.effects.CancelAll(boss.ID)

	effect := bs.behavior.DefeatEffect()
	bs.particles.SpawnExplosion(boss.CenterX(), boss.CenterY(), effect.Particles)

	bs.gs.Kills += effect.KillBonus
	if bs.gs.Metrics != nil {
		bs.gs.Metrics.KillsAdded(effect.KillBonus)
		bs.gs.Metrics.BossDefeated(int(boss.Variant))
	}

	bs.gs.Emit(game.EventBossDefeated, -1, int(boss.Variant), boss.CenterX(), boss.CenterY())
	bs.log.Info().
		Int("variant", int(boss.Variant)).
		Int("bonus", effect.KillBonus).
		Int("kills", bs.gs.Kills).
		Msg("boss defeated")

	bs.gs.Boss = nil
	bs.behavior = nil
}
