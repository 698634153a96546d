package systems

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// ShipIntent 输入协作方每帧为每艘飞船给出的抽象意图
type ShipIntent struct {
	DX, DY float64 // 移动方向，各分量限制在 -1..1，乘以飞船速度
	Fire   bool
}

// PlayerSystem 飞船移动、开火和火力等级
type PlayerSystem struct {
	gs      *game.GameState
	effects *EffectSystem
	log     zerolog.Logger
}

// NewPlayerSystem 创建飞船系统
func NewPlayerSystem(gs *game.GameState, effects *EffectSystem) *PlayerSystem {
	return &PlayerSystem{
		gs:      gs,
		effects: effects,
		log:     gs.Log.With().Str("system", "Player").Logger(),
	}
}

// FireOffsets 根据火力等级返回子弹相对飞船中心的水平偏移
func FireOffsets(powerLevel int) []float64 {
	switch {
	case powerLevel <= 0:
		return []float64{0}
	case powerLevel == 1:
		return []float64{-10, 10}
	case powerLevel == 2:
		return []float64{-15, 0, 15}
	default:
		return []float64{-16, -8, 0, 8, 16}
	}
}

// Update 应用输入意图并推进所有玩家子弹
//
// 参数:
//   - intents: 按飞船编号排列的意图，缺失的视为无输入
func (ps *PlayerSystem) Update(intents []ShipIntent) {
	for _, ship := range ps.gs.Ships {
		if ship.Active {
			var intent ShipIntent
			if ship.Index < len(intents) {
				intent = intents[ship.Index]
			}
			ok := guardEntity(ps.log, ship.ID, func() {
				ps.applyIntent(ship, intent)
			})
			if !ok {
				ps.gs.Log.Warn().Int("ship", ship.Index).Msg("ship deactivated after update failure")
				ship.Active = false
			}
		}
		ps.updateBullets(ship)
	}
}

func (ps *PlayerSystem) applyIntent(ship *components.Ship, intent ShipIntent) {
	// 眩晕中的飞船不响应移动和开火
	if !ship.CanAct() {
		return
	}

	pf := ps.gs.Config.Playfield
	ship.X += utils.Clamp(intent.DX, -1, 1) * ship.Speed
	ship.Y += utils.Clamp(intent.DY, -1, 1) * ship.Speed
	ship.X = utils.Clamp(ship.X, 0, pf.Width-ship.Width)
	ship.Y = utils.Clamp(ship.Y, 0, pf.Height-ship.Height)

	if intent.Fire {
		ps.TryFire(ship)
	}
}

// TryFire 尝试开火
//
// 返回:
//   - bool: 冷却未结束、飞船眩晕或不在场时返回 false
func (ps *PlayerSystem) TryFire(ship *components.Ship) bool {
	if !ship.CanAct() {
		return false
	}
	now := ps.gs.NowMs
	sc := ps.gs.Config.Ship
	if ship.LastShotMs >= 0 && now-ship.LastShotMs < sc.FireCooldownMs {
		return false
	}

	y := ship.Y - sc.BulletHeight
	for _, offset := range FireOffsets(ship.PowerLevel) {
		ship.Bullets.Add(&components.Projectile{
			Body: components.Body{
				X:      ship.CenterX() + offset - sc.BulletWidth/2,
				Y:      y,
				Width:  sc.BulletWidth,
				Height: sc.BulletHeight,
				VY:     -sc.BulletSpeed,
			},
			Tag:   components.ProjectileNormal,
			Owner: ship.Index,
		})
	}
	ship.LastShotMs = now
	return true
}

// FireSpecialBurst 从飞船中心发出环形特殊弹幕
func (ps *PlayerSystem) FireSpecialBurst(ship *components.Ship) int {
	pc := ps.gs.Config.PowerUps
	n := pc.SpecialBurst
	if n <= 0 {
		return 0
	}
	size := ps.gs.Config.Ship.BulletWidth * 2
	cx, cy := ship.CenterX(), ship.CenterY()
	for i := 0; i < n; i++ {
		rad := 2 * math.Pi * float64(i) / float64(n)
		ship.Bullets.Add(&components.Projectile{
			Body: components.Body{
				X:      cx - size/2,
				Y:      cy - size/2,
				Width:  size,
				Height: size,
				VX:     math.Cos(rad) * pc.SpecialBulletSpeed,
				VY:     math.Sin(rad) * pc.SpecialBulletSpeed,
			},
			Tag:   components.ProjectileSpecial,
			Owner: ship.Index,
		})
	}
	return n
}

// CollectPowerLevel 拾取火力道具：等级 +1（上限 9）并重新开始衰减计时
func (ps *PlayerSystem) CollectPowerLevel(ship *components.Ship) {
	if ship.PowerLevel < components.MaxPowerLevel {
		ship.PowerLevel++
	}
	ps.effects.ArmPowerDecay(ship, ps.gs.Config.Effects.PowerDecayMs)
	ps.log.Debug().Int("ship", ship.Index).Int("level", ship.PowerLevel).Msg("power level up")
}

// updateBullets 推进子弹，离开场地的删除
// 普通子弹只检查上边界，特殊弹检查全部边界
func (ps *PlayerSystem) updateBullets(ship *components.Ship) {
	pf := ps.gs.Playfield()
	ship.Bullets.ReverseEach(func(i int, b *components.Projectile) bool {
		b.Advance()
		if b.Y+b.Height < 0 {
			ship.Bullets.RemoveAt(i)
			return true
		}
		if b.Tag == components.ProjectileSpecial && !utils.Intersects(b.Rect(), pf) {
			ship.Bullets.RemoveAt(i)
		}
		return true
	})
}
