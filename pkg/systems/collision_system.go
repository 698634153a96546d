package systems

import (
	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// CollisionResult 一帧碰撞结算的结果
type CollisionResult struct {
	GameOver bool
}

// CollisionSystem 每帧按固定顺序执行五轮碰撞检测
//
//  1. 飞船 - 敌机
//  2. 玩家子弹 - 敌机
//  3. 飞船 - 敌方子弹
//  4. 飞船 - 红点
//  5. 飞船 - 飞船、飞船子弹 - 其他飞船（至少两艘飞船在场时）
//
// 删除都在逆序遍历中进行。第1、3轮中所有飞船被击毁时立即返回，跳过后续各轮。
// 道具和 Boss 的碰撞由各自的系统处理。
type CollisionSystem struct {
	gs        *game.GameState
	effects   *EffectSystem
	particles *ParticleSystem
	log       zerolog.Logger
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(gs *game.GameState, effects *EffectSystem, particles *ParticleSystem) *CollisionSystem {
	return &CollisionSystem{
		gs:        gs,
		effects:   effects,
		particles: particles,
		log:       gs.Log.With().Str("system", "Collision").Logger(),
	}
}

// ResolveFrame 执行本帧全部碰撞
func (cs *CollisionSystem) ResolveFrame() CollisionResult {
	if cs.resolveShipEnemy() {
		return cs.gameOver()
	}
	cs.resolveBulletEnemy()
	if cs.resolveShipEnemyBullet() {
		return cs.gameOver()
	}
	cs.resolveCollectibles()
	cs.resolveShipShip()
	return CollisionResult{}
}

func (cs *CollisionSystem) gameOver() CollisionResult {
	if !cs.gs.GameOver {
		cs.gs.GameOver = true
		cs.gs.Emit(game.EventGameOver, -1, cs.gs.Kills, 0, 0)
		if cs.gs.Metrics != nil {
			cs.gs.Metrics.GameOver()
		}
		cs.log.Info().Int("kills", cs.gs.Kills).Int("stage", cs.gs.CurrentStage()).Msg("game over")
	}
	return CollisionResult{GameOver: true}
}

// resolveShipEnemy 第1轮：护盾撞毁敌机不受损；否则敌机被撞毁，飞船失去一条命并眩晕
//
// 返回所有飞船是否都已被击毁
func (cs *CollisionSystem) resolveShipEnemy() bool {
	for _, ship := range cs.gs.Ships {
		if !ship.Active {
			continue
		}
		cs.gs.Enemies.ReverseEach(func(i int, e *components.Enemy) bool {
			if !utils.Intersects(ship.Rect(), e.Rect()) {
				return true
			}
			cs.gs.Enemies.RemoveAt(i)
			cs.particles.SpawnExplosion(e.CenterX(), e.CenterY(), cs.gs.Config.Particles.ExplosionCount)
			if ship.Shielded {
				cs.gs.Emit(game.EventEnemyHit, ship.Index, e.Type, e.CenterX(), e.CenterY())
				return true
			}
			cs.damageShip(ship, cs.gs.Config.Effects.StunContactMs)
			// 每艘飞船每帧最多受一次撞击伤害
			return false
		})
		if cs.gs.AllShipsDown() {
			return true
		}
	}
	return false
}

// resolveBulletEnemy 第2轮：每颗子弹最多击毁一架敌机
// 敌机逆序遍历，重叠时最新生成的先被击中
func (cs *CollisionSystem) resolveBulletEnemy() {
	pc := cs.gs.Config.Particles
	for _, ship := range cs.gs.Ships {
		ship.Bullets.ReverseEach(func(bi int, b *components.Projectile) bool {
			var killed *components.Enemy
			cs.gs.Enemies.ReverseEach(func(ei int, e *components.Enemy) bool {
				if !utils.Intersects(b.Rect(), e.Rect()) {
					return true
				}
				killed = cs.gs.Enemies.RemoveAt(ei)
				return false
			})
			if killed == nil {
				return true
			}

			ship.Bullets.RemoveAt(bi)
			cs.particles.SpawnRedPoints(killed.Rect(), pc.RedPointsPerKill)
			cs.particles.SpawnExplosion(killed.CenterX(), killed.CenterY(), pc.ExplosionCount)
			cs.gs.AddKill()
			cs.gs.Emit(game.EventEnemyHit, ship.Index, killed.Type, killed.CenterX(), killed.CenterY())
			return true
		})
	}
}

// resolveShipEnemyBullet 第3轮：护盾静默吸收子弹；否则失去一条命并眩晕（更长）
//
// 返回所有飞船是否都已被击毁
func (cs *CollisionSystem) resolveShipEnemyBullet() bool {
	for _, ship := range cs.gs.Ships {
		if !ship.Active {
			continue
		}
		cs.gs.EnemyBullets.ReverseEach(func(i int, b *components.Projectile) bool {
			if !utils.Intersects(ship.Rect(), b.Rect()) {
				return true
			}
			cs.gs.EnemyBullets.RemoveAt(i)
			if ship.Shielded {
				return true
			}
			cs.damageShip(ship, cs.gs.Config.Effects.StunBulletMs)
			return false
		})
		if cs.gs.AllShipsDown() {
			return true
		}
	}
	return false
}

// resolveCollectibles 第4轮：收集红点，每艘飞船累计到阈值时归零并开启护盾
func (cs *CollisionSystem) resolveCollectibles() {
	threshold := cs.gs.Config.Ship.RedPointThreshold
	for _, ship := range cs.gs.Ships {
		if !ship.Active {
			continue
		}
		cs.gs.Particles.ReverseEach(func(i int, p *components.Particle) bool {
			if !p.Collectible() || !utils.Intersects(ship.Rect(), p.Rect()) {
				return true
			}
			cs.gs.Particles.RemoveAt(i)
			cs.CollectRedPoint(ship, threshold)
			return true
		})
	}
}

// CollectRedPoint 记一个红点；达到阈值时计数归零并开启护盾
//
// 返回:
//   - bool: 是否开启了护盾
func (cs *CollisionSystem) CollectRedPoint(ship *components.Ship, threshold int) bool {
	ship.RedPoints++
	cs.gs.RedPointTotal++
	cs.gs.Emit(game.EventPickupCollected, ship.Index, ship.RedPoints, ship.CenterX(), ship.CenterY())
	if ship.RedPoints < threshold {
		return false
	}
	ship.RedPoints = 0
	cs.effects.Shield(ship, cs.gs.Config.Effects.ShieldMs)
	cs.gs.Emit(game.EventShieldActivated, ship.Index, 0, ship.CenterX(), ship.CenterY())
	cs.log.Debug().Int("ship", ship.Index).Msg("shield activated")
	return true
}

// resolveShipShip 第5轮：两艘飞船相撞时都眩晕；被其他飞船的子弹击中（无护盾）时眩晕
func (cs *CollisionSystem) resolveShipShip() {
	active := cs.gs.ActiveShips()
	if len(active) < 2 {
		return
	}
	fx := cs.gs.Config.Effects

	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			// 已眩晕的飞船无法移开，重叠期间不再刷新眩晕
			if a.Stunned || b.Stunned || !utils.Intersects(a.Rect(), b.Rect()) {
				continue
			}
			cs.effects.Stun(a, fx.StunContactMs)
			cs.effects.Stun(b, fx.StunContactMs)
			cs.log.Debug().Int("a", a.Index).Int("b", b.Index).Msg("ships collided")
		}
	}

	for _, target := range active {
		for _, shooter := range cs.gs.Ships {
			if shooter == target {
				continue
			}
			shooter.Bullets.ReverseEach(func(i int, b *components.Projectile) bool {
				if !utils.Intersects(target.Rect(), b.Rect()) {
					return true
				}
				shooter.Bullets.RemoveAt(i)
				if !target.Shielded {
					cs.effects.Stun(target, fx.StunDefaultMs)
				}
				return true
			})
		}
	}
}

// damageShip 飞船失去一条命并眩晕，生命归零时停用
func (cs *CollisionSystem) damageShip(ship *components.Ship, stunMs float64) {
	ship.Lives--
	cs.gs.Emit(game.EventShipHit, ship.Index, ship.Lives, ship.CenterX(), ship.CenterY())
	if ship.Lives > 0 {
		cs.effects.Stun(ship, stunMs)
		return
	}

	ship.Lives = 0
	ship.Active = false
	ship.Stunned = false
	ship.Shielded = false
	cs.effects.CancelAll(ship.ID)
	cs.gs.Emit(game.EventShipDestroyed, ship.Index, 0, ship.CenterX(), ship.CenterY())
	cs.log.Info().Int("ship", ship.Index).Msg("ship destroyed")
}
