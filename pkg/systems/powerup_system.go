package systems

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// PowerUpSystem 道具生成、下落和拾取
//
// 生成间隔除以难度中的频率倍数。
type PowerUpSystem struct {
	gs        *game.GameState
	players   *PlayerSystem
	particles *ParticleSystem
	log       zerolog.Logger

	lastSpawnMs     float64
	lastLifeSpawnMs float64
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(gs *game.GameState, players *PlayerSystem, particles *ParticleSystem) *PowerUpSystem {
	return &PowerUpSystem{
		gs:        gs,
		players:   players,
		particles: particles,
		log:       gs.Log.With().Str("system", "PowerUp").Logger(),
	}
}

// Reset 重置生成计时
func (ps *PowerUpSystem) Reset() {
	ps.lastSpawnMs = 0
	ps.lastLifeSpawnMs = 0
}

// Update 按间隔生成道具并推进下落
func (ps *PowerUpSystem) Update() {
	pc := ps.gs.Config.PowerUps
	now := ps.gs.NowMs
	pf := ps.gs.Config.Playfield

	if interval := pc.IntervalMs / ps.gs.Difficulty.PowerUpFrequency; now-ps.lastSpawnMs >= interval {
		ps.lastSpawnMs = now
		kind := components.PowerUpKind(ps.gs.Rand.Intn(int(components.PowerUpSpecial) + 1))
		ps.Spawn(kind, ps.randomX(), -pc.Size)
	}
	if interval := pc.LifeIntervalMs / ps.gs.Difficulty.LifeFrequency; now-ps.lastLifeSpawnMs >= interval {
		ps.lastLifeSpawnMs = now
		ps.Spawn(components.PowerUpLife, ps.randomX(), -pc.Size)
	}

	powerUps := ps.gs.PowerUps
	powerUps.ReverseEach(func(i int, p *components.PowerUp) bool {
		p.Phase += pc.DriftFrequency
		p.Y += p.VY
		p.X = utils.Clamp(p.BaseX+math.Sin(p.Phase)*pc.DriftAmplitude, 0, pf.Width-p.Width)
		if p.Y > pf.Height {
			powerUps.RemoveAt(i)
		}
		return true
	})
}

func (ps *PowerUpSystem) randomX() float64 {
	pc := ps.gs.Config.PowerUps
	margin := pc.DriftAmplitude
	span := ps.gs.Config.Playfield.Width - pc.Size - 2*margin
	return margin + ps.gs.Rand.Float64()*math.Max(span, 0)
}

// Spawn 在指定位置生成道具（外部协作方也可调用）
func (ps *PowerUpSystem) Spawn(kind components.PowerUpKind, x, y float64) *components.PowerUp {
	pc := ps.gs.Config.PowerUps
	p := &components.PowerUp{
		Body: components.Body{
			X:      x,
			Y:      y,
			Width:  pc.Size,
			Height: pc.Size,
			VY:     pc.FallSpeed,
		},
		Kind:  kind,
		BaseX: x,
	}
	ps.gs.PowerUps.Add(p)
	ps.log.Debug().Stringer("kind", kind).Msg("power-up spawned")
	return p
}

// ResolveCollisions 飞船拾取道具
//
// 返回拾取的道具数
func (ps *PowerUpSystem) ResolveCollisions() int {
	collected := 0
	for _, ship := range ps.gs.Ships {
		if !ship.Active {
			continue
		}
		ps.gs.PowerUps.ReverseEach(func(i int, p *components.PowerUp) bool {
			if !utils.Intersects(ship.Rect(), p.Rect()) {
				return true
			}
			ps.gs.PowerUps.RemoveAt(i)
			ps.Apply(ship, p.Kind)
			collected++
			return true
		})
	}
	return collected
}

// Apply 对飞船应用道具效果
func (ps *PowerUpSystem) Apply(ship *components.Ship, kind components.PowerUpKind) {
	switch kind {
	case components.PowerUpThunder:
		ps.thunder()
	case components.PowerUpFirePower:
		ps.players.CollectPowerLevel(ship)
	case components.PowerUpSpecial:
		ps.players.FireSpecialBurst(ship)
	case components.PowerUpLife:
		if ship.Lives < ps.gs.Config.Ship.MaxLives {
			ship.Lives++
		}
	}
	ps.gs.Emit(game.EventPowerUpCollected, ship.Index, int(kind), ship.CenterX(), ship.CenterY())
	ps.log.Debug().Int("ship", ship.Index).Stringer("kind", kind).Msg("power-up collected")
}

// thunder 清除场上所有敌机和敌方子弹，不计击杀
func (ps *PowerUpSystem) thunder() {
	count := ps.gs.Config.Particles.ExplosionCount
	for _, e := range ps.gs.Enemies.Items() {
		if e.Removed() {
			continue
		}
		ps.particles.SpawnExplosion(e.CenterX(), e.CenterY(), count)
	}
	cleared := ps.gs.Enemies.Len()
	ps.gs.Enemies.Clear()
	ps.gs.EnemyBullets.Clear()
	ps.log.Debug().Int("enemies", cleared).Msg("thunder cleared playfield")
}
