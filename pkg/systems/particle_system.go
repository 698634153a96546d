package systems

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// ParticleSystem 爆炸、拖尾和红点粒子
//
// 粒子总数有硬上限，超出时丢弃最旧的粒子。
type ParticleSystem struct {
	gs  *game.GameState
	log zerolog.Logger
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(gs *game.GameState) *ParticleSystem {
	return &ParticleSystem{
		gs:  gs,
		log: gs.Log.With().Str("system", "Particle").Logger(),
	}
}

// Update 推进粒子并删除寿命结束或离开场地的粒子
func (ps *ParticleSystem) Update() {
	pf := ps.gs.Playfield()
	particles := ps.gs.Particles
	particles.ReverseEach(func(i int, p *components.Particle) bool {
		ok := guardEntity(ps.log, p.ID, func() {
			p.Advance()
			p.Life--
		})
		switch {
		case !ok:
			particles.Destroy(p)
		case p.Life <= 0 || !utils.Intersects(p.Rect(), pf):
			particles.RemoveAt(i)
		}
		return true
	})
}

// add 受上限约束地加入粒子
func (ps *ParticleSystem) add(p *components.Particle) {
	if dropped := ps.gs.Particles.AddBounded(p, ps.gs.Config.Particles.Cap); dropped > 0 {
		ps.log.Debug().Int("dropped", dropped).Msg("particle cap reached")
	}
}

// SpawnExplosion 以 (x, y) 为中心生成放射状爆炸碎片
func (ps *ParticleSystem) SpawnExplosion(x, y float64, count int) {
	pc := ps.gs.Config.Particles
	for i := 0; i < count; i++ {
		angle := ps.gs.Rand.Float64() * 2 * math.Pi
		speed := pc.ExplosionSpeed * (0.3 + 0.7*ps.gs.Rand.Float64())
		ps.add(&components.Particle{
			Body: components.Body{
				X:      x - 1.5,
				Y:      y - 1.5,
				Width:  3,
				Height: 3,
				VX:     math.Cos(angle) * speed,
				VY:     math.Sin(angle) * speed,
			},
			Tag:     components.ParticleExplosion,
			Life:    pc.ExplosionLife,
			MaxLife: pc.ExplosionLife,
		})
	}
}

// SpawnRedPoints 在矩形范围内随机生成可收集的红点
func (ps *ParticleSystem) SpawnRedPoints(area utils.Rect, count int) {
	pc := ps.gs.Config.Particles
	pf := ps.gs.Config.Playfield
	for i := 0; i < count; i++ {
		x := area.X + ps.gs.Rand.Float64()*math.Max(area.W-pc.RedPointSize, 0)
		y := area.Y + ps.gs.Rand.Float64()*math.Max(area.H-pc.RedPointSize, 0)
		ps.add(&components.Particle{
			Body: components.Body{
				X:      utils.Clamp(x, 0, pf.Width-pc.RedPointSize),
				Y:      utils.Clamp(y, 0, pf.Height-pc.RedPointSize),
				Width:  pc.RedPointSize,
				Height: pc.RedPointSize,
				VY:     pc.RedPointFall,
			},
			Tag:     components.ParticleRedPoint,
			Life:    pc.RedPointLife,
			MaxLife: pc.RedPointLife,
		})
	}
}

// SpawnTrail 生成一个静止的拖尾粒子
func (ps *ParticleSystem) SpawnTrail(x, y float64) {
	life := ps.gs.Config.Particles.TrailLife
	ps.add(&components.Particle{
		Body:    components.Body{X: x - 1, Y: y, Width: 2, Height: 2},
		Tag:     components.ParticleTrail,
		Life:    life,
		MaxLife: life,
	})
}
