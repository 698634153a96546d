package components

import "github.com/gonewx/skyraid/pkg/ecs"

// ParticleTag 粒子类型
type ParticleTag int

const (
	// ParticleExplosion 爆炸碎片（纯装饰）
	ParticleExplosion ParticleTag = iota
	// ParticleTrail 拖尾（纯装饰）
	ParticleTrail
	// ParticleRedPoint 红点，可被飞船收集
	ParticleRedPoint
)

func (t ParticleTag) String() string {
	switch t {
	case ParticleTrail:
		return "trail"
	case ParticleRedPoint:
		return "redpoint"
	default:
		return "explosion"
	}
}

// Particle 粒子
type Particle struct {
	ecs.Entity
	Body

	Tag     ParticleTag
	Life    int // 剩余帧数
	MaxLife int
}

// Collectible 是否可被飞船收集
func (p *Particle) Collectible() bool {
	return p.Tag == ParticleRedPoint
}
