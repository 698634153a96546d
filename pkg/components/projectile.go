package components

import "github.com/gonewx/skyraid/pkg/ecs"

// ProjectileTag 子弹的视觉标签
type ProjectileTag int

const (
	// ProjectileNormal 普通子弹
	ProjectileNormal ProjectileTag = iota
	// ProjectileLaser 激光
	ProjectileLaser
	// ProjectileSpecial 特殊弹（特殊道具或重型敌机）
	ProjectileSpecial
	// ProjectileRadial Boss 环形弹幕
	ProjectileRadial
)

func (t ProjectileTag) String() string {
	switch t {
	case ProjectileLaser:
		return "laser"
	case ProjectileSpecial:
		return "special"
	case ProjectileRadial:
		return "radial"
	default:
		return "normal"
	}
}

// NoOwner 敌方子弹没有所属飞船
const NoOwner = -1

// Projectile 子弹（玩家或敌方）
// 归属由所在仓库决定；玩家子弹额外记录飞船编号
type Projectile struct {
	ecs.Entity
	Body

	Tag   ProjectileTag
	Owner int // 发射飞船编号，敌方子弹为 NoOwner
}
