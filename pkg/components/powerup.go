package components

import "github.com/gonewx/skyraid/pkg/ecs"

// PowerUpKind 道具类型
type PowerUpKind int

const (
	// PowerUpThunder 清屏
	PowerUpThunder PowerUpKind = iota
	// PowerUpFirePower 火力 +1
	PowerUpFirePower
	// PowerUpSpecial 特殊弹幕
	PowerUpSpecial
	// PowerUpLife 生命 +1
	PowerUpLife
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpThunder:
		return "thunder"
	case PowerUpFirePower:
		return "firepower"
	case PowerUpSpecial:
		return "special"
	case PowerUpLife:
		return "life"
	default:
		return "unknown"
	}
}

// PowerUp 下落的道具，带正弦横向漂移
type PowerUp struct {
	ecs.Entity
	Body

	Kind  PowerUpKind
	BaseX float64 // 漂移中心X
	Phase float64 // 漂移相位（弧度）
}
