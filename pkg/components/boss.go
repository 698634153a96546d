package components

import "github.com/gonewx/skyraid/pkg/ecs"

// BossVariant Boss 编号（1..3，对应关卡）
type BossVariant int

const (
	BossVariant1 BossVariant = 1
	BossVariant2 BossVariant = 2
	BossVariant3 BossVariant = 3
)

// MovementPattern Boss 移动模式
type MovementPattern int

const (
	// MovementOrbit 圆周运动
	MovementOrbit MovementPattern = iota
	// MovementZigzag 水平之字形，触边下移一行
	MovementZigzag
	// MovementFigureEight 8字形
	MovementFigureEight
	// MovementDash 随机冲刺
	MovementDash
	// MovementStationary 静止（Boss 3）
	MovementStationary
)

func (p MovementPattern) String() string {
	switch p {
	case MovementOrbit:
		return "orbit"
	case MovementZigzag:
		return "zigzag"
	case MovementFigureEight:
		return "figure-eight"
	case MovementDash:
		return "dash"
	case MovementStationary:
		return "stationary"
	default:
		return "unknown"
	}
}

// Boss 运行时状态
type Boss struct {
	ecs.Entity
	Body

	Variant   BossVariant
	Health    int
	MaxHealth int

	Pattern        MovementPattern
	PatternStartMs float64 // 当前移动模式开始时间
	ShootTicks     int     // 距上次开火的帧数

	// 移动模式参数
	AnchorX, AnchorY float64 // 圆周/8字形中心
	Angle            float64 // 圆周/8字形相位
	ZigDir           float64 // 之字形水平方向 ±1
	DashFromX        float64
	DashFromY        float64
	DashToX          float64
	DashToY          float64
	DashStartMs      float64

	HitFlash bool // 受击闪白
	Defeated bool // 击败锁存，保证击败效果只触发一次
}

// IsActive Boss 是否仍在战斗
func (b *Boss) IsActive() bool {
	return !b.Defeated && !b.Removed()
}

// EntityID 返回实体ID
func (b *Boss) EntityID() ecs.EntityID {
	return b.ID
}
