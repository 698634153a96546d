package components

import "github.com/gonewx/skyraid/pkg/ecs"

const (
	// StandardEnemyTypes 第1/2关的敌人类型数（0..14）
	StandardEnemyTypes = 15
	// ExtendedEnemyTypeMin 第3关扩展类型下限
	ExtendedEnemyTypeMin = 10
	// ExtendedEnemyTypeMax 第3关扩展类型上限
	ExtendedEnemyTypeMax = 17
)

// Enemy 普通敌机
type Enemy struct {
	ecs.Entity
	Body

	Type    int // 类型 0..17，决定弹幕模式
	Volleys int // 已开火次数（螺旋弹幕的相位）
}
