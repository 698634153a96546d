package components

import "github.com/gonewx/skyraid/pkg/ecs"

const (
	// MaxShips 同时存在的飞船上限
	MaxShips = 3
	// MaxPowerLevel 火力等级上限
	MaxPowerLevel = 9
)

// Ship 玩家飞船
//
// 生命值归零时飞船被停用（Active=false），但不会从 GameState 中移除，
// 以便UI继续显示其计数器。
type Ship struct {
	ecs.Entity
	Body

	Index      int     // 飞船编号 0..2，对应输入槽位
	Lives      int     // 剩余生命（≥0）
	PowerLevel int     // 火力等级 0..9
	Shielded   bool    // 护盾激活中
	Stunned    bool    // 眩晕中（不响应移动和开火）
	Active     bool    // 是否仍在场上
	RedPoints  int     // 本飞船收集的红点数，达到阈值后归零并触发护盾
	LastShotMs float64 // 上次开火时间（模拟时钟，毫秒），负值表示从未开火
	Speed      float64 // 移动速度（像素/帧）

	Bullets *ecs.Store[*Projectile] // 本飞船发射的子弹
}

// IsActive 飞船是否仍在场上（定时效果到期前用于重新校验）
func (s *Ship) IsActive() bool {
	return s.Active && !s.Removed()
}

// EntityID 返回实体ID
func (s *Ship) EntityID() ecs.EntityID {
	return s.ID
}

// CanAct 飞船是否可以响应输入
func (s *Ship) CanAct() bool {
	return s.Active && !s.Stunned
}
