package systems

import (
	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// ProjectileSystem 推进敌方子弹（敌机和 Boss 共用一个仓库）
type ProjectileSystem struct {
	gs *game.GameState
}

// NewProjectileSystem 创建敌方子弹系统
func NewProjectileSystem(gs *game.GameState) *ProjectileSystem {
	return &ProjectileSystem{gs: gs}
}

// Update 移动敌方子弹，离开场地任一边界即删除
func (ps *ProjectileSystem) Update() {
	pf := ps.gs.Playfield()
	bullets := ps.gs.EnemyBullets
	bullets.ReverseEach(func(i int, b *components.Projectile) bool {
		b.Advance()
		if !utils.Intersects(b.Rect(), pf) {
			bullets.RemoveAt(i)
		}
		return true
	})
}
