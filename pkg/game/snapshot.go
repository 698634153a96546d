package game

import "github.com/gonewx/skyraid/pkg/components"

// ShipCounters 单艘飞船的UI计数
type ShipCounters struct {
	Index      int
	Lives      int
	PowerLevel int
	RedPoints  int
	Shielded   bool
	Stunned    bool
	Active     bool
}

// Counters UI 协作方每帧读取的计数器
type Counters struct {
	Stage         int
	Kills         int
	StageKills    int
	RedPoints     int
	Ships         []ShipCounters
	BossActive    bool
	BossVariant   int
	BossHealth    int
	BossMaxHealth int
	GameOver      bool
	Victory       bool
}

// Counters 返回当前计数器
func (gs *GameState) Counters() Counters {
	stage := gs.CurrentStage()
	c := Counters{
		Stage:      stage,
		Kills:      gs.Kills,
		StageKills: gs.StageKills[stage],
		RedPoints:  gs.RedPointTotal,
		Ships:      make([]ShipCounters, 0, len(gs.Ships)),
		GameOver:   gs.GameOver,
		Victory:    gs.Victory,
	}
	for _, s := range gs.Ships {
		c.Ships = append(c.Ships, ShipCounters{
			Index:      s.Index,
			Lives:      s.Lives,
			PowerLevel: s.PowerLevel,
			RedPoints:  s.RedPoints,
			Shielded:   s.Shielded,
			Stunned:    s.Stunned,
			Active:     s.Active,
		})
	}
	if gs.BossActive() {
		c.BossActive = true
		c.BossVariant = int(gs.Boss.Variant)
		c.BossHealth = gs.Boss.Health
		c.BossMaxHealth = gs.Boss.MaxHealth
	}
	return c
}

// Snapshot 渲染器使用的只读快照（值拷贝）
type Snapshot struct {
	Frame         uint64
	Ships         []components.Ship
	PlayerBullets []components.Projectile
	Enemies       []components.Enemy
	EnemyBullets  []components.Projectile
	Particles     []components.Particle
	PowerUps      []components.PowerUp
	Boss          *components.Boss // 拷贝，没有 Boss 时为 nil
	Counters      Counters
}

// Snapshot 拷贝当前所有实体状态
// 渲染器修改快照不会影响模拟
func (gs *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:        gs.Frame,
		Ships:        make([]components.Ship, 0, len(gs.Ships)),
		Enemies:      copyValues(gs.Enemies.Items()),
		EnemyBullets: copyValues(gs.EnemyBullets.Items()),
		Particles:    copyValues(gs.Particles.Items()),
		PowerUps:     copyValues(gs.PowerUps.Items()),
		Counters:     gs.Counters(),
	}
	for _, s := range gs.Ships {
		ship := *s
		ship.Bullets = nil
		snap.Ships = append(snap.Ships, ship)
		snap.PlayerBullets = append(snap.PlayerBullets, copyValues(s.Bullets.Items())...)
	}
	if gs.Boss != nil && !gs.Boss.Removed() {
		boss := *gs.Boss
		snap.Boss = &boss
	}
	return snap
}

// copyValues 把指针切片拷贝成值切片，跳过已标记删除的实体
func copyValues[T any, PT interface {
	*T
	Removed() bool
}](items []PT) []T {
	out := make([]T, 0, len(items))
	for _, p := range items {
		if p.Removed() {
			continue
		}
		out = append(out, *p)
	}
	return out
}
