package game

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/ecs"
	"github.com/gonewx/skyraid/pkg/utils"
)

// 关卡编号
const (
	Stage1 = 1
	Stage2 = 2
	Stage3 = 3
	// FinalStage 最后一关，击败其 Boss 即胜利
	FinalStage = Stage3
)

// GameState 一局游戏的模拟上下文
//
// 所有子系统通过它访问实体仓库和计数器，不存在任何全局可变状态。
// 每个仓库只由一个子系统在一个阶段中遍历和修改。
type GameState struct {
	Config     *config.GameConfig
	Difficulty config.Difficulty // 会话开始时读取，整局不可变
	Log        zerolog.Logger
	Events     *EventBus
	Metrics    *Metrics
	Rand       *rand.Rand

	Entities     *ecs.EntityManager
	Ships        []*components.Ship
	Enemies      *ecs.Store[*components.Enemy]
	EnemyBullets *ecs.Store[*components.Projectile]
	Particles    *ecs.Store[*components.Particle]
	PowerUps     *ecs.Store[*components.PowerUp]
	Boss         *components.Boss // 当前 Boss，没有时为 nil

	// 关卡标志，索引 1..3
	StageFlags [FinalStage + 1]bool

	Kills         int                 // 全局击杀数（含 Boss 奖励）
	StageKills    [FinalStage + 1]int // 每关的击杀数，用于 Boss 触发判定
	RedPointTotal int                 // 全局红点收集数

	NowMs float64 // 模拟时钟（毫秒）
	Frame uint64  // 已处理的帧数

	GameOver bool
	Victory  bool

	shipCount int
}

// Option GameState 构造选项
type Option func(*GameState)

// WithLogger 设置日志器
func WithLogger(log zerolog.Logger) Option {
	return func(gs *GameState) { gs.Log = log }
}

// WithRand 设置随机源（测试中固定种子）
func WithRand(r *rand.Rand) Option {
	return func(gs *GameState) { gs.Rand = r }
}

// WithDifficulty 设置难度倍数
func WithDifficulty(d config.Difficulty) Option {
	return func(gs *GameState) { gs.Difficulty = d }
}

// WithMetrics 设置指标记录器
func WithMetrics(m *Metrics) Option {
	return func(gs *GameState) { gs.Metrics = m }
}

// NewGameState 创建模拟上下文并放置飞船
//
// 参数：
//   - cfg: 玩法配置
//   - shipCount: 飞船数量，会被限制在 1..3
//   - opts: 可选项
func NewGameState(cfg *config.GameConfig, shipCount int, opts ...Option) *GameState {
	if shipCount < 1 {
		shipCount = 1
	}
	if shipCount > components.MaxShips {
		shipCount = components.MaxShips
	}

	em := ecs.NewEntityManager()
	gs := &GameState{
		Config:       cfg,
		Difficulty:   config.DefaultDifficulty(),
		Log:          zerolog.Nop(),
		Events:       NewEventBus(),
		Rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		Entities:     em,
		Enemies:      ecs.NewStore[*components.Enemy](em, cfg.Stage3.PopulationCap),
		EnemyBullets: ecs.NewStore[*components.Projectile](em, 256),
		Particles:    ecs.NewStore[*components.Particle](em, cfg.Particles.Cap),
		PowerUps:     ecs.NewStore[*components.PowerUp](em, 8),
		shipCount:    shipCount,
	}
	for _, opt := range opts {
		opt(gs)
	}

	gs.Reset()
	return gs
}

// Reset 重置为第1关开局状态
//
// 注意：飞船上挂起的定时效果由效果系统负责清除，调用方必须同时重置效果系统。
func (gs *GameState) Reset() {
	gs.Enemies.Clear()
	gs.EnemyBullets.Clear()
	gs.Particles.Clear()
	gs.PowerUps.Clear()
	gs.Boss = nil

	gs.StageFlags = [FinalStage + 1]bool{}
	gs.StageFlags[Stage1] = true
	gs.Kills = 0
	gs.StageKills = [FinalStage + 1]int{}
	gs.RedPointTotal = 0
	gs.NowMs = 0
	gs.Frame = 0
	gs.GameOver = false
	gs.Victory = false
	gs.Events.Reset()

	for _, ship := range gs.Ships {
		ship.Bullets.Clear()
	}
	gs.Ships = gs.Ships[:0]
	for i := 0; i < gs.shipCount; i++ {
		gs.Ships = append(gs.Ships, gs.newShip(i))
	}
}

// newShip 在场地底部按编号等距放置飞船
func (gs *GameState) newShip(index int) *components.Ship {
	sc := gs.Config.Ship
	pf := gs.Config.Playfield
	centerX := pf.Width * float64(index+1) / float64(gs.shipCount+1)

	ship := &components.Ship{
		Body: components.Body{
			X:      centerX - sc.Width/2,
			Y:      pf.Height - sc.Height - 20,
			Width:  sc.Width,
			Height: sc.Height,
		},
		Index:      index,
		Lives:      sc.Lives,
		Active:     true,
		LastShotMs: -1,
		Speed:      sc.Speed,
		Bullets:    ecs.NewStore[*components.Projectile](gs.Entities, 64),
	}
	ship.ID = gs.Entities.NewID()
	return ship
}

// CurrentStage 返回当前关卡（标志中编号最大的一关）
func (gs *GameState) CurrentStage() int {
	for stage := FinalStage; stage >= Stage1; stage-- {
		if gs.StageFlags[stage] {
			return stage
		}
	}
	return Stage1
}

// BossActive 是否有 Boss 正在战斗
func (gs *GameState) BossActive() bool {
	return gs.Boss != nil && gs.Boss.IsActive()
}

// ActiveShips 返回仍在场上的飞船
func (gs *GameState) ActiveShips() []*components.Ship {
	out := make([]*components.Ship, 0, len(gs.Ships))
	for _, s := range gs.Ships {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// AllShipsDown 所有飞船都已停用
func (gs *GameState) AllShipsDown() bool {
	for _, s := range gs.Ships {
		if s.Active {
			return false
		}
	}
	return true
}

// ShipByID 按实体ID查找飞船
func (gs *GameState) ShipByID(id ecs.EntityID) *components.Ship {
	for _, s := range gs.Ships {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Playfield 返回场地矩形
func (gs *GameState) Playfield() utils.Rect {
	return utils.Rect{W: gs.Config.Playfield.Width, H: gs.Config.Playfield.Height}
}

// Emit 以当前帧号发出事件
func (gs *GameState) Emit(t EventType, ship, value int, x, y float64) {
	gs.Events.Emit(Event{Type: t, Ship: ship, Value: value, X: x, Y: y, Frame: gs.Frame})
}

// AddKill 记一次击杀（全局和当前关卡）
func (gs *GameState) AddKill() {
	gs.Kills++
	gs.StageKills[gs.CurrentStage()]++
	if gs.Metrics != nil {
		gs.Metrics.KillsAdded(1)
	}
}
