package systems

import (
	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
)

// WaveState 第1/2关波次状态
type WaveState int

const (
	WaveIdle WaveState = iota
	WaveSpawning
	WaveActive
	WaveComplete
)

func (s WaveState) String() string {
	switch s {
	case WaveIdle:
		return "idle"
	case WaveSpawning:
		return "spawning"
	case WaveActive:
		return "active"
	case WaveComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// WaveSystem 敌机波次生成、移动和开火
//
// 第1/2关：一波固定一个类型（0..14 循环），生成 SpawnTarget 架，
// 场上清空后停顿 InterWaveDelayMs 再开始下一波。
// 第3关：扩展类型按批生成，每个类型被击杀 KillsPerType 架后切换到下一个类型。
// Boss 在场时暂停生成，已在场的敌机照常移动和开火。
type WaveSystem struct {
	gs  *game.GameState
	log zerolog.Logger

	state        WaveState
	waveType     int
	spawned      int
	lastSpawnMs  float64
	completeAtMs float64
	lastFireMs   float64

	stage3Started     bool
	stage3Type        int
	stage3KillBase    int // 切换到当前类型时第3关的击杀数
	stage3BatchLeft   int // 当前批次尚未生成的数量
	stage3LastSpawnMs float64
}

// NewWaveSystem 创建波次系统
func NewWaveSystem(gs *game.GameState) *WaveSystem {
	ws := &WaveSystem{
		gs:  gs,
		log: gs.Log.With().Str("system", "Wave").Logger(),
	}
	ws.Reset()
	return ws
}

// Reset 回到第一波
func (ws *WaveSystem) Reset() {
	ws.state = WaveIdle
	ws.waveType = 0
	ws.spawned = 0
	ws.lastSpawnMs = -ws.gs.Config.Wave.SpawnIntervalMs
	ws.completeAtMs = 0
	ws.lastFireMs = 0
	ws.stage3Started = false
	ws.stage3Type = ws.gs.Config.Stage3.TypeMin
	ws.stage3KillBase = 0
	ws.stage3BatchLeft = 0
	ws.stage3LastSpawnMs = -ws.gs.Config.Stage3.SpawnIntervalMs
}

// State 返回当前波次状态
func (ws *WaveSystem) State() WaveState {
	return ws.state
}

// WaveType 返回当前波次的敌机类型
func (ws *WaveSystem) WaveType() int {
	return ws.waveType
}

// Stage3Type 返回第3关当前的扩展类型
func (ws *WaveSystem) Stage3Type() int {
	return ws.stage3Type
}

// Update 生成、移动敌机并处理开火判定
func (ws *WaveSystem) Update() {
	if !ws.gs.BossActive() {
		if ws.gs.CurrentStage() == game.Stage3 {
			ws.updateStage3Spawner()
		} else {
			ws.updateWave()
		}
	}
	ws.moveEnemies()
	ws.fireTick()
}

// updateWave 第1/2关波次状态机
func (ws *WaveSystem) updateWave() {
	wc := ws.gs.Config.Wave
	now := ws.gs.NowMs

	switch ws.state {
	case WaveIdle:
		ws.spawned = 0
		ws.state = WaveSpawning
		ws.log.Info().Int("type", ws.waveType).Int("stage", ws.gs.CurrentStage()).Msg("wave started")
		fallthrough

	case WaveSpawning:
		if now-ws.lastSpawnMs >= wc.SpawnIntervalMs && ws.TrySpawn() {
			ws.lastSpawnMs = now
		}
		if ws.spawned >= wc.SpawnTarget {
			ws.state = WaveActive
		}

	case WaveActive:
		if ws.gs.Enemies.Len() == 0 {
			ws.state = WaveComplete
			ws.completeAtMs = now
			ws.waveType = (ws.waveType + 1) % wc.TypeCount
			ws.log.Info().Int("nextType", ws.waveType).Msg("wave complete")
		}

	case WaveComplete:
		// 波次之间的固定停顿
		if now-ws.completeAtMs >= wc.InterWaveDelayMs {
			ws.state = WaveIdle
		}
	}
}

// TrySpawn 为当前波次生成一架敌机
//
// 返回:
//   - bool: 场上已达上限或本波已生成足够数量时返回 false
func (ws *WaveSystem) TrySpawn() bool {
	wc := ws.gs.Config.Wave
	if ws.gs.Enemies.Len() >= wc.PopulationCap || ws.spawned >= wc.SpawnTarget {
		return false
	}
	scale := ws.gs.Difficulty.EnemySpeed
	if ws.gs.CurrentStage() == game.Stage2 {
		scale *= wc.Stage2SpeedScale
	}
	ws.spawnEnemy(ws.waveType, scale, 1)
	ws.spawned++
	return true
}

// updateStage3Spawner 第3关按批生成扩展类型
func (ws *WaveSystem) updateStage3Spawner() {
	sc := ws.gs.Config.Stage3
	kills := ws.gs.StageKills[game.Stage3]

	if !ws.stage3Started {
		ws.stage3Started = true
		ws.stage3Type = sc.TypeMin
		ws.stage3KillBase = kills
		ws.stage3BatchLeft = sc.BatchSize
		ws.log.Info().Int("type", ws.stage3Type).Msg("stage 3 spawner started")
	}

	if kills-ws.stage3KillBase >= sc.KillsPerType {
		ws.stage3KillBase += sc.KillsPerType
		ws.stage3Type++
		if ws.stage3Type > sc.TypeMax {
			ws.stage3Type = sc.TypeMin
		}
		ws.stage3BatchLeft += sc.BatchSize
		ws.log.Info().Int("type", ws.stage3Type).Msg("stage 3 type advanced")
	} else if ws.stage3BatchLeft == 0 && ws.gs.Enemies.Len() == 0 {
		// 本批敌机全部飞出场地而击杀不足时补一批同类型
		ws.stage3BatchLeft = sc.BatchSize
	}

	now := ws.gs.NowMs
	if ws.stage3BatchLeft > 0 && now-ws.stage3LastSpawnMs >= sc.SpawnIntervalMs && ws.TrySpawnStage3() {
		ws.stage3LastSpawnMs = now
	}
}

// TrySpawnStage3 生成一架第3关扩展类型敌机
func (ws *WaveSystem) TrySpawnStage3() bool {
	sc := ws.gs.Config.Stage3
	if ws.gs.Enemies.Len() >= sc.PopulationCap || ws.stage3BatchLeft <= 0 {
		return false
	}
	ws.spawnEnemy(ws.stage3Type, ws.gs.Difficulty.EnemySpeed, sc.DriftMultiplier)
	ws.stage3BatchLeft--
	return true
}

// spawnEnemy 在场地上方随机位置生成敌机
func (ws *WaveSystem) spawnEnemy(enemyType int, speedScale, driftScale float64) *components.Enemy {
	wc := ws.gs.Config.Wave
	pf := ws.gs.Config.Playfield
	r := ws.gs.Rand

	enemy := &components.Enemy{
		Body: components.Body{
			X:      r.Float64() * (pf.Width - wc.EnemyWidth),
			Y:      -wc.EnemyHeight,
			Width:  wc.EnemyWidth,
			Height: wc.EnemyHeight,
			VX:     (r.Float64()*2 - 1) * wc.EnemySpeedX * speedScale * driftScale,
			VY:     wc.EnemySpeedY * speedScale,
		},
		Type: enemyType,
	}
	ws.gs.Enemies.Add(enemy)
	ws.log.Debug().Int("type", enemyType).Uint64("id", uint64(enemy.ID)).Msg("enemy spawned")
	return enemy
}

// moveEnemies 移动敌机：左右和上边界反弹，从下方离开场地则删除
func (ws *WaveSystem) moveEnemies() {
	pf := ws.gs.Config.Playfield
	enemies := ws.gs.Enemies
	enemies.ReverseEach(func(i int, e *components.Enemy) bool {
		ok := guardEntity(ws.log, e.ID, func() {
			e.Advance()
			if e.X < 0 {
				e.X = 0
				e.VX = -e.VX
			} else if e.X+e.Width > pf.Width {
				e.X = pf.Width - e.Width
				e.VX = -e.VX
			}
			if e.Y < 0 && e.VY < 0 {
				e.Y = 0
				e.VY = -e.VY
			}
		})
		switch {
		case !ok:
			// 帧末压缩，本帧后续各轮跳过它
			enemies.Destroy(e)
		case e.Y > pf.Height:
			enemies.RemoveAt(i)
		}
		return true
	})
}

// fireTick 全局开火判定：每架敌机独立按概率开火，每次判定的新子弹总数有上限
func (ws *WaveSystem) fireTick() {
	fc := ws.gs.Config.EnemyFire
	now := ws.gs.NowMs
	if now-ws.lastFireMs < fc.TickMs {
		return
	}
	ws.lastFireMs = now

	budget := fc.MaxBulletsPerTick
	for _, e := range ws.gs.Enemies.Items() {
		if budget <= 0 {
			break
		}
		if e.Removed() || ws.gs.Rand.Float64() >= fc.Probability {
			continue
		}
		budget -= ws.FireEnemy(e, budget)
	}
}

// FireEnemy 按敌机类型的弹幕表发射一次
//
// 参数:
//   - e: 开火的敌机
//   - limit: 本次最多生成的子弹数
//
// 返回:
//   - int: 实际生成的子弹数
func (ws *WaveSystem) FireEnemy(e *components.Enemy, limit int) int {
	pattern := config.PatternForType(e.Type)
	specs := pattern.ShotSpecs(e.Volleys, ws.gs.Difficulty.EnemyBulletSpeed)
	e.Volleys++

	fc := ws.gs.Config.EnemyFire
	w, h := pattern.Width, pattern.Height
	if w == 0 || h == 0 {
		w, h = fc.BulletWidth, fc.BulletHeight
	}

	n := 0
	for _, spec := range specs {
		if n >= limit {
			break
		}
		ws.gs.EnemyBullets.Add(&components.Projectile{
			Body: components.Body{
				X:      e.CenterX() + spec.OffsetX - w/2,
				Y:      e.Y + e.Height,
				Width:  w,
				Height: h,
				VX:     spec.VX,
				VY:     spec.VY,
			},
			Tag:   pattern.Tag,
			Owner: components.NoOwner,
		})
		n++
	}
	return n
}
