// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/systems"
)

// Config 定义应用启动配置
type Config struct {
	Game    *config.GameConfig
	Runtime *config.RuntimeConfig
	Log     zerolog.Logger

	// Data gdata 存储，可为 nil（设置和累计计数器只保存在内存中）
	Data *gdata.Manager
	// AudioContext 音频上下文，可为 nil（静音）
	AudioContext *audio.Context
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim      *systems.Simulation
	input    *KeyboardInput
	renderer *Renderer
	settings *game.SettingsManager
	scores   *game.ScoreStore
	audio    *game.AudioManager
	log      zerolog.Logger

	now          func() time.Time
	sessionStart time.Time
	pausedAt     time.Time
	pausedTotal  time.Duration
	paused       bool
	recorded     bool // 本局结果已写入成绩库

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if cfg.Game == nil || cfg.Runtime == nil {
		return nil, fmt.Errorf("app config requires game and runtime config")
	}
	log := cfg.Log.With().Str("system", "App").Logger()

	settings := game.NewSettingsManager(cfg.Data, cfg.Log)

	metrics, err := game.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gs := game.NewGameState(cfg.Game, cfg.Runtime.Ships,
		game.WithLogger(cfg.Log),
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithDifficulty(settings.Difficulty()),
		game.WithMetrics(metrics),
	)

	scores, err := game.OpenScoreStore(cfg.Runtime.ScoreDB, cfg.Log)
	if err != nil {
		return nil, err
	}

	audioManager := game.NewAudioManager(cfg.AudioContext, settings, cfg.Log)
	gs.Events.Subscribe(func(e game.Event) {
		audioManager.HandleEvent(e)
	})

	a := &App{
		sim:      systems.NewSimulation(gs),
		input:    NewKeyboardInput(),
		renderer: NewRenderer(),
		settings: settings,
		scores:   scores,
		audio:    audioManager,
		log:      log,
		now:      time.Now,
	}
	a.sessionStart = a.now()

	log.Info().
		Int("ships", len(gs.Ships)).
		Int64("seed", seed).
		Interface("difficulty", gs.Difficulty).
		Msg("app initialized")
	return a, nil
}

// sessionMs 本局经过的时间（毫秒），不含暂停
//
// 模拟时钟在每局开始时归零，所以这里必须是相对本局开始的时间。
func (a *App) sessionMs() float64 {
	elapsed := a.now().Sub(a.sessionStart) - a.pausedTotal
	return float64(elapsed) / float64(time.Millisecond)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			pf := a.sim.State().Config.Playfield
			ebiten.SetWindowSize(int(pf.Width), int(pf.Height))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.sessionOver() {
		a.restart()
	}
	if a.paused {
		return nil
	}

	gs := a.sim.State()
	a.tick(a.sessionMs(), a.input.Intents(len(gs.Ships)))
	return nil
}

// tick 推进模拟并在本局结束时记录一次成绩
func (a *App) tick(nowMs float64, intents []systems.ShipIntent) systems.FrameResult {
	res := a.sim.Step(nowMs, intents)
	if (res.GameOver || res.Victory) && !a.recorded {
		a.recorded = true
		if err := a.recordSession(nowMs); err != nil {
			a.log.Error().Err(err).Msg("failed to record session")
		}
	}
	return res
}

func (a *App) recordSession(durationMs float64) error {
	gs := a.sim.State()
	rec := &game.SessionRecord{
		Kills:      gs.Kills,
		RedPoints:  gs.RedPointTotal,
		Stage:      gs.CurrentStage(),
		Victory:    gs.Victory,
		Ships:      len(gs.Ships),
		DurationMs: int64(durationMs),
	}
	a.log.Info().
		Int("kills", rec.Kills).
		Int("stage", rec.Stage).
		Bool("victory", rec.Victory).
		Msg("session finished")

	if err := a.scores.Record(rec); err != nil {
		return err
	}
	return a.settings.RecordSession(rec.Kills, rec.Stage, rec.Victory)
}

func (a *App) sessionOver() bool {
	gs := a.sim.State()
	return gs.GameOver || gs.Victory
}

func (a *App) togglePause() {
	if a.sessionOver() {
		return
	}
	if a.paused {
		a.pausedTotal += a.now().Sub(a.pausedAt)
	} else {
		a.pausedAt = a.now()
	}
	a.paused = !a.paused
}

// restart 开始新的一局，重新读取难度设置
func (a *App) restart() {
	a.sim.Reset()
	a.sim.State().Difficulty = a.settings.Difficulty()
	a.sessionStart = a.now()
	a.pausedTotal = 0
	a.paused = false
	a.recorded = false
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.sim.State().Snapshot())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸（即场地尺寸）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	pf := a.sim.State().Config.Playfield
	return int(pf.Width), int(pf.Height)
}

// Simulation 返回模拟调度器
func (a *App) Simulation() *systems.Simulation {
	return a.sim
}

// BestScores 返回历史最佳的 n 局
func (a *App) BestScores(n int) ([]game.SessionRecord, error) {
	return a.scores.Best(n)
}

// Close 保存设置并关闭成绩库
func (a *App) Close() error {
	if err := a.settings.Save(); err != nil {
		a.log.Warn().Err(err).Msg("failed to save settings")
	}
	return a.scores.Close()
}
