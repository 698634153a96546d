package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/skyraid/internal/logging"
	"github.com/gonewx/skyraid/pkg/app"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/embedded"
	"github.com/gonewx/skyraid/pkg/game"
)

var (
	configDir = flag.String("config", ".", "启动器配置目录（skyraid.yaml）")
	verbose   = flag.Bool("verbose", false, "输出调试日志")
	ships     = flag.Int("ships", 0, "飞船数量 1..3，0 表示使用配置")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	rc, err := config.LoadRuntimeConfig(*configDir)
	if err != nil {
		bootLog := logging.New("info", nil)
		bootLog.Fatal().Err(err).Msg("failed to load runtime config")
	}
	if *verbose {
		rc.LogLevel = "debug"
	}
	if *ships > 0 {
		rc.Ships = *ships
	}
	log := logging.New(rc.LogLevel, os.Stderr)

	var gameCfg *config.GameConfig
	if rc.GameConfig != "" {
		gameCfg, err = config.LoadGameConfig(rc.GameConfig)
	} else {
		gameCfg, err = embedded.GameConfig()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game config")
	}

	// gdata 不可用时降级为内存设置
	data, err := gdata.Open(gdata.Config{AppName: rc.AppName})
	if err != nil {
		log.Warn().Err(err).Msg("persistent storage unavailable, settings will not be saved")
		data = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Game:         gameCfg,
		Runtime:      rc,
		Log:          log,
		Data:         data,
		AudioContext: audio.NewContext(game.DefaultSampleRate),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize game")
	}
	defer gameApp.Close()

	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(w)*rc.WindowScale), int(float64(h)*rc.WindowScale))
	ebiten.SetWindowTitle("Sky Raid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 模拟按墙钟时间自行限帧，tick 需要比逻辑帧率更密
	ebiten.SetTPS(gameCfg.FrameRate * 2)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Error().Err(err).Msg("game loop exited with error")
	}
}
