//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -javapkg com.gonewx.skyraid -o build/android/skyraid.aar ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/skyraid/internal/logging"
	"github.com/gonewx/skyraid/pkg/app"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
)

func init() {
	log := logging.New("info", nil)

	// 移动端使用默认玩法配置，成绩只保存在内存库
	rc := &config.RuntimeConfig{LogLevel: "info", AppName: "skyraid", Ships: 1, WindowScale: 1}
	data, err := gdata.Open(gdata.Config{AppName: rc.AppName})
	if err != nil {
		log.Warn().Err(err).Msg("persistent storage unavailable")
		data = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Game:         config.DefaultGameConfig(),
		Runtime:      rc,
		Log:          log,
		Data:         data,
		AudioContext: audio.NewContext(game.DefaultSampleRate),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize game")
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
