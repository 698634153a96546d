// headless_sim 无窗口运行模拟，用于平衡性调整和回归检查
//
// 用法：
//
//	go run ./cmd/headless_sim -frames 36000 -ships 2 -seed 7
//	go run ./cmd/headless_sim -config data/game.yaml -db sim.db -verbose
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/gonewx/skyraid/internal/logging"
	"github.com/gonewx/skyraid/pkg/config"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/systems"
)

var (
	frames     = flag.Int("frames", 60*60*10, "最多模拟的帧数")
	ships      = flag.Int("ships", 1, "飞船数量 1..3")
	seed       = flag.Int64("seed", 1, "随机种子")
	configPath = flag.String("config", "", "玩法配置文件，空表示默认配置")
	dbPath     = flag.String("db", "", "成绩数据库路径，空表示不记录")
	verbose    = flag.Bool("verbose", false, "输出调试日志")
)

func main() {
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logging.New(level, os.Stderr)

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadGameConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load game config")
		}
	}

	gs := game.NewGameState(cfg, *ships,
		game.WithLogger(log),
		game.WithRand(rand.New(rand.NewSource(*seed))),
	)
	sim := systems.NewSimulation(gs)
	pilot := newAutopilot(gs)

	summary := run(sim, pilot, *frames)
	fmt.Println(summary)

	if *dbPath == "" {
		return
	}
	store, err := game.OpenScoreStore(*dbPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score store")
	}
	defer store.Close()

	if err := store.Record(&game.SessionRecord{
		Kills:      gs.Kills,
		RedPoints:  gs.RedPointTotal,
		Stage:      gs.CurrentStage(),
		Victory:    gs.Victory,
		Ships:      len(gs.Ships),
		DurationMs: int64(gs.NowMs),
	}); err != nil {
		log.Error().Err(err).Msg("failed to record session")
	}
}

// result 一次无窗口运行的汇总
type result struct {
	Frames   uint64
	Kills    int
	Stage    int
	Bosses   int
	Victory  bool
	GameOver bool
	NowMs    float64
}

func (r result) String() string {
	outcome := "timeout"
	switch {
	case r.Victory:
		outcome = "victory"
	case r.GameOver:
		outcome = "game over"
	}
	return fmt.Sprintf("%s after %d frames (%.1fs): kills=%d stage=%d bosses=%d",
		outcome, r.Frames, r.NowMs/1000, r.Kills, r.Stage, r.Bosses)
}

// run 以合成时钟逐帧推进，直到结束或达到帧数上限
func run(sim *systems.Simulation, pilot *autopilot, maxFrames int) result {
	gs := sim.State()
	interval := gs.Config.FrameIntervalMs()
	var r result

	for i := 0; i < maxFrames; i++ {
		res := sim.Step(float64(i)*interval, pilot.Intents())
		for _, e := range res.Events {
			if e.Type == game.EventBossDefeated {
				r.Bosses++
			}
		}
		if res.GameOver || res.Victory {
			break
		}
	}

	r.Frames = gs.Frame
	r.Kills = gs.Kills
	r.Stage = gs.CurrentStage()
	r.Victory = gs.Victory
	r.GameOver = gs.GameOver
	r.NowMs = gs.NowMs
	return r
}
