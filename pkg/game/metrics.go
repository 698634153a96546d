package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/gonewx/skyraid/pkg/game"

// Metrics 模拟运行指标
// 未配置 MeterProvider 时使用 otel 全局提供者（默认 no-op）
type Metrics struct {
	frames      metric.Int64Counter
	kills       metric.Int64Counter
	bossDefeats metric.Int64Counter
	gameOvers   metric.Int64Counter
}

// NewMetrics 创建指标记录器
//
// 参数：
//   - mp: MeterProvider，为 nil 时使用 otel.GetMeterProvider()
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	frames, err := meter.Int64Counter("skyraid.frames",
		metric.WithDescription("Simulation frames processed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}
	kills, err := meter.Int64Counter("skyraid.kills",
		metric.WithDescription("Enemies destroyed by player bullets"))
	if err != nil {
		return nil, fmt.Errorf("failed to create kills counter: %w", err)
	}
	bossDefeats, err := meter.Int64Counter("skyraid.boss_defeats",
		metric.WithDescription("Bosses defeated"))
	if err != nil {
		return nil, fmt.Errorf("failed to create boss defeats counter: %w", err)
	}
	gameOvers, err := meter.Int64Counter("skyraid.game_overs",
		metric.WithDescription("Sessions ended by losing every ship"))
	if err != nil {
		return nil, fmt.Errorf("failed to create game overs counter: %w", err)
	}

	return &Metrics{
		frames:      frames,
		kills:       kills,
		bossDefeats: bossDefeats,
		gameOvers:   gameOvers,
	}, nil
}

// FrameProcessed 记录一帧
func (m *Metrics) FrameProcessed(stage int) {
	m.frames.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("stage", stage)))
}

// KillsAdded 记录击杀
func (m *Metrics) KillsAdded(n int) {
	m.kills.Add(context.Background(), int64(n))
}

// BossDefeated 记录 Boss 被击败
func (m *Metrics) BossDefeated(variant int) {
	m.bossDefeats.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("variant", variant)))
}

// GameOver 记录游戏结束
func (m *Metrics) GameOver() {
	m.gameOvers.Add(context.Background(), 1)
}
