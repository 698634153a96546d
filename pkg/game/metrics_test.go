package game

import (
	"testing"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/gonewx/skyraid/pkg/config"
)

func TestMetricsWithNoopProvider(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	m.FrameProcessed(1)
	m.KillsAdded(3)
	m.BossDefeated(2)
	m.GameOver()

	gs := NewGameState(config.DefaultGameConfig(), 1, WithMetrics(m))
	gs.AddKill()
	if gs.Kills != 1 {
		t.Errorf("Kills = %d, want 1", gs.Kills)
	}
}

func TestMetricsGlobalProvider(t *testing.T) {
	if _, err := NewMetrics(nil); err != nil {
		t.Fatalf("NewMetrics(nil) failed: %v", err)
	}
}
