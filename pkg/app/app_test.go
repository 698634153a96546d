package app

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Config{
		Game:    config.DefaultGameConfig(),
		Runtime: &config.RuntimeConfig{Ships: 2, Seed: 42},
		Log:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewAppRequiresConfig(t *testing.T) {
	if _, err := NewApp(Config{Log: zerolog.Nop()}); err == nil {
		t.Error("NewApp without configs should fail")
	}
}

func TestLayoutMatchesPlayfield(t *testing.T) {
	a := newTestApp(t)
	w, h := a.Layout(1920, 1080)
	if w != 480 || h != 720 {
		t.Errorf("Layout = %dx%d, want 480x720", w, h)
	}
}

// TestSessionRecordedOnce 本局结束只写入一次成绩
func TestSessionRecordedOnce(t *testing.T) {
	a := newTestApp(t)
	gs := a.sim.State()

	a.tick(0, nil)
	gs.Kills = 17
	gs.GameOver = true

	for i := 1; i <= 3; i++ {
		res := a.tick(float64(i)*20, nil)
		if !res.GameOver {
			t.Fatal("Expected game over result")
		}
	}

	count, err := a.scores.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded session, got %d", count)
	}
	best, err := a.BestScores(1)
	if err != nil || len(best) != 1 || best[0].Kills != 17 || best[0].Ships != 2 {
		t.Errorf("Unexpected best scores %+v (err %v)", best, err)
	}
	if stats := a.settings.Stats(); stats.GamesPlayed != 1 || stats.BestKills != 17 {
		t.Errorf("Unexpected lifetime stats %+v", stats)
	}
}

func TestRestartResetsSession(t *testing.T) {
	a := newTestApp(t)
	clock := time.Unix(1000, 0)
	a.now = func() time.Time { return clock }
	a.sessionStart = clock

	gs := a.sim.State()
	gs.GameOver = true
	a.tick(0, nil)

	clock = clock.Add(5 * time.Second)
	a.restart()
	if gs.GameOver || a.recorded {
		t.Error("Restart should clear game over and the recorded latch")
	}
	if a.sessionMs() != 0 {
		t.Errorf("Session clock should restart at 0, got %v", a.sessionMs())
	}
}

// TestPauseExcludedFromSessionClock 暂停期间会话时钟不前进
func TestPauseExcludedFromSessionClock(t *testing.T) {
	a := newTestApp(t)
	clock := time.Unix(1000, 0)
	a.now = func() time.Time { return clock }
	a.sessionStart = clock

	clock = clock.Add(time.Second)
	a.togglePause()
	clock = clock.Add(10 * time.Second)
	a.togglePause()
	clock = clock.Add(500 * time.Millisecond)

	if got := a.sessionMs(); got != 1500 {
		t.Errorf("sessionMs = %v, want 1500", got)
	}
}
