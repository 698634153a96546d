package systems

import (
	"github.com/gonewx/skyraid/pkg/ecs"
	"github.com/gonewx/skyraid/pkg/game"
)

func ecsID(id uint64) ecs.EntityID {
	return ecs.EntityID(id)
}

// countPending 统计尚未分发的指定类型事件
func countPending(gs *game.GameState, want game.EventType) int {
	n := 0
	for _, e := range gs.Events.Pending() {
		if e.Type == want {
			n++
		}
	}
	return n
}
