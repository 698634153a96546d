package game

// EventType 模拟核心对外发出的离散事件
// 音频、UI 等协作方订阅这些事件，核心不等待它们处理完成
type EventType int

const (
	EventEnemyHit EventType = iota
	EventShipHit
	EventShipDestroyed
	EventPickupCollected
	EventShieldActivated
	EventPowerUpCollected
	EventBossSpawned
	EventBossHit
	EventBossDefeated
	EventStageAdvanced
	EventVictory
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventEnemyHit:
		return "enemy-hit"
	case EventShipHit:
		return "ship-hit"
	case EventShipDestroyed:
		return "ship-destroyed"
	case EventPickupCollected:
		return "pickup-collected"
	case EventShieldActivated:
		return "shield-activated"
	case EventPowerUpCollected:
		return "powerup-collected"
	case EventBossSpawned:
		return "boss-spawned"
	case EventBossHit:
		return "boss-hit"
	case EventBossDefeated:
		return "boss-defeated"
	case EventStageAdvanced:
		return "stage-advanced"
	case EventVictory:
		return "victory"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event 单个事件
type Event struct {
	Type  EventType
	Ship  int // 相关飞船编号，无关时为 -1
	Value int // 附加数值（Boss 编号、关卡号、道具类型等）
	X, Y  float64
	Frame uint64
}

// EventBus 帧内事件队列
//
// Emit 只入队；Drain 在帧末把本帧事件依次交给订阅者并清空队列。
type EventBus struct {
	pending     []Event
	subscribers []func(Event)
}

// NewEventBus 创建事件队列
func NewEventBus() *EventBus {
	return &EventBus{
		pending: make([]Event, 0, 64),
	}
}

// Subscribe 注册订阅者
func (b *EventBus) Subscribe(fn func(Event)) {
	b.subscribers = append(b.subscribers, fn)
}

// Emit 入队一个事件
func (b *EventBus) Emit(e Event) {
	b.pending = append(b.pending, e)
}

// Pending 返回尚未分发的事件（只读）
func (b *EventBus) Pending() []Event {
	return b.pending
}

// Drain 分发并清空本帧事件
//
// 返回：
//   - []Event: 本帧分发的事件副本
func (b *EventBus) Drain() []Event {
	if len(b.pending) == 0 {
		return nil
	}
	events := make([]Event, len(b.pending))
	copy(events, b.pending)
	b.pending = b.pending[:0]

	for _, e := range events {
		for _, fn := range b.subscribers {
			fn(e)
		}
	}
	return events
}

// Reset 丢弃未分发的事件
func (b *EventBus) Reset() {
	b.pending = b.pending[:0]
}
