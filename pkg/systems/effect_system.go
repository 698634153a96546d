package systems

import (
	"container/heap"

	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/ecs"
)

// EffectOwner 可挂载定时效果的实体
type EffectOwner interface {
	EntityID() ecs.EntityID
	IsActive() bool
}

type effectSlot struct {
	id  ecs.EntityID
	key components.EffectKey
}

// scheduledEffect 一个待触发的定时效果
type scheduledEffect struct {
	slot      effectSlot
	owner     EffectOwner
	expireMs  float64
	seq       uint64 // 同一时刻到期时按调度顺序触发
	onExpire  func()
	cancelled bool
}

// effectQueue 按到期时间排序的最小堆
type effectQueue []*scheduledEffect

func (q effectQueue) Len() int { return len(q) }
func (q effectQueue) Less(i, j int) bool {
	if q[i].expireMs != q[j].expireMs {
		return q[i].expireMs < q[j].expireMs
	}
	return q[i].seq < q[j].seq
}
func (q effectQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *effectQueue) Push(x interface{}) { *q = append(*q, x.(*scheduledEffect)) }
func (q *effectQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// EffectSystem 定时效果管理器
//
// 效果挂在模拟时钟上，每帧由 Update 检查到期。
// 同一实体同一名称最多只有一个待触发的效果：重新施加会先取消旧的，
// 所以重复施加只会刷新到期时间，不会叠加。
type EffectSystem struct {
	pending map[effectSlot]*scheduledEffect
	queue   effectQueue
	nowMs   float64
	seq     uint64
	log     zerolog.Logger
}

// NewEffectSystem 创建定时效果管理器
func NewEffectSystem(log zerolog.Logger) *EffectSystem {
	return &EffectSystem{
		pending: make(map[effectSlot]*scheduledEffect),
		log:     log.With().Str("system", "Effect").Logger(),
	}
}

// Apply 施加或刷新一个定时效果
//
// 参数:
//   - owner: 效果所属实体
//   - key: 效果名称
//   - durationMs: 从当前模拟时间起的持续时间
//   - onExpire: 到期回调，只执行一次；实体到期时已不在场则不执行
func (es *EffectSystem) Apply(owner EffectOwner, key components.EffectKey, durationMs float64, onExpire func()) {
	slot := effectSlot{id: owner.EntityID(), key: key}
	if old, ok := es.pending[slot]; ok {
		old.cancelled = true
	}
	if durationMs < 0 {
		durationMs = 0
	}

	es.seq++
	e := &scheduledEffect{
		slot:     slot,
		owner:    owner,
		expireMs: es.nowMs + durationMs,
		seq:      es.seq,
		onExpire: onExpire,
	}
	es.pending[slot] = e
	heap.Push(&es.queue, e)
}

// Update 推进模拟时钟并触发所有到期的效果
func (es *EffectSystem) Update(nowMs float64) {
	es.nowMs = nowMs
	for es.queue.Len() > 0 && es.queue[0].expireMs <= nowMs {
		e := heap.Pop(&es.queue).(*scheduledEffect)
		if e.cancelled {
			continue
		}
		delete(es.pending, e.slot)

		if !e.owner.IsActive() {
			es.log.Debug().
				Uint64("entity", uint64(e.slot.id)).
				Str("effect", string(e.slot.key)).
				Msg("owner gone, expiry ignored")
			continue
		}
		if e.onExpire != nil {
			guardEntity(es.log, e.slot.id, e.onExpire)
		}
	}
}

// Now 返回效果系统看到的模拟时间
func (es *EffectSystem) Now() float64 {
	return es.nowMs
}

// Cancel 取消一个效果（不执行到期回调）
func (es *EffectSystem) Cancel(id ecs.EntityID, key components.EffectKey) bool {
	slot := effectSlot{id: id, key: key}
	e, ok := es.pending[slot]
	if !ok {
		return false
	}
	e.cancelled = true
	delete(es.pending, slot)
	return true
}

// CancelAll 取消实体上的全部效果
//
// 返回取消的数量
func (es *EffectSystem) CancelAll(id ecs.EntityID) int {
	n := 0
	for slot, e := range es.pending {
		if slot.id == id {
			e.cancelled = true
			delete(es.pending, slot)
			n++
		}
	}
	return n
}

// Active 效果是否待触发
func (es *EffectSystem) Active(id ecs.EntityID, key components.EffectKey) bool {
	_, ok := es.pending[effectSlot{id: id, key: key}]
	return ok
}

// Remaining 返回效果剩余毫秒数，不存在时返回 0
func (es *EffectSystem) Remaining(id ecs.EntityID, key components.EffectKey) float64 {
	e, ok := es.pending[effectSlot{id: id, key: key}]
	if !ok {
		return 0
	}
	return e.expireMs - es.nowMs
}

// Len 返回待触发的效果数
func (es *EffectSystem) Len() int {
	return len(es.pending)
}

// Reset 丢弃所有效果并把时钟归零
// 新一局开始时必须调用，否则上一局的回调会作用到旧实体上
func (es *EffectSystem) Reset() {
	es.pending = make(map[effectSlot]*scheduledEffect)
	clear(es.queue)
	es.queue = es.queue[:0]
	es.nowMs = 0
}

// Stun 眩晕飞船
func (es *EffectSystem) Stun(ship *components.Ship, durationMs float64) {
	ship.Stunned = true
	es.Apply(ship, components.EffectStun, durationMs, func() {
		ship.Stunned = false
	})
}

// Shield 为飞船开启护盾
func (es *EffectSystem) Shield(ship *components.Ship, durationMs float64) {
	ship.Shielded = true
	es.Apply(ship, components.EffectShield, durationMs, func() {
		ship.Shielded = false
	})
}

// ArmPowerDecay 启动火力衰减计时
// 到期时火力等级 -1，等级仍大于 0 则重新计时
func (es *EffectSystem) ArmPowerDecay(ship *components.Ship, durationMs float64) {
	es.Apply(ship, components.EffectPower, durationMs, func() {
		if ship.PowerLevel > 0 {
			ship.PowerLevel--
		}
		if ship.PowerLevel > 0 {
			es.ArmPowerDecay(ship, durationMs)
		}
	})
}

// FlashBoss Boss 受击闪白
func (es *EffectSystem) FlashBoss(boss *components.Boss, durationMs float64) {
	boss.HitFlash = true
	es.Apply(boss, components.EffectHitFlash, durationMs, func() {
		boss.HitFlash = false
	})
}
