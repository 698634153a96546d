package components

// EffectKey 定时效果的名称
// 同一实体同一名称最多只有一个待触发的定时器
type EffectKey string

const (
	EffectStun     EffectKey = "stun"
	EffectShield   EffectKey = "shield"
	EffectPower    EffectKey = "power"
	EffectHitFlash EffectKey = "hitFlash"
)
