package ecs

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntityID 0 保留为无效ID
const InvalidEntityID EntityID = 0

// EntityManager 为所有实体仓库分配ID
//
// 同一局游戏中的所有仓库共享一个 EntityManager，
// 保证飞船、敌人、子弹、粒子之间的ID全局唯一（定时效果按ID索引）。
type EntityManager struct {
	nextID uint64
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1, // ID从1开始,0保留为无效ID
	}
}

// NewID 分配新的唯一ID
func (em *EntityManager) NewID() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	return id
}

// Entity 所有实体共享的基础字段
// 由具体实体结构体嵌入
type Entity struct {
	ID      EntityID
	removed bool // 已标记删除（等待 RemoveMarked 压缩）
}

// Base 返回实体基础字段，满足 Entry 约束
func (e *Entity) Base() *Entity {
	return e
}

// Removed 返回实体是否已被标记删除
func (e *Entity) Removed() bool {
	return e.removed
}

// Entry 可存入 Store 的实体类型约束（指针类型，嵌入了 Entity）
type Entry interface {
	comparable
	Base() *Entity
}
