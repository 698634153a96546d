package ecs

// Store 某一类实体的有序集合
//
// 删除有两种方式：
//   - RemoveAt: 立即拼接删除，只允许逆序遍历的调用方删除当前游标元素
//   - Destroy + RemoveMarked: 先标记后压缩，用于无法安全拼接的场合（定时回调、异常恢复）
//
// 单线程使用，不加锁。
type Store[T Entry] struct {
	em    *EntityManager
	items []T
	dirty bool // 存在已标记但未压缩的实体
}

// NewStore 创建实体仓库
//
// 参数:
//   - em: ID 分配器，多个仓库共享同一个
//   - capacity: 预分配容量
func NewStore[T Entry](em *EntityManager, capacity int) *Store[T] {
	return &Store[T]{
		em:    em,
		items: make([]T, 0, capacity),
	}
}

// Add 追加实体并分配ID
func (s *Store[T]) Add(v T) T {
	base := v.Base()
	if base.ID == InvalidEntityID {
		base.ID = s.em.NewID()
	}
	base.removed = false
	s.items = append(s.items, v)
	return v
}

// AddBounded 追加实体，若数量已达上限则先丢弃最旧的实体
//
// 返回被丢弃的实体数量
func (s *Store[T]) AddBounded(v T, limit int) int {
	dropped := 0
	if limit > 0 && len(s.items) >= limit {
		dropped = len(s.items) - limit + 1
		for i := 0; i < dropped; i++ {
			s.items[i].Base().removed = true
		}
		n := copy(s.items, s.items[dropped:])
		clearTail(s.items, n)
		s.items = s.items[:n]
	}
	s.Add(v)
	return dropped
}

// Len 返回实体数量（包含已标记但未压缩的实体）
func (s *Store[T]) Len() int {
	return len(s.items)
}

// At 返回索引 i 处的实体
func (s *Store[T]) At(i int) T {
	return s.items[i]
}

// Items 返回底层切片视图
// 调用方只读，不得在正向遍历中删除元素
func (s *Store[T]) Items() []T {
	return s.items
}

// RemoveAt 立即删除索引 i 处的实体（保持其余顺序）
func (s *Store[T]) RemoveAt(i int) T {
	v := s.items[i]
	v.Base().removed = true
	copy(s.items[i:], s.items[i+1:])
	clearTail(s.items, len(s.items)-1)
	s.items = s.items[:len(s.items)-1]
	return v
}

// Destroy 标记实体待删除（不立即删除）
func (s *Store[T]) Destroy(v T) {
	base := v.Base()
	if base.removed {
		return
	}
	base.removed = true
	s.dirty = true
}

// RemoveMarked 清理所有标记删除的实体
//
// 返回清理的数量
func (s *Store[T]) RemoveMarked() int {
	if !s.dirty {
		return 0
	}
	n := 0
	for _, v := range s.items {
		if !v.Base().removed {
			s.items[n] = v
			n++
		}
	}
	removed := len(s.items) - n
	clearTail(s.items, n)
	s.items = s.items[:n]
	s.dirty = false
	return removed
}

// ReverseEach 逆序遍历实体
//
// 回调中可以对当前索引调用 RemoveAt(i)，不会跳过任何元素。
// 回调返回 false 时停止遍历。已标记删除的实体被跳过。
func (s *Store[T]) ReverseEach(fn func(i int, v T) bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if i >= len(s.items) {
			continue
		}
		v := s.items[i]
		if v.Base().removed {
			continue
		}
		if !fn(i, v) {
			return
		}
	}
}

// Clear 清空仓库
func (s *Store[T]) Clear() {
	for _, v := range s.items {
		v.Base().removed = true
	}
	clearTail(s.items, 0)
	s.items = s.items[:0]
	s.dirty = false
}

// clearTail 把 [n:] 区间置零，避免已删除实体被底层数组引用而无法回收
func clearTail[T any](items []T, n int) {
	var zero T
	for i := n; i < len(items); i++ {
		items[i] = zero
	}
}
