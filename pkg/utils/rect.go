package utils

// Rect 轴对齐矩形（左上角 + 宽高），所有碰撞检测都基于它
type Rect struct {
	X, Y float64 // 左上角坐标
	W, H float64 // 宽度、高度
}

// Intersects 检查两个矩形是否重叠（AABB，半开区间）
//
// 只有在两个轴上都严格重叠时才返回 true，边缘相接不算碰撞。
// 纯函数，无副作用。
//
// 参数:
//   - a, b: 待检测的两个矩形
//
// 返回:
//   - bool: 重叠返回 true
func Intersects(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scale 以中心为基准缩放矩形
// factor=2 时宽高翻倍，中心不变
func (r Rect) Scale(factor float64) Rect {
	cx, cy := r.Center()
	w := r.W * factor
	h := r.H * factor
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
