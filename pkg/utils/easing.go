package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，输出缓动后的进度 ∈ [0, 1]
// Boss 冲刺和爆炸碎片淡出使用

// EaseOutCubic 三次方缓出，开始快结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	t = Clamp(t, 0, 1)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
