package components

import "github.com/gonewx/skyraid/pkg/utils"

// Body 位置、尺寸和速度
// 速度单位为 像素/帧，模拟以固定帧步进推进
type Body struct {
	X, Y          float64 // 左上角坐标
	Width, Height float64
	VX, VY        float64
}

// Rect 返回碰撞矩形（精灵边界）
func (b *Body) Rect() utils.Rect {
	return utils.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// CenterX 返回中心X坐标
func (b *Body) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY 返回中心Y坐标
func (b *Body) CenterY() float64 {
	return b.Y + b.Height/2
}

// Advance 按速度前进一帧
func (b *Body) Advance() {
	b.X += b.VX
	b.Y += b.VY
}
