package config

import (
	"math"

	"github.com/gonewx/skyraid/pkg/components"
)

// PatternLayout 弹幕排布方式
type PatternLayout int

const (
	// LayoutParallel 同一方向，水平等距排开
	LayoutParallel PatternLayout = iota
	// LayoutSpread 以基准角度为中心的扇形
	LayoutSpread
	// LayoutRing 360° 均匀分布
	LayoutRing
)

// FirePattern 敌机弹幕描述
// 屏幕坐标系：0° 向右，90° 向下
type FirePattern struct {
	Name         string
	Layout       PatternLayout
	Shots        int
	SpreadDeg    float64 // 扇形相邻子弹夹角
	Spacing      float64 // 平行子弹的水平间距
	BaseAngleDeg float64
	RotateDeg    float64 // 每次开火的整体旋转（螺旋）
	Speed        float64 // 弹速（像素/帧）
	Tag          components.ProjectileTag
	Width        float64 // 0 表示使用默认子弹尺寸
	Height       float64
}

// ShotSpec 单颗子弹的发射参数
type ShotSpec struct {
	OffsetX float64 // 相对敌机中心的水平偏移
	VX, VY  float64
}

// EnemyPatterns 敌机类型 0..14 对应的弹幕表
var EnemyPatterns = [StandardPatternCount]FirePattern{
	{Name: "single", Layout: LayoutParallel, Shots: 1, BaseAngleDeg: 90, Speed: 3},
	{Name: "double", Layout: LayoutParallel, Shots: 2, Spacing: 16, BaseAngleDeg: 90, Speed: 3},
	{Name: "triple", Layout: LayoutSpread, Shots: 3, SpreadDeg: 15, BaseAngleDeg: 90, Speed: 3},
	{Name: "fan", Layout: LayoutSpread, Shots: 5, SpreadDeg: 15, BaseAngleDeg: 90, Speed: 2.5},
	{Name: "spiral", Layout: LayoutRing, Shots: 4, BaseAngleDeg: 90, RotateDeg: 15, Speed: 2.5},
	{Name: "cross", Layout: LayoutRing, Shots: 4, BaseAngleDeg: 0, Speed: 2.5},
	{Name: "ring", Layout: LayoutRing, Shots: 8, BaseAngleDeg: 90, Speed: 2},
	{Name: "barrage", Layout: LayoutParallel, Shots: 5, Spacing: 8, BaseAngleDeg: 90, Speed: 4},
	{Name: "diagonal", Layout: LayoutSpread, Shots: 2, SpreadDeg: 90, BaseAngleDeg: 90, Speed: 3},
	{Name: "star", Layout: LayoutRing, Shots: 5, BaseAngleDeg: 90, Speed: 2.5},
	{Name: "laser-beam", Layout: LayoutParallel, Shots: 1, BaseAngleDeg: 90, Speed: 6, Tag: components.ProjectileLaser, Width: 4, Height: 24},
	{Name: "wide-fan", Layout: LayoutSpread, Shots: 7, SpreadDeg: 10, BaseAngleDeg: 90, Speed: 2.5},
	{Name: "double-ring", Layout: LayoutRing, Shots: 12, BaseAngleDeg: 90, Speed: 1.8},
	{Name: "twin-laser", Layout: LayoutParallel, Shots: 2, Spacing: 24, BaseAngleDeg: 90, Speed: 6, Tag: components.ProjectileLaser, Width: 4, Height: 24},
	{Name: "heavy", Layout: LayoutSpread, Shots: 3, SpreadDeg: 30, BaseAngleDeg: 90, Speed: 3.5, Tag: components.ProjectileSpecial, Width: 10, Height: 10},
}

// StandardPatternCount 弹幕表条目数
const StandardPatternCount = 15

// extendedPatternIndex 第3关扩展类型 15..17 复用的弹幕表条目
var extendedPatternIndex = map[int]int{
	15: 6,  // ring
	16: 4,  // spiral
	17: 12, // double-ring
}

// PatternForType 根据敌机类型查找弹幕
// 未知类型回退到 single
func PatternForType(enemyType int) FirePattern {
	if enemyType >= 0 && enemyType < StandardPatternCount {
		return EnemyPatterns[enemyType]
	}
	if idx, ok := extendedPatternIndex[enemyType]; ok {
		return EnemyPatterns[idx]
	}
	return EnemyPatterns[0]
}

// ShotSpecs 计算一次开火的所有子弹
//
// 参数:
//   - volley: 该敌机已开火次数（螺旋弹幕的旋转相位）
//   - speedScale: 弹速倍数（难度）
func (p FirePattern) ShotSpecs(volley int, speedScale float64) []ShotSpec {
	if p.Shots <= 0 {
		return nil
	}
	shots := make([]ShotSpec, 0, p.Shots)
	base := p.BaseAngleDeg + p.RotateDeg*float64(volley)
	mid := float64(p.Shots-1) / 2
	speed := p.Speed * speedScale

	for i := 0; i < p.Shots; i++ {
		angle := base
		offset := 0.0
		switch p.Layout {
		case LayoutParallel:
			offset = (float64(i) - mid) * p.Spacing
		case LayoutSpread:
			angle = base + (float64(i)-mid)*p.SpreadDeg
		case LayoutRing:
			angle = base + float64(i)*360/float64(p.Shots)
		}
		rad := angle * math.Pi / 180
		shots = append(shots, ShotSpec{
			OffsetX: offset,
			VX:      roundTiny(math.Cos(rad) * speed),
			VY:      roundTiny(math.Sin(rad) * speed),
		})
	}
	return shots
}

// roundTiny 消除三角函数的浮点残差（如 cos(90°) ≈ 6e-17）
func roundTiny(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}
