package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/skyraid/pkg/systems"
)

// keyBinding 一艘飞船的按键映射
type keyBinding struct {
	Up, Down, Left, Right ebiten.Key
	Fire                  ebiten.Key
}

// defaultBindings 飞船 0..2 的默认按键
var defaultBindings = []keyBinding{
	{Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown, Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight, Fire: ebiten.KeySpace},
	{Up: ebiten.KeyW, Down: ebiten.KeyS, Left: ebiten.KeyA, Right: ebiten.KeyD, Fire: ebiten.KeyF},
	{Up: ebiten.KeyI, Down: ebiten.KeyK, Left: ebiten.KeyJ, Right: ebiten.KeyL, Fire: ebiten.KeyH},
}

// KeyboardInput 把键盘状态转换为飞船意图
type KeyboardInput struct {
	bindings []keyBinding
	pressed  func(ebiten.Key) bool
}

// NewKeyboardInput 创建键盘输入，读取 ebiten 的实时按键状态
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		bindings: defaultBindings,
		pressed:  ebiten.IsKeyPressed,
	}
}

// Intents 返回前 n 艘飞船的意图，超出按键映射数量的飞船没有输入
func (in *KeyboardInput) Intents(n int) []systems.ShipIntent {
	intents := make([]systems.ShipIntent, n)
	for i := 0; i < n && i < len(in.bindings); i++ {
		intents[i] = in.intent(in.bindings[i])
	}
	return intents
}

func (in *KeyboardInput) intent(b keyBinding) systems.ShipIntent {
	var it systems.ShipIntent
	if in.pressed(b.Left) {
		it.DX--
	}
	if in.pressed(b.Right) {
		it.DX++
	}
	if in.pressed(b.Up) {
		it.DY--
	}
	if in.pressed(b.Down) {
		it.DY++
	}
	it.Fire = in.pressed(b.Fire)
	return it
}
