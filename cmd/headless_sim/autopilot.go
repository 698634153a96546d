package main

import (
	"math"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/systems"
)

// dodgeRadius 敌方子弹进入该距离时优先躲避
const dodgeRadius = 60

// autopilot 简单的自动驾驶：躲避最近的敌方子弹，否则对准最近的目标并持续开火
type autopilot struct {
	gs *game.GameState
}

func newAutopilot(gs *game.GameState) *autopilot {
	return &autopilot{gs: gs}
}

// Intents 为每艘飞船生成本帧意图
func (p *autopilot) Intents() []systems.ShipIntent {
	intents := make([]systems.ShipIntent, len(p.gs.Ships))
	for i, ship := range p.gs.Ships {
		if ship.Active {
			intents[i] = p.steer(ship)
		}
	}
	return intents
}

func (p *autopilot) steer(ship *components.Ship) systems.ShipIntent {
	it := systems.ShipIntent{Fire: true}
	cx, cy := ship.CenterX(), ship.CenterY()

	if b, dist := p.nearestBullet(cx, cy); b != nil && dist < dodgeRadius {
		it.DX = -sign(b.CenterX() - cx)
		if it.DX == 0 {
			it.DX = 1
		}
		return it
	}

	if tx, ok := p.target(); ok {
		it.DX = sign(tx - cx)
	}
	return it
}

// target 优先 Boss，其次最低（最危险）的敌机
func (p *autopilot) target() (float64, bool) {
	if p.gs.BossActive() {
		return p.gs.Boss.CenterX(), true
	}
	var best *components.Enemy
	for _, e := range p.gs.Enemies.Items() {
		if e.Removed() {
			continue
		}
		if best == nil || e.Y > best.Y {
			best = e
		}
	}
	if best == nil {
		return 0, false
	}
	return best.CenterX(), true
}

func (p *autopilot) nearestBullet(x, y float64) (*components.Projectile, float64) {
	var nearest *components.Projectile
	minDist := math.Inf(1)
	for _, b := range p.gs.EnemyBullets.Items() {
		if b.Removed() {
			continue
		}
		if d := math.Hypot(b.CenterX()-x, b.CenterY()-y); d < minDist {
			nearest, minDist = b, d
		}
	}
	return nearest, minDist
}

func sign(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return 0
	}
}
