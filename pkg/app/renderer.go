package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/skyraid/pkg/components"
	"github.com/gonewx/skyraid/pkg/game"
	"github.com/gonewx/skyraid/pkg/utils"
)

// 调色板
var (
	colorBackground   = color.RGBA{R: 8, G: 10, B: 28, A: 255}
	colorShips        = []color.RGBA{{R: 80, G: 200, B: 255, A: 255}, {R: 120, G: 255, B: 120, A: 255}, {R: 255, G: 220, B: 90, A: 255}}
	colorShipDown     = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	colorShield       = color.RGBA{R: 120, G: 180, B: 255, A: 110}
	colorStunned      = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	colorBullet       = color.RGBA{R: 255, G: 255, B: 200, A: 255}
	colorSpecial      = color.RGBA{R: 255, G: 120, B: 255, A: 255}
	colorEnemy        = color.RGBA{R: 220, G: 70, B: 60, A: 255}
	colorEnemyBullet  = color.RGBA{R: 255, G: 150, B: 60, A: 255}
	colorBoss         = color.RGBA{R: 170, G: 40, B: 160, A: 255}
	colorBossFlash    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHealthBack   = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	colorHealth       = color.RGBA{R: 100, G: 220, B: 100, A: 255}
	colorRedPoint     = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	colorExplosion    = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	colorTrail        = color.RGBA{R: 200, G: 120, B: 255, A: 200}
	colorPowerUpKinds = map[components.PowerUpKind]color.RGBA{
		components.PowerUpThunder:   {R: 255, G: 255, B: 0, A: 255},
		components.PowerUpFirePower: {R: 255, G: 100, B: 0, A: 255},
		components.PowerUpSpecial:   {R: 200, G: 0, B: 255, A: 255},
		components.PowerUpLife:      {R: 0, G: 255, B: 120, A: 255},
	}
)

// Renderer 用色块绘制快照
type Renderer struct{}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw 绘制一帧快照
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(colorBackground)

	for i := range snap.Particles {
		p := &snap.Particles[i]
		fillBody(screen, &p.Body, particleColor(p))
	}
	for i := range snap.PowerUps {
		fillBody(screen, &snap.PowerUps[i].Body, colorPowerUpKinds[snap.PowerUps[i].Kind])
	}
	for i := range snap.Enemies {
		fillBody(screen, &snap.Enemies[i].Body, colorEnemy)
	}
	if snap.Boss != nil {
		r.drawBoss(screen, snap.Boss)
	}
	for i := range snap.PlayerBullets {
		b := &snap.PlayerBullets[i]
		c := colorBullet
		if b.Tag == components.ProjectileSpecial {
			c = colorSpecial
		}
		fillBody(screen, &b.Body, c)
	}
	for i := range snap.EnemyBullets {
		fillBody(screen, &snap.EnemyBullets[i].Body, colorEnemyBullet)
	}
	for i := range snap.Ships {
		r.drawShip(screen, &snap.Ships[i])
	}

	for i, line := range hudLines(snap.Counters) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
}

func (r *Renderer) drawShip(screen *ebiten.Image, s *components.Ship) {
	if !s.Active {
		fillBody(screen, &s.Body, colorShipDown)
		return
	}
	fillBody(screen, &s.Body, colorShips[s.Index%len(colorShips)])
	if s.Stunned {
		fillBody(screen, &s.Body, colorStunned)
	}
	if s.Shielded {
		vector.DrawFilledCircle(screen, float32(s.CenterX()), float32(s.CenterY()), float32(s.Width*0.8), colorShield, false)
	}
}

func (r *Renderer) drawBoss(screen *ebiten.Image, b *components.Boss) {
	c := colorBoss
	if b.HitFlash {
		c = colorBossFlash
	}
	fillBody(screen, &b.Body, c)

	if b.MaxHealth <= 0 {
		return
	}
	x, y, w := float32(b.X), float32(b.Y)-8, float32(b.Width)
	pct := float32(b.Health) / float32(b.MaxHealth)
	vector.DrawFilledRect(screen, x, y, w, 4, colorHealthBack, false)
	vector.DrawFilledRect(screen, x, y, w*pct, 4, colorHealth, false)
}

func particleColor(p *components.Particle) color.RGBA {
	switch p.Tag {
	case components.ParticleRedPoint:
		return colorRedPoint
	case components.ParticleTrail:
		return colorTrail
	default:
		c := colorExplosion
		if p.MaxLife > 0 {
			c.A = uint8(255 * utils.EaseOutCubic(float64(p.Life)/float64(p.MaxLife)))
		}
		return c
	}
}

func fillBody(screen *ebiten.Image, b *components.Body, c color.Color) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), c, false)
}

// hudLines 生成左上角的文字信息
func hudLines(c game.Counters) []string {
	lines := []string{
		fmt.Sprintf("Stage %d  Kills %d (%d)  Red %d", c.Stage, c.Kills, c.StageKills, c.RedPoints),
	}
	for _, s := range c.Ships {
		if !s.Active {
			lines = append(lines, fmt.Sprintf("P%d  DOWN", s.Index+1))
			continue
		}
		status := ""
		if s.Shielded {
			status += " SHIELD"
		}
		if s.Stunned {
			status += " STUN"
		}
		lines = append(lines, fmt.Sprintf("P%d  Lives %d  Power %d  Red %d%s", s.Index+1, s.Lives, s.PowerLevel, s.RedPoints, status))
	}
	if c.BossActive {
		lines = append(lines, fmt.Sprintf("BOSS %d  HP %d/%d", c.BossVariant, c.BossHealth, c.BossMaxHealth))
	}
	switch {
	case c.Victory:
		lines = append(lines, "VICTORY! Press R to play again")
	case c.GameOver:
		lines = append(lines, "GAME OVER - Press R to restart")
	}
	return lines
}
