package config

import "fmt"

// Difficulty 难度倍数
// 会话开始时从外部键值存储读取一次，整局不可变
type Difficulty struct {
	EnemySpeed       float64 `yaml:"enemySpeed"`       // 敌机速度倍数
	EnemyBulletSpeed float64 `yaml:"enemyBulletSpeed"` // 敌方子弹速度倍数
	PowerUpFrequency float64 `yaml:"powerUpFrequency"` // 道具生成频率倍数
	LifeFrequency    float64 `yaml:"lifeFrequency"`    // 生命道具生成频率倍数
}

// DefaultDifficulty 返回标准难度（全部为 1.0）
func DefaultDifficulty() Difficulty {
	return Difficulty{
		EnemySpeed:       1,
		EnemyBulletSpeed: 1,
		PowerUpFrequency: 1,
		LifeFrequency:    1,
	}
}

// Validate 所有倍数必须为正
func (d Difficulty) Validate() error {
	if d.EnemySpeed <= 0 || d.EnemyBulletSpeed <= 0 || d.PowerUpFrequency <= 0 || d.LifeFrequency <= 0 {
		return fmt.Errorf("difficulty multipliers must be positive: %+v", d)
	}
	return nil
}
