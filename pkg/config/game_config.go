package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig 游戏玩法调参配置
// 对应 data/game.yaml，启动时加载一次，整局游戏中只读
type GameConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"` // 场地尺寸
	FrameRate int             `yaml:"frameRate"` // 逻辑帧率（帧/秒）
	Ship      ShipConfig      `yaml:"ship"`
	Wave      WaveConfig      `yaml:"wave"`
	Stage3    Stage3Config    `yaml:"stage3"`
	Stages    StageConfig     `yaml:"stages"`
	Bosses    []BossConfig    `yaml:"bosses"` // 按 variant 1..3 顺序
	Effects   EffectConfig    `yaml:"effects"`
	Particles ParticleConfig  `yaml:"particles"`
	PowerUps  PowerUpConfig   `yaml:"powerUps"`
	EnemyFire EnemyFireConfig `yaml:"enemyFire"`
}

// PlayfieldConfig 场地尺寸（像素）
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig 飞船参数
type ShipConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Lives             int     `yaml:"lives"`             // 初始生命
	MaxLives          int     `yaml:"maxLives"`          // 生命道具上限
	Speed             float64 `yaml:"speed"`             // 像素/帧
	FireCooldownMs    float64 `yaml:"fireCooldownMs"`    // 最小开火间隔
	BulletSpeed       float64 `yaml:"bulletSpeed"`       // 子弹向上速度（像素/帧）
	BulletWidth       float64 `yaml:"bulletWidth"`
	BulletHeight      float64 `yaml:"bulletHeight"`
	RedPointThreshold int     `yaml:"redPointThreshold"` // 红点达到该数量触发护盾
}

// WaveConfig 第1/2关波次参数
type WaveConfig struct {
	TypeCount        int     `yaml:"typeCount"`        // 敌人类型循环范围 0..TypeCount-1
	SpawnTarget      int     `yaml:"spawnTarget"`      // 每波生成数量
	PopulationCap    int     `yaml:"populationCap"`    // 场上敌人上限
	SpawnIntervalMs  float64 `yaml:"spawnIntervalMs"`  // 两次生成之间的间隔
	InterWaveDelayMs float64 `yaml:"interWaveDelayMs"` // 波次之间的停顿
	EnemyWidth       float64 `yaml:"enemyWidth"`
	EnemyHeight      float64 `yaml:"enemyHeight"`
	EnemySpeedX      float64 `yaml:"enemySpeedX"` // 最大水平速度
	EnemySpeedY      float64 `yaml:"enemySpeedY"` // 下落速度
	Stage2SpeedScale float64 `yaml:"stage2SpeedScale"`
}

// Stage3Config 第3关扩展敌人生成参数
type Stage3Config struct {
	TypeMin         int     `yaml:"typeMin"`
	TypeMax         int     `yaml:"typeMax"`
	BatchSize       int     `yaml:"batchSize"`    // 每批生成数量
	KillsPerType    int     `yaml:"killsPerType"` // 击杀多少只后切换类型
	PopulationCap   int     `yaml:"populationCap"`
	DriftMultiplier float64 `yaml:"driftMultiplier"` // 水平漂移加速倍数
	SpawnIntervalMs float64 `yaml:"spawnIntervalMs"`
}

// StageConfig 关卡推进阈值
type StageConfig struct {
	KillThresholds []int `yaml:"killThresholds"` // 第1..3关 Boss 触发击杀数（整数倍）
}

// BossConfig 单个 Boss 的参数
type BossConfig struct {
	Variant               int     `yaml:"variant"`
	Health                int     `yaml:"health"`
	Width                 float64 `yaml:"width"`
	Height                float64 `yaml:"height"`
	Speed                 float64 `yaml:"speed"`
	HitboxScale           float64 `yaml:"hitboxScale"`           // 碰撞盒相对精灵的缩放
	BulletSpeed           float64 `yaml:"bulletSpeed"`           // 基础弹速
	BulletSpeedMultiplier float64 `yaml:"bulletSpeedMultiplier"` // 弹速倍数
	ShootIntervalTicks    int     `yaml:"shootIntervalTicks"`
	PatternDurationMs     float64 `yaml:"patternDurationMs"` // 移动模式重新随机的间隔
	ExplosionParticles    int     `yaml:"explosionParticles"`
	KillBonus             int     `yaml:"killBonus"`
	Stationary            bool    `yaml:"stationary"`
}

// UnmarshalYAML 以同 variant 的默认 Boss 为底解码
// yaml 会整体替换切片，不这样处理的话只写了部分字段的条目其余字段都会变成零值
func (b *BossConfig) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Variant int `yaml:"variant"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}

	merged, _ := defaultBoss(head.Variant)
	type plain BossConfig
	if err := value.Decode((*plain)(&merged)); err != nil {
		return err
	}
	*b = merged
	return nil
}

// defaultBoss 返回内置默认配置中的 Boss 参数
func defaultBoss(variant int) (BossConfig, bool) {
	for _, b := range defaultBosses() {
		if b.Variant == variant {
			return b, true
		}
	}
	return BossConfig{}, false
}

// EffectConfig 定时效果持续时间（毫秒）
type EffectConfig struct {
	StunContactMs  float64 `yaml:"stunContactMs"`
	StunBulletMs   float64 `yaml:"stunBulletMs"`
	StunDefaultMs  float64 `yaml:"stunDefaultMs"`
	ShieldMs       float64 `yaml:"shieldMs"`
	PowerDecayMs   float64 `yaml:"powerDecayMs"`
	BossHitFlashMs float64 `yaml:"bossHitFlashMs"`
}

// ParticleConfig 粒子参数
type ParticleConfig struct {
	Cap              int     `yaml:"cap"` // 粒子总数硬上限，超出丢弃最旧
	RedPointsPerKill int     `yaml:"redPointsPerKill"`
	RedPointLife     int     `yaml:"redPointLife"` // 帧
	RedPointSize     float64 `yaml:"redPointSize"`
	RedPointFall     float64 `yaml:"redPointFall"`
	ExplosionLife    int     `yaml:"explosionLife"`
	ExplosionSpeed   float64 `yaml:"explosionSpeed"`
	ExplosionCount   int     `yaml:"explosionCount"` // 普通敌机爆炸碎片数
	TrailLife        int     `yaml:"trailLife"`
}

// PowerUpConfig 道具参数
type PowerUpConfig struct {
	IntervalMs         float64 `yaml:"intervalMs"`     // 道具生成间隔（除以难度倍数）
	LifeIntervalMs     float64 `yaml:"lifeIntervalMs"` // 生命道具生成间隔
	Size               float64 `yaml:"size"`
	FallSpeed          float64 `yaml:"fallSpeed"`
	DriftAmplitude     float64 `yaml:"driftAmplitude"`
	DriftFrequency     float64 `yaml:"driftFrequency"` // 弧度/帧
	SpecialBurst       int     `yaml:"specialBurst"`   // 特殊弹幕子弹数
	SpecialBulletSpeed float64 `yaml:"specialBulletSpeed"`
}

// EnemyFireConfig 敌机开火参数
type EnemyFireConfig struct {
	TickMs            float64 `yaml:"tickMs"`      // 全局开火判定间隔
	Probability       float64 `yaml:"probability"` // 每架敌机每次判定的开火概率
	MaxBulletsPerTick int     `yaml:"maxBulletsPerTick"`
	BulletWidth       float64 `yaml:"bulletWidth"`
	BulletHeight      float64 `yaml:"bulletHeight"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Playfield: PlayfieldConfig{Width: 480, Height: 720},
		FrameRate: 60,
		Ship: ShipConfig{
			Width:             32,
			Height:            32,
			Lives:             3,
			MaxLives:          5,
			Speed:             5,
			FireCooldownMs:    100,
			BulletSpeed:       10,
			BulletWidth:       4,
			BulletHeight:      12,
			RedPointThreshold: 100,
		},
		Wave: WaveConfig{
			TypeCount:        15,
			SpawnTarget:      5,
			PopulationCap:    10,
			SpawnIntervalMs:  500,
			InterWaveDelayMs: 2000,
			EnemyWidth:       32,
			EnemyHeight:      32,
			EnemySpeedX:      1.5,
			EnemySpeedY:      1.2,
			Stage2SpeedScale: 1.2,
		},
		Stage3: Stage3Config{
			TypeMin:         10,
			TypeMax:         17,
			BatchSize:       5,
			KillsPerType:    5,
			PopulationCap:   30,
			DriftMultiplier: 2,
			SpawnIntervalMs: 300,
		},
		Stages: StageConfig{KillThresholds: []int{25, 40, 60}},
		Bosses: defaultBosses(),
		Effects: EffectConfig{
			StunContactMs:  1000,
			StunBulletMs:   1500,
			StunDefaultMs:  1000,
			ShieldMs:       10000,
			PowerDecayMs:   6000,
			BossHitFlashMs: 100,
		},
		Particles: ParticleConfig{
			Cap:              800,
			RedPointsPerKill: 3,
			RedPointLife:     600,
			RedPointSize:     6,
			RedPointFall:     1,
			ExplosionLife:    40,
			ExplosionSpeed:   3,
			ExplosionCount:   12,
			TrailLife:        12,
		},
		PowerUps: PowerUpConfig{
			IntervalMs:         15000,
			LifeIntervalMs:     45000,
			Size:               24,
			FallSpeed:          1.5,
			DriftAmplitude:     30,
			DriftFrequency:     0.05,
			SpecialBurst:       24,
			SpecialBulletSpeed: 8,
		},
		EnemyFire: EnemyFireConfig{
			TickMs:            1000,
			Probability:       0.2,
			MaxBulletsPerTick: 10,
			BulletWidth:       6,
			BulletHeight:      6,
		},
	}
}

// LoadGameConfig 从YAML文件加载游戏配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*GameConfig - 解析后的配置（缺省字段使用默认值）
//	error - 文件读取、解析或校验失败
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("game config %s: %w", filepath, err)
	}
	return cfg, nil
}

// defaultBosses 三个 Boss 的默认参数，variant 2 碰撞盒为精灵的两倍
func defaultBosses() []BossConfig {
	return []BossConfig{
		{Variant: 1, Health: 500, Width: 120, Height: 90, Speed: 2, HitboxScale: 1, BulletSpeed: 3, BulletSpeedMultiplier: 1, ShootIntervalTicks: 30, PatternDurationMs: 3000, ExplosionParticles: 100, KillBonus: 5},
		{Variant: 2, Health: 1500, Width: 100, Height: 80, Speed: 2.5, HitboxScale: 2, BulletSpeed: 3, BulletSpeedMultiplier: 1.5, ShootIntervalTicks: 30, PatternDurationMs: 3000, ExplosionParticles: 150, KillBonus: 10},
		{Variant: 3, Health: 2000, Width: 160, Height: 120, Speed: 0, HitboxScale: 1, BulletSpeed: 3, BulletSpeedMultiplier: 1, ShootIntervalTicks: 30, PatternDurationMs: 3000, ExplosionParticles: 300, KillBonus: 20, Stationary: true},
	}
}

// ParseGameConfig 解析YAML数据
// 未出现在YAML中的字段保持默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// FrameIntervalMs 每帧的目标间隔（毫秒）
func (c *GameConfig) FrameIntervalMs() float64 {
	return 1000.0 / float64(c.FrameRate)
}

// Boss 返回指定 variant 的配置
func (c *GameConfig) Boss(variant int) (BossConfig, bool) {
	for _, b := range c.Bosses {
		if b.Variant == variant {
			return b, true
		}
	}
	return BossConfig{}, false
}

// KillThreshold 返回第 stage 关的 Boss 触发阈值（stage 从1开始）
func (c *GameConfig) KillThreshold(stage int) int {
	if stage < 1 || stage > len(c.Stages.KillThresholds) {
		return 0
	}
	return c.Stages.KillThresholds[stage-1]
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Playfield.Width <= 0 || cfg.Playfield.Height <= 0 {
		return fmt.Errorf("playfield size must be positive, got %vx%v", cfg.Playfield.Width, cfg.Playfield.Height)
	}
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("frameRate must be positive, got %d", cfg.FrameRate)
	}

	if cfg.Ship.Lives < 1 {
		return fmt.Errorf("ship.lives must be at least 1, got %d", cfg.Ship.Lives)
	}
	if cfg.Ship.MaxLives < cfg.Ship.Lives {
		return fmt.Errorf("ship.maxLives (%d) must be >= ship.lives (%d)", cfg.Ship.MaxLives, cfg.Ship.Lives)
	}
	if cfg.Ship.FireCooldownMs < 0 {
		return fmt.Errorf("ship.fireCooldownMs cannot be negative")
	}
	if cfg.Ship.RedPointThreshold < 1 {
		return fmt.Errorf("ship.redPointThreshold must be at least 1, got %d", cfg.Ship.RedPointThreshold)
	}

	if cfg.Wave.TypeCount < 1 || cfg.Wave.TypeCount > len(EnemyPatterns) {
		return fmt.Errorf("wave.typeCount must be between 1 and %d, got %d", len(EnemyPatterns), cfg.Wave.TypeCount)
	}
	if cfg.Wave.SpawnTarget < 1 || cfg.Wave.PopulationCap < 1 {
		return fmt.Errorf("wave.spawnTarget and wave.populationCap must be at least 1")
	}

	if cfg.Stage3.TypeMin > cfg.Stage3.TypeMax {
		return fmt.Errorf("stage3.typeMin (%d) > stage3.typeMax (%d)", cfg.Stage3.TypeMin, cfg.Stage3.TypeMax)
	}
	if cfg.Stage3.BatchSize < 1 || cfg.Stage3.KillsPerType < 1 || cfg.Stage3.PopulationCap < 1 {
		return fmt.Errorf("stage3.batchSize, killsPerType and populationCap must be at least 1")
	}

	if len(cfg.Stages.KillThresholds) != 3 {
		return fmt.Errorf("stages.killThresholds must have 3 entries, got %d", len(cfg.Stages.KillThresholds))
	}
	for i, th := range cfg.Stages.KillThresholds {
		if th < 1 {
			return fmt.Errorf("stages.killThresholds[%d] must be at least 1, got %d", i, th)
		}
	}

	if len(cfg.Bosses) != 3 {
		return fmt.Errorf("bosses must have 3 entries, got %d", len(cfg.Bosses))
	}
	for i, b := range cfg.Bosses {
		if b.Variant != i+1 {
			return fmt.Errorf("bosses[%d]: variant must be %d, got %d", i, i+1, b.Variant)
		}
		if b.Health < 1 {
			return fmt.Errorf("bosses[%d]: health must be at least 1, got %d", i, b.Health)
		}
		if b.HitboxScale <= 0 {
			return fmt.Errorf("bosses[%d]: hitboxScale must be positive", i)
		}
		if b.ShootIntervalTicks < 1 {
			return fmt.Errorf("bosses[%d]: shootIntervalTicks must be at least 1", i)
		}
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("bosses[%d]: size must be positive, got %vx%v", i, b.Width, b.Height)
		}
		if b.BulletSpeed <= 0 || b.BulletSpeedMultiplier <= 0 {
			return fmt.Errorf("bosses[%d]: bulletSpeed and bulletSpeedMultiplier must be positive", i)
		}
		if b.PatternDurationMs <= 0 {
			return fmt.Errorf("bosses[%d]: patternDurationMs must be positive", i)
		}
		if b.ExplosionParticles < 1 {
			return fmt.Errorf("bosses[%d]: explosionParticles must be at least 1", i)
		}
		if b.KillBonus < 0 {
			return fmt.Errorf("bosses[%d]: killBonus cannot be negative", i)
		}
	}

	if cfg.Particles.Cap < 1 {
		return fmt.Errorf("particles.cap must be at least 1, got %d", cfg.Particles.Cap)
	}
	if cfg.EnemyFire.Probability < 0 || cfg.EnemyFire.Probability > 1 {
		return fmt.Errorf("enemyFire.probability must be within [0,1], got %v", cfg.EnemyFire.Probability)
	}

	return nil
}
