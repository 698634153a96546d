package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/skyraid/pkg/config"
)

// GameSettings 全局游戏设置
type GameSettings struct {
	Difficulty   config.Difficulty `yaml:"difficulty"`   // 难度倍数，会话开始时读取一次
	SoundVolume  float64           `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool              `yaml:"soundEnabled"` // 音效开关
}

// LifetimeStats 跨会话保存的简单计数器
type LifetimeStats struct {
	GamesPlayed int `yaml:"gamesPlayed"`
	Victories   int `yaml:"victories"`
	TotalKills  int `yaml:"totalKills"`
	BestKills   int `yaml:"bestKills"`
	BestStage   int `yaml:"bestStage"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Difficulty:   config.DefaultDifficulty(),
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

// SettingsManager 设置管理器
// 负责设置和累计计数器的加载、保存
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
	stats        *LifetimeStats
	log          zerolog.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
	statsObject      = "stats"
	statsProperty    = "lifetime"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - log: 日志器
//
// 返回：
//   - *SettingsManager: 设置管理器实例（加载失败时使用默认值，不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager, log zerolog.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		stats:        &LifetimeStats{},
		log:          log.With().Str("system", "Settings").Logger(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		sm.log.Warn().Err(err).Msg("failed to load settings, using defaults")
	}

	return sm
}

// Load 从 gdata 加载设置和累计计数器
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	sm.stats = &LifetimeStats{}

	if sm.gdataManager == nil {
		return nil
	}

	if err := sm.loadYAML(settingsObject, settingsProperty, sm.settings); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := sm.settings.Difficulty.Validate(); err != nil {
		sm.settings.Difficulty = config.DefaultDifficulty()
		return fmt.Errorf("stored difficulty rejected: %w", err)
	}

	if err := sm.loadYAML(statsObject, statsProperty, sm.stats); err != nil {
		sm.stats = &LifetimeStats{}
		return fmt.Errorf("failed to load lifetime stats: %w", err)
	}

	sm.log.Info().Msg("settings loaded")
	return nil
}

// loadYAML 读取一个 gdata 属性并反序列化，属性不存在时保持 out 不变
func (sm *SettingsManager) loadYAML(object, property string, out interface{}) error {
	if !sm.gdataManager.ObjectPropExists(object, property) {
		return nil
	}
	data, err := sm.gdataManager.LoadObjectProp(object, property)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// saveYAML 序列化并写入一个 gdata 属性
func (sm *SettingsManager) saveYAML(object, property string, in interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", object, property, err)
	}
	if err := sm.gdataManager.SaveObjectProp(object, property, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, property, err)
	}
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	if err := sm.saveYAML(settingsObject, settingsProperty, sm.settings); err != nil {
		return err
	}
	return sm.saveYAML(statsObject, statsProperty, sm.stats)
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Difficulty 返回难度倍数的拷贝
// 会话开始时调用一次，之后的修改不影响正在进行的会话
func (sm *SettingsManager) Difficulty() config.Difficulty {
	return sm.settings.Difficulty
}

// SetDifficulty 设置难度倍数（下一局生效）
func (sm *SettingsManager) SetDifficulty(d config.Difficulty) error {
	if err := d.Validate(); err != nil {
		return err
	}
	sm.settings.Difficulty = d
	return nil
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// Stats 返回累计计数器
func (sm *SettingsManager) Stats() LifetimeStats {
	return *sm.stats
}

// RecordSession 把一局的结果累加到计数器并保存
func (sm *SettingsManager) RecordSession(kills, stage int, victory bool) error {
	sm.stats.GamesPlayed++
	sm.stats.TotalKills += kills
	if kills > sm.stats.BestKills {
		sm.stats.BestKills = kills
	}
	if stage > sm.stats.BestStage {
		sm.stats.BestStage = stage
	}
	if victory {
		sm.stats.Victories++
	}
	return sm.Save()
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
