package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// RuntimeConfig 启动器配置（与玩法无关）
type RuntimeConfig struct {
	LogLevel    string  `mapstructure:"logLevel"`
	GameConfig  string  `mapstructure:"gameConfig"`  // 玩法配置文件路径，空表示使用内嵌默认配置
	AppName     string  `mapstructure:"appName"`     // gdata 存储的应用名
	ScoreDB     string  `mapstructure:"scoreDB"`     // 成绩数据库路径，空表示内存库
	Ships       int     `mapstructure:"ships"`       // 飞船数量 1..3
	WindowScale float64 `mapstructure:"windowScale"` // 窗口缩放
	Seed        int64   `mapstructure:"seed"`        // 随机种子，0 表示按时间
}

// LoadRuntimeConfig 读取启动器配置
//
// 查找顺序：默认值 < 配置文件（skyraid.yaml，可选）< 环境变量 SKYRAID_*
//
// 参数:
//   - configDir: 配置文件所在目录
func LoadRuntimeConfig(configDir string) (*RuntimeConfig, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("gameConfig", "")
	v.SetDefault("appName", "skyraid")
	v.SetDefault("scoreDB", "skyraid_scores.db")
	v.SetDefault("ships", 1)
	v.SetDefault("windowScale", 1.0)
	v.SetDefault("seed", 0)

	v.SetConfigName("skyraid")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SKYRAID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading runtime config: %w", err)
		}
	}

	var rc RuntimeConfig
	if err := v.Unmarshal(&rc); err != nil {
		return nil, fmt.Errorf("error decoding runtime config: %w", err)
	}

	if rc.Ships < 1 || rc.Ships > 3 {
		return nil, fmt.Errorf("ships must be between 1 and 3, got %d", rc.Ships)
	}
	if rc.WindowScale <= 0 {
		rc.WindowScale = 1
	}

	return &rc, nil
}
