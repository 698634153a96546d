package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/skyraid/pkg/config"
)

func main() {
	path := "data/game.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	// 先严格解码一遍，拼写错误的字段会被默认值悄悄覆盖
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var strict config.GameConfig
	if err := dec.Decode(&strict); err != nil {
		fmt.Printf("❌ YAML 包含未知字段或格式错误: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ YAML 格式正确，没有未知字段\n")

	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		fmt.Printf("❌ 配置校验失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 场地 %vx%v，逻辑帧率 %d\n", cfg.Playfield.Width, cfg.Playfield.Height, cfg.FrameRate)
	fmt.Printf("✅ Boss 触发击杀数: %v\n", cfg.Stages.KillThresholds)
	for _, b := range cfg.Bosses {
		fmt.Printf("✅ Boss %d: 生命 %d，碰撞盒缩放 %v，击杀奖励 %d\n", b.Variant, b.Health, b.HitboxScale, b.KillBonus)
	}
}
