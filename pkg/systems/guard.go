package systems

import (
	"github.com/rs/zerolog"

	"github.com/gonewx/skyraid/pkg/ecs"
)

// guardEntity 执行单个实体的更新逻辑并捕获 panic
//
// 返回 false 表示该实体的更新失败，调用方应把它从仓库中丢弃。
// 一个坏实体不会中断整帧。
func guardEntity(log zerolog.Logger, id ecs.EntityID, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().
				Uint64("entity", uint64(id)).
				Interface("panic", r).
				Msg("entity update failed, dropping entity")
			ok = false
		}
	}()
	fn()
	return true
}
