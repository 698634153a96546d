package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SessionRecord 一局游戏的结束记录
type SessionRecord struct {
	ID         uint `gorm:"primarykey"`
	Kills      int  `gorm:"index"`
	RedPoints  int
	Stage      int
	Victory    bool
	Ships      int
	DurationMs int64
	CreatedAt  time.Time
}

// ScoreStore 本地排行榜（SQLite）
type ScoreStore struct {
	db    *gorm.DB
	sqlDB *sql.DB
	log   zerolog.Logger
}

// OpenScoreStore 打开或创建排行榜数据库
//
// 参数：
//   - path: SQLite 文件路径，空字符串表示内存数据库
//   - log: 日志器
//
// 返回：
//   - *ScoreStore: 排行榜
//   - error: 数据库无法打开或迁移失败
func OpenScoreStore(path string, log zerolog.Logger) (*ScoreStore, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open score database %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// 内存库每个连接都是独立的数据库
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate score schema: %w", err)
	}

	store := &ScoreStore{
		db:    db,
		sqlDB: sqlDB,
		log:   log.With().Str("system", "ScoreStore").Logger(),
	}
	if path == "" {
		store.log.Info().Msg("using in-memory score database")
	} else {
		store.log.Info().Str("path", path).Msg("using local score database")
	}
	return store, nil
}

// Record 保存一局记录
func (s *ScoreStore) Record(rec *SessionRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	s.log.Debug().
		Int("kills", rec.Kills).
		Int("stage", rec.Stage).
		Bool("victory", rec.Victory).
		Msg("session recorded")
	return nil
}

// Best 返回击杀数最高的 n 条记录（击杀相同时较早的在前）
func (s *ScoreStore) Best(n int) ([]SessionRecord, error) {
	var records []SessionRecord
	err := s.db.Order("kills DESC").Order("id ASC").Limit(n).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query best sessions: %w", err)
	}
	return records, nil
}

// Count 返回记录总数
func (s *ScoreStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&SessionRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Close 关闭数据库
func (s *ScoreStore) Close() error {
	return s.sqlDB.Close()
}
