package database

import (
	"fmt"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// InitMemory 打开内存sqlite库，用于测试与dry-run
func InitMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 自动迁移所有表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.RegistryState{},
		&model.Campaign{},
		&model.Contribution{},
		&model.CancellationRecord{},
		&model.HistoryEntry{},
		&model.PayoutRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 保证全局状态单行存在
	state := model.RegistryState{ID: model.RegistryStateID}
	if err := db.FirstOrCreate(&state, model.RegistryState{ID: model.RegistryStateID}).Error; err != nil {
		return fmt.Errorf("failed to seed registry state: %w", err)
	}
	return nil
}
