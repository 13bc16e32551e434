package config

import (
	"fmt"

	"restaurant-catalog-api/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// OpenDB opens the SQLite catalog database and, if migrate is set, brings
// the schema up to date.
func OpenDB(cfg DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(gormLevels[cfg.LogLevel]),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	// one writer at a time, or concurrent transactions hit SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if migrate {
		if err := store.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, nil
}
