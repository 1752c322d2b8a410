package db

import (
	"fmt"

	"ordermgr/internal/config"
	"ordermgr/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open はDBに接続して *gorm.DB を返す。
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		// ログはzap側で出す
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLiteは書き込み1本。:memory: も接続ごとに別DBになる
		sqlDB.SetMaxOpenConns(1)
		// DSNで指定がなくてもCASCADEを効かせる
		if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("db: enable foreign keys: %w", err)
		}
	}
	return gdb, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("db: unsupported driver %q (sqlite, postgres)", driver)
	}
}

// Migrate はテーブルを作る（何度呼んでもよい）。
// clientsを先に作らないとordersのFKが張れない
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.Client{},
		&model.Product{},
		&model.Order{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// Close は下の *sql.DB を閉じる
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
