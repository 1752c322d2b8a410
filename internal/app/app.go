// Package app は設定から部品を組み立てる（main以外からも使えるように）
package app

import (
	"context"
	"fmt"

	"ordermgr/internal/config"
	"ordermgr/internal/infra/archive"
	"ordermgr/internal/infra/db"
	infraRepo "ordermgr/internal/infra/repository"
	"ordermgr/internal/logger"
	"ordermgr/internal/metrics"
	"ordermgr/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Registry *prometheus.Registry
	Archive  archive.Sink

	Clients  *usecase.ClientUsecase
	Products *usecase.ProductUsecase
	Orders   *usecase.OrderUsecase
}

// New はDB接続・テーブル作成・usecase生成まで行う
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("app: logger: %w", err)
	}
	return NewWithLogger(ctx, cfg, log)
}

func NewWithLogger(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	//DB接続
	gormDB, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		_ = db.Close(gormDB)
		return nil, err
	}

	sink, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		_ = db.Close(gormDB)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	clock := usecase.SystemClock()

	log.Debug("app ready",
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("archive_driver", cfg.Archive.Driver),
		zap.Float64("high_value_threshold", cfg.Order.HighValueThreshold),
	)

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       gormDB,
		Registry: reg,
		Archive:  sink,
		Clients:  usecase.NewClientUsecase(txm, clock, log),
		Products: usecase.NewProductUsecase(txm, log),
		Orders:   usecase.NewOrderUsecase(txm, sink, cfg.Order.HighValueThreshold, log, m),
	}, nil
}

func (a *App) Close() error {
	_ = a.Log.Sync()
	return db.Close(a.DB)
}
