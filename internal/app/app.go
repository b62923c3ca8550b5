package app

import (
	"fmt"
	"time"

	"github.com/ivywong/webwriter/internal/dao"
	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config    *AppConfig
	logger    *zap.Logger
	DB        *gorm.DB
	StartTime time.Time

	// 持久化存储
	Bridge domain.PersistenceBridge

	// Service 层
	Store *service.Store
}

// Option 应用容器可选项
type Option func(*options)

type options struct {
	bridge domain.PersistenceBridge
}

// WithBridge 使用指定的持久化存储，忽略 storage.type
func WithBridge(b domain.PersistenceBridge) Option {
	return func(o *options) {
		o.bridge = b
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		StartTime: time.Now(),
	}

	bridge := o.bridge
	if bridge == nil {
		var err error
		bridge, err = a.newBridge()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	a.Bridge = bridge

	store, err := service.NewStore(bridge, logger.Named("store"), cfg.GetStoreConfig())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	a.Store = store

	logger.Info("App container initialized successfully",
		zap.String("storage", cfg.Storage.Type),
		zap.String("key", cfg.Storage.Key))

	return a, nil
}

// newBridge 根据 storage.type 创建持久化存储
func (a *App) newBridge() (domain.PersistenceBridge, error) {
	cfg := a.config
	interval := cfg.GetWatchInterval()

	switch cfg.Storage.Type {
	case StorageMemory:
		return dao.NewMemoryOrigin().Open(), nil
	case StorageDatabase:
		db, err := dao.NewDBEngine(cfg.GetDatabaseConfig(), a.logger.Named("db"))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.DB = db
		b, err := dao.NewDBBridge(db, interval, a.logger.Named("bridge"))
		if err != nil {
			return nil, fmt.Errorf("failed to create database bridge: %w", err)
		}
		return b, nil
	default:
		b, err := dao.NewFileBridge(cfg.Storage.Path, interval, a.logger.Named("bridge"))
		if err != nil {
			return nil, fmt.Errorf("failed to create file bridge: %w", err)
		}
		return b, nil
	}
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Store != nil {
		_ = a.Store.Close()
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// VersionInfo 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// Version 获取版本信息
func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
