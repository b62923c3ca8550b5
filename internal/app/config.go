// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ivywong/webwriter/internal/dao"
	"github.com/ivywong/webwriter/internal/service"
	"github.com/ivywong/webwriter/pkg/logger"
	"github.com/ivywong/webwriter/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Storage types
// 存储类型
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageDatabase = "database"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn" validate:"oneof=debug info warn error dpanic panic fatal"`
	// File 日志文件路径，为空时输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// StorageConfig 文档存储配置
type StorageConfig struct {
	// Type 存储类型 memory | file | database
	Type string `yaml:"type" default:"file" validate:"oneof=memory file database"`
	// Key 文档存储键
	Key string `yaml:"key" default:"webwriter" validate:"required,excludesall=/\\"`
	// Path 文件存储目录
	Path string `yaml:"path" default:"storage/data"`
	// WatchInterval 外部修改检测间隔，支持格式：500ms、1s、1m
	WatchInterval string `yaml:"watch-interval" default:"1s"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite" validate:"oneof=sqlite mysql postgres"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/webwriter.sqlite3"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，0 表示使用驱动默认端口
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// Debug 是否输出 SQL 日志
	Debug bool `yaml:"debug"`
}

// StoreConfig Store 配置
type StoreConfig struct {
	// HistoryKeepVersions 每个空间保留的撤销步数，0 表示不限
	HistoryKeepVersions int `yaml:"history-keep-versions" default:"100" validate:"gte=0"`
	// DefaultSpaceName 新空间的默认名称
	DefaultSpaceName string `yaml:"default-space-name" default:"Untitled"`
	// SpaceWidth 新空间的画布宽度
	SpaceWidth float64 `yaml:"space-width" default:"2000" validate:"gt=0"`
	// SpaceHeight 新空间的画布高度
	SpaceHeight float64 `yaml:"space-height" default:"1500" validate:"gt=0"`
	// CardColor 新卡片颜色
	CardColor string `yaml:"card-color" default:"#ffffff"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release" validate:"oneof=debug release test"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics、healthz），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := LoadConfigData(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath
	return c, realpath, nil
}

// LoadConfigData 从 YAML 数据加载配置
func LoadConfigData(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if _, err := util.ParseDuration(c.Storage.WatchInterval); err != nil {
		return errors.Wrap(err, "invalid storage.watch-interval")
	}
	return nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	if c.File == "" {
		return errors.New("config file path is empty")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
		return errors.Wrap(err, "create config directory failed")
	}
	if err := os.WriteFile(c.File, data, 0o644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetWatchInterval 获取外部修改检测间隔
func (c *AppConfig) GetWatchInterval() time.Duration {
	return util.ParseDurationOr(c.Storage.WatchInterval, time.Second)
}

// GetStoreConfig 获取 Store 配置
func (c *AppConfig) GetStoreConfig() service.StoreConfig {
	return service.StoreConfig{
		Key:                 c.Storage.Key,
		HistoryKeepVersions: c.Store.HistoryKeepVersions,
		DefaultSpaceName:    c.Store.DefaultSpaceName,
		SpaceWidth:          c.Store.SpaceWidth,
		SpaceHeight:         c.Store.SpaceHeight,
		CardColor:           c.Store.CardColor,
	}
}

// GetDatabaseConfig 获取 DAO 使用的数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		Charset:         c.Database.Charset,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: util.ParseDurationOr(c.Database.ConnMaxLifetime, 30*time.Minute),
		Debug:           c.Database.Debug || c.Server.RunMode == "debug",
	}
}
