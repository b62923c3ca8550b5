// Package service implements the store that owns all application data
// Package service 实现持有全部应用数据的 Store
package service

import "github.com/ivywong/webwriter/internal/domain"

// StoreConfig store configuration
// StoreConfig Store 配置
type StoreConfig struct {
	Key                 string  // Storage key of the document // 文档存储键
	HistoryKeepVersions int     // Undo depth per space, 0 for unbounded // 每个空间保留的撤销步数，0 表示不限
	DefaultSpaceName    string  // Name of synthesized spaces // 默认空间名称
	SpaceWidth          float64 // Default canvas width // 默认画布宽度
	SpaceHeight         float64 // Default canvas height // 默认画布高度
	CardColor           string  // Color of new cards // 新卡片颜色
}

// DefaultStoreKey 默认存储键
const DefaultStoreKey = "webwriter"

// DefaultCardColor 新卡片默认颜色
const DefaultCardColor = "#ffffff"

// withDefaults 返回补全零值字段后的配置
func (c StoreConfig) withDefaults() StoreConfig {
	if c.Key == "" {
		c.Key = DefaultStoreKey
	}
	if c.HistoryKeepVersions < 0 {
		c.HistoryKeepVersions = 0
	}
	if c.DefaultSpaceName == "" {
		c.DefaultSpaceName = domain.DefaultSpaceName
	}
	if c.SpaceWidth <= 0 {
		c.SpaceWidth = domain.DefaultSpaceWidth
	}
	if c.SpaceHeight <= 0 {
		c.SpaceHeight = domain.DefaultSpaceHeight
	}
	if c.CardColor == "" {
		c.CardColor = DefaultCardColor
	}
	return c
}
