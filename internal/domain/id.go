package domain

import "github.com/google/uuid"

// ID prefixes, one per entity type
// 实体 ID 前缀
const (
	PrefixBlock = "block"
	PrefixSpace = "space"
	PrefixStack = "stack"
)

// NewID mints a random identifier namespaced by prefix, e.g. "block-<uuid>"
// NewID 生成带类型前缀的随机 ID
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
