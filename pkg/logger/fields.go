package logger

// 统一的日志字段命名常量
// Shared log field names, keeps store and bridge logs queryable
const (
	// FieldKey 存储键字段
	FieldKey = "key"

	// FieldSpace 空间 ID 字段
	FieldSpace = "space"

	// FieldBlock 块 ID 字段
	FieldBlock = "block"

	// FieldCard 卡片 ID 字段
	FieldCard = "card"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 文件路径字段
	FieldPath = "path"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldBridge 持久化桥类型字段
	FieldBridge = "bridge"

	// FieldSize 文档大小字段
	FieldSize = "size"

	// FieldDuration 耗时字段
	FieldDuration = "duration"
)
