package code

var (
	// Success 成功
	Success = NewError(200000, lang{en: "ok", zh_cn: "成功"})

	// ErrorSpaceNotFound a space id does not resolve (invalid reference)
	// ErrorSpaceNotFound 空间 ID 无法解析（无效引用）
	ErrorSpaceNotFound = NewError(404101, lang{en: "space not found", zh_cn: "空间不存在"})
	// ErrorInvalidChangeKind unsupported settings change kind
	// ErrorInvalidChangeKind 不支持的设置变更类型
	ErrorInvalidChangeKind = NewError(400102, lang{en: "invalid space settings change kind", zh_cn: "无效的空间设置变更类型"})
	// ErrorDecode persisted document could not be decoded
	// ErrorDecode 持久化文档解析失败
	ErrorDecode = NewError(500103, lang{en: "failed to decode app data", zh_cn: "应用数据解析失败"})
	// ErrorInvalidStorageKey storage key cannot be used
	// ErrorInvalidStorageKey 存储键无效
	ErrorInvalidStorageKey = NewError(400104, lang{en: "invalid storage key", zh_cn: "无效的存储键"})
	// ErrorStorageRead reading from the persistence bridge failed
	// ErrorStorageRead 从持久化存储读取失败
	ErrorStorageRead = NewError(500105, lang{en: "failed to read storage", zh_cn: "读取存储失败"})
	// ErrorStorageWrite writing to the persistence bridge failed
	// ErrorStorageWrite 写入持久化存储失败
	ErrorStorageWrite = NewError(500106, lang{en: "failed to write storage", zh_cn: "写入存储失败"})
	// ErrorServerInternal unexpected failure while serving a request
	// ErrorServerInternal 服务器内部错误
	ErrorServerInternal = NewError(500107, lang{en: "internal server error", zh_cn: "服务器内部错误"})
	// ErrorNotFoundAPI route not found
	// ErrorNotFoundAPI 接口不存在
	ErrorNotFoundAPI = NewError(404108, lang{en: "api not found", zh_cn: "接口不存在"})
	// ErrorCardNotFound no card with this id in the current space
	// ErrorCardNotFound 当前空间中不存在该卡片
	ErrorCardNotFound = NewError(404109, lang{en: "card not found", zh_cn: "卡片不存在"})
	// ErrorCardLocked locked cards cannot be deleted
	// ErrorCardLocked 卡片已锁定，无法删除
	ErrorCardLocked = NewError(409110, lang{en: "card is locked", zh_cn: "卡片已锁定"})
	// ErrorInvalidPosition card coordinates must be finite numbers
	// ErrorInvalidPosition 卡片坐标必须是有限数值
	ErrorInvalidPosition = NewError(400111, lang{en: "invalid card position", zh_cn: "无效的卡片位置"})
)
