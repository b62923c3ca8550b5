package domain

// PersistenceBridge 按键存取序列化文档的外部存储
// 同一来源下其他上下文写入同一键时，通过 Watch 注册的回调得到通知
type PersistenceBridge interface {
	// Read 读取键值，键不存在时 ok 为 false
	Read(key string) (value string, ok bool, err error)

	// Write 写入键值
	Write(key, value string) error

	// Remove 删除键
	Remove(key string) error

	// Watch 监听其他上下文对 key 的修改，返回的 stop 用于取消监听
	// 自身写入不会触发回调
	Watch(key string, onChange func()) (stop func(), err error)
}
