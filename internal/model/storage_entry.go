package model

import "time"

// StorageEntry 键值存储的一行，表名受 table-prefix 影响（默认 storage_entry）
// Revision 每次值变化时递增，用于发现其他进程的写入
type StorageEntry struct {
	EntryKey  string    `gorm:"column:entry_key;primaryKey;size:191" json:"entryKey"`
	Value     string    `gorm:"column:value;not null" json:"value"`
	Revision  int64     `gorm:"column:revision;not null;default:0" json:"revision"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}
