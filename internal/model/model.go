package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate 创建或更新所有表
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&StorageEntry{}); err != nil {
		return errors.Wrap(err, "auto migrate storage_entry")
	}
	return nil
}
