package dao

import (
	"sync"
	"time"

	"github.com/ivywong/webwriter/internal/model"
	"github.com/ivywong/webwriter/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBBridge 以数据库表 storage_entry 保存文档
// 每次值变化时递增 revision，Watch 按间隔轮询 revision 发现其他进程的写入
type DBBridge struct {
	db       *gorm.DB
	interval time.Duration
	logger   *zap.Logger

	mu sync.Mutex
	// seen 本进程最后一次读到或写入的 revision，0 表示不存在
	seen map[string]int64
}

// NewDBBridge 创建数据库存储并迁移表结构
func NewDBBridge(db *gorm.DB, interval time.Duration, lg *zap.Logger) (*DBBridge, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &DBBridge{db: db, interval: interval, logger: lg, seen: make(map[string]int64)}, nil
}

func (b *DBBridge) Read(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var entry model.StorageEntry
	err := b.db.Where("entry_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b.seen[key] = 0
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read entry %s", key)
	}
	b.seen[key] = entry.Revision
	return entry.Value, true, nil
}

func (b *DBBridge) Write(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var revision int64
	err := b.db.Transaction(func(tx *gorm.DB) error {
		var entry model.StorageEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("entry_key = ?", key).Take(&entry).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 新行以纳秒时间作为起始 revision，删除后重建也能被其他进程发现
			now := time.Now()
			revision = now.UnixNano()
			entry = model.StorageEntry{EntryKey: key, Value: value, Revision: revision, UpdatedAt: now}
			return tx.Create(&entry).Error
		case err != nil:
			return err
		case entry.Value == value:
			revision = entry.Revision
			return nil
		}
		revision = entry.Revision + 1
		return tx.Model(&model.StorageEntry{}).
			Where("entry_key = ?", key).
			Updates(map[string]any{"value": value, "revision": revision, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "write entry %s", key)
	}
	b.seen[key] = revision
	return nil
}

func (b *DBBridge) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.db.Where("entry_key = ?", key).Delete(&model.StorageEntry{}).Error; err != nil {
		return errors.Wrapf(err, "remove entry %s", key)
	}
	b.seen[key] = 0
	return nil
}

// Watch 按间隔轮询 key 的 revision，与本进程已知值不同时通知
func (b *DBBridge) Watch(key string, onChange func()) (func(), error) {
	b.mu.Lock()
	if _, ok := b.seen[key]; !ok {
		rev, err := b.revision(key)
		if err != nil {
			b.mu.Unlock()
			return nil, err
		}
		b.seen[key] = rev
	}
	b.mu.Unlock()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if b.changed(key) {
					onChange()
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}, nil
}

func (b *DBBridge) changed(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	rev, err := b.revision(key)
	if err != nil {
		b.logger.Warn("storage poll error", zap.String(logger.FieldKey, key), zap.Error(err))
		return false
	}
	if rev == b.seen[key] {
		return false
	}
	b.seen[key] = rev
	return true
}

// revision 查询 key 的当前 revision，不存在时返回 0，调用方须持有 b.mu
func (b *DBBridge) revision(key string) (int64, error) {
	var revs []int64
	err := b.db.Model(&model.StorageEntry{}).Where("entry_key = ?", key).Limit(1).Pluck("revision", &revs).Error
	if err != nil {
		return 0, errors.Wrapf(err, "poll entry %s", key)
	}
	if len(revs) == 0 {
		return 0, nil
	}
	return revs[0], nil
}
