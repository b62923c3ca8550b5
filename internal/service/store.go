package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/history"
	"github.com/ivywong/webwriter/pkg/code"
	"github.com/ivywong/webwriter/pkg/logger"
	"go.uber.org/zap"
)

// Store 应用数据的唯一修改入口
// 每次修改都会写入持久化存储、为所在空间记录撤销检查点并发出通知
// 读取接口返回副本；可在多个 goroutine 中使用
type Store struct {
	mu      sync.Mutex
	config  StoreConfig
	bridge  domain.PersistenceBridge
	logger  *zap.Logger
	bus     *eventBus
	now     func() time.Time
	data    *domain.AppData
	ledgers map[string]*history.Ledger

	lastSaveErr error
	stopWatch   func()
	closeOnce   sync.Once
}

// Option Store 可选项
type Option func(*Store)

// WithClock 替换时间来源，用于测试
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore 从 bridge 加载文档并开始监听外部修改
// 文档缺失或无法解析时使用只含一个默认空间的空状态
// bridge: 持久化存储（必须）
// logger: zap 日志器，nil 时不输出
func NewStore(bridge domain.PersistenceBridge, lg *zap.Logger, cfg StoreConfig, opts ...Option) (*Store, error) {
	if bridge == nil {
		return nil, errors.New("persistence bridge is required")
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	s := &Store{
		config:  cfg.withDefaults(),
		bridge:  bridge,
		logger:  lg,
		now:     time.Now,
		ledgers: make(map[string]*history.Ledger),
	}
	s.bus = newEventBus(lg)
	for _, opt := range opts {
		opt(s)
	}

	if data, ok := s.readStorage(); ok {
		s.data = data
	} else {
		s.data = s.emptyData()
	}
	s.ensureLedger(s.data.CurrentSpaceID)

	stop, err := bridge.Watch(s.config.Key, s.onExternalChange)
	if err != nil {
		return nil, err
	}
	s.stopWatch = stop

	s.logger.Debug("store loaded",
		zap.String(logger.FieldKey, s.config.Key),
		zap.Int("spaces", len(s.data.Spaces)),
		zap.String(logger.FieldSpace, s.data.CurrentSpaceID))
	return s, nil
}

// Subscribe 订阅 kind 类型的事件，EventAll 订阅全部
func (s *Store) Subscribe(kind EventKind, h Handler) Subscription {
	return s.bus.subscribe(kind, h)
}

// Close 停止监听外部修改
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.stopWatch != nil {
			s.stopWatch()
		}
	})
	return nil
}

// LastSaveError 返回最近一次写入的错误，成功写入后清空
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Key 返回文档的存储键
func (s *Store) Key() string {
	return s.config.Key
}

// AppData 返回整个文档的副本
func (s *Store) AppData() *domain.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Reset 丢弃全部状态，重置为一个空的默认空间，清除并重写持久化数据
func (s *Store) Reset() {
	s.mu.Lock()
	s.data = s.emptyData()
	clear(s.ledgers)
	s.ensureLedger(s.data.CurrentSpaceID)
	if err := s.bridge.Remove(s.config.Key); err != nil {
		s.logger.Warn("failed to remove stored document",
			zap.String(logger.FieldKey, s.config.Key),
			zap.Error(err))
	}
	s.persist()
	mutationsTotal.WithLabelValues("reset").Inc()
	s.commit(Event{Kind: EventSave})
}

// Reload 重新读取持久化文档，与收到外部修改通知时的处理一致
func (s *Store) Reload() {
	s.mu.Lock()
	s.reloadLocked()
	s.commit(Event{Kind: EventSave})
}

func (s *Store) onExternalChange() {
	externalReloadsTotal.Inc()
	s.logger.Info("storage changed by another context, reloading",
		zap.String(logger.FieldKey, s.config.Key))
	s.Reload()
}

// reloadLocked 最后写入者胜出：文档可用时整体替换内存状态
// 之后丢弃所有撤销记录并重新持久化
func (s *Store) reloadLocked() {
	if data, ok := s.readStorage(); ok {
		s.data = data
	}
	clear(s.ledgers)
	s.ensureLedger(s.data.CurrentSpaceID)
	s.persist()
}

// commit 在锁内入队事件，释放锁后投递
// 调用方必须持有 s.mu
func (s *Store) commit(events ...Event) {
	s.bus.enqueue(events...)
	s.mu.Unlock()
	s.bus.drain()
}

// readStorage 读取并解析文档，任何失败都只记录日志
func (s *Store) readStorage() (*domain.AppData, bool) {
	text, ok, err := s.bridge.Read(s.config.Key)
	if err != nil {
		s.logger.Error("failed to read stored document",
			zap.String(logger.FieldKey, s.config.Key),
			zap.Error(code.ErrorStorageRead.WithDetails(err.Error())))
		return nil, false
	}
	if !ok {
		s.logger.Info("no stored document found", zap.String(logger.FieldKey, s.config.Key))
		return nil, false
	}
	data, err := domain.Deserialize(text)
	if err != nil {
		decodeErrorsTotal.Inc()
		s.logger.Error("failed to decode stored document",
			zap.String(logger.FieldKey, s.config.Key),
			zap.Int(logger.FieldSize, len(text)),
			zap.Error(err))
		return nil, false
	}
	return data, true
}

// persist 序列化并写入整个文档；失败时记录日志并保留错误
func (s *Store) persist() {
	start := time.Now()
	text, err := domain.Serialize(s.data)
	if err == nil {
		err = s.bridge.Write(s.config.Key, text)
	}
	if err != nil {
		s.lastSaveErr = code.ErrorStorageWrite.WithDetails(err.Error())
		saveErrorsTotal.Inc()
		s.logger.Error("failed to persist document",
			zap.String(logger.FieldKey, s.config.Key),
			zap.Error(err))
		return
	}
	s.lastSaveErr = nil
	savesTotal.Inc()
	s.logger.Debug("document persisted",
		zap.String(logger.FieldKey, s.config.Key),
		zap.Int(logger.FieldSize, len(text)),
		zap.Duration(logger.FieldDuration, time.Since(start)))
}

// checkpoint 为空间记录修改后的快照（空间已有撤销记录时）
func (s *Store) checkpoint(space *domain.Space) {
	if l, ok := s.ledgers[space.ID]; ok {
		l.Add(*space)
	}
}

// ensureLedger 空间首次激活时以当前快照创建撤销记录
func (s *Store) ensureLedger(spaceID string) *history.Ledger {
	if l, ok := s.ledgers[spaceID]; ok {
		return l
	}
	space := s.data.Space(spaceID)
	if space == nil {
		return nil
	}
	l := history.New(*space, s.config.HistoryKeepVersions)
	s.ledgers[spaceID] = l
	return l
}

func (s *Store) newSpace(name string) domain.Space {
	if name == "" {
		name = s.config.DefaultSpaceName
	}
	return domain.NewSpace(name, domain.SpaceSettings{Width: s.config.SpaceWidth, Height: s.config.SpaceHeight})
}

func (s *Store) emptyData() *domain.AppData {
	sp := s.newSpace("")
	return domain.NewAppData([]domain.Space{sp}, sp.ID)
}
