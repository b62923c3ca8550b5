package service

import (
	"sync"

	"github.com/ivywong/webwriter/internal/domain"
	"go.uber.org/zap"
)

// EventKind 通知类型
type EventKind string

const (
	// EventAll 订阅所有类型
	EventAll                EventKind = ""
	EventSave               EventKind = "save"
	EventAddSpace           EventKind = "addSpace"
	EventAddBlock           EventKind = "addBlock"
	EventAddCard            EventKind = "addCard"
	EventUpdateBlock        EventKind = "updateBlock"
	EventUpdateCardPosition EventKind = "updateCardPosition"
	EventUpdateCardColor    EventKind = "updateCardColor"
	EventToggleLockCard     EventKind = "toggleLockCard"
	EventDeleteCard         EventKind = "deleteCard"
	EventUpdateSpaceSize    EventKind = "updateSpaceSize"
	EventRename             EventKind = "rename"
)

// Event Store 发出的通知，Kind 决定哪些字段有值：
//
//	save                               无负载
//	addSpace                           Space
//	addBlock, updateBlock              Block
//	addCard, updateCardPosition,
//	updateCardColor                    Card
//	toggleLockCard, deleteCard         ID
//	updateSpaceSize                    Settings
//	rename                             Settings，由 RenameSpace 发出时另带 Space
//
// 负载均为副本，修改它们不会影响 Store
type Event struct {
	Kind     EventKind
	Space    *domain.Space
	Block    *domain.Block
	Card     *domain.Card
	ID       string
	Settings *domain.SpaceSettings
}

// Handler 事件处理函数
type Handler func(Event)

// Subscription 订阅句柄
type Subscription struct {
	bus  *eventBus
	kind EventKind
	id   uint64
}

// Unsubscribe 取消订阅，可重复调用
func (s Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.remove(s.kind, s.id)
	}
}

type subscriber struct {
	id      uint64
	handler Handler
}

// eventBus 按提交顺序分发事件
// 事件在 Store 锁内入队、锁外分发；处理函数可以回调 Store，
// 回调产生的事件排在队尾，由正在分发的 goroutine 继续投递
type eventBus struct {
	mu          sync.Mutex
	logger      *zap.Logger
	subs        map[EventKind][]subscriber
	nextID      uint64
	queue       []Event
	dispatching bool
}

func newEventBus(logger *zap.Logger) *eventBus {
	return &eventBus{logger: logger, subs: make(map[EventKind][]subscriber)}
}

func (b *eventBus) subscribe(kind EventKind, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscriber{id: b.nextID, handler: h})
	return Subscription{bus: b, kind: kind, id: b.nextID}
}

func (b *eventBus) remove(kind EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *eventBus) enqueue(events ...Event) {
	b.mu.Lock()
	b.queue = append(b.queue, events...)
	b.mu.Unlock()
}

// drain 投递队列中的事件，已有 goroutine 在投递时直接返回
func (b *eventBus) drain() {
	b.mu.Lock()
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	for len(b.queue) > 0 {
		ev := b.queue[0]
		b.queue[0] = Event{}
		b.queue = b.queue[1:]

		handlers := make([]Handler, 0, len(b.subs[ev.Kind])+len(b.subs[EventAll]))
		for _, s := range b.subs[ev.Kind] {
			handlers = append(handlers, s.handler)
		}
		if ev.Kind != EventAll {
			for _, s := range b.subs[EventAll] {
				handlers = append(handlers, s.handler)
			}
		}

		b.mu.Unlock()
		for _, h := range handlers {
			b.call(h, ev)
		}
		b.mu.Lock()
	}
	b.dispatching = false
	b.mu.Unlock()
}

func (b *eventBus) call(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic recovered in event handler",
				zap.Any("panic", r),
				zap.String("event", string(ev.Kind)))
		}
	}()
	h(ev)
}
