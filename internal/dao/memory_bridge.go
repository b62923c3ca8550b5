package dao

import "sync"

// MemoryOrigin 单个来源下共享的内存键值存储，类似浏览器的 localStorage
// 通过 Open 打开的每个 MemoryBridge 相当于一个标签页
type MemoryOrigin struct {
	mu        sync.Mutex
	values    map[string]string
	tabs      map[uint64]*MemoryBridge
	nextTab   uint64
	nextWatch uint64
}

// NewMemoryOrigin 创建空的内存来源
func NewMemoryOrigin() *MemoryOrigin {
	return &MemoryOrigin{
		values: make(map[string]string),
		tabs:   make(map[uint64]*MemoryBridge),
	}
}

// Open 打开一个新的标签页视图
func (o *MemoryOrigin) Open() *MemoryBridge {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextTab++
	b := &MemoryBridge{origin: o, id: o.nextTab, watchers: make(map[uint64]memoryWatch)}
	o.tabs[b.id] = b
	return b
}

// Get 直接读取来源中的值，不经过任何标签页
func (o *MemoryOrigin) Get(key string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[key]
	return v, ok
}

// notifyOthers 收集除 from 外所有标签页中监听 key 的回调，调用方须持有 o.mu
func (o *MemoryOrigin) notifyOthers(from uint64, key string) []func() {
	var out []func()
	for id, tab := range o.tabs {
		if id == from {
			continue
		}
		for _, w := range tab.watchers {
			if w.key == key {
				out = append(out, w.fn)
			}
		}
	}
	return out
}

type memoryWatch struct {
	key string
	fn  func()
}

// MemoryBridge MemoryOrigin 的一个标签页，实现 domain.PersistenceBridge
// 值发生变化时异步通知其他标签页的监听者，自身写入不通知自己
type MemoryBridge struct {
	origin   *MemoryOrigin
	id       uint64
	watchers map[uint64]memoryWatch
}

func (b *MemoryBridge) Read(key string) (string, bool, error) {
	v, ok := b.origin.Get(key)
	return v, ok, nil
}

func (b *MemoryBridge) Write(key, value string) error {
	o := b.origin
	o.mu.Lock()
	if old, ok := o.values[key]; ok && old == value {
		o.mu.Unlock()
		return nil
	}
	o.values[key] = value
	fns := o.notifyOthers(b.id, key)
	o.mu.Unlock()

	dispatch(fns)
	return nil
}

func (b *MemoryBridge) Remove(key string) error {
	o := b.origin
	o.mu.Lock()
	if _, ok := o.values[key]; !ok {
		o.mu.Unlock()
		return nil
	}
	delete(o.values, key)
	fns := o.notifyOthers(b.id, key)
	o.mu.Unlock()

	dispatch(fns)
	return nil
}

func (b *MemoryBridge) Watch(key string, onChange func()) (func(), error) {
	o := b.origin
	o.mu.Lock()
	o.nextWatch++
	id := o.nextWatch
	b.watchers[id] = memoryWatch{key: key, fn: onChange}
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(b.watchers, id)
			o.mu.Unlock()
		})
	}, nil
}

// Close 关闭标签页，之后不再收到通知
func (b *MemoryBridge) Close() {
	o := b.origin
	o.mu.Lock()
	delete(o.tabs, b.id)
	o.mu.Unlock()
}

// dispatch 异步调用回调，避免写入方在持有自身锁时被重入
func dispatch(fns []func()) {
	for _, fn := range fns {
		go fn()
	}
}
