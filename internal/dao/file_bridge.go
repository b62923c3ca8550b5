package dao

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ivywong/webwriter/pkg/code"
	"github.com/ivywong/webwriter/pkg/fileurl"
	"github.com/ivywong/webwriter/pkg/logger"
	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"go.uber.org/zap"
)

const fileExt = ".json"

// fileState 本进程最后一次读到或写入的文件内容
type fileState struct {
	value   string
	present bool
}

// FileBridge 以目录中的 <key>.json 文件保存文档
// 其他进程修改文件时，通过轮询式 watcher 通知监听者
type FileBridge struct {
	dir      string
	interval time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	seen map[string]fileState
}

// NewFileBridge 创建文件存储，dir 不存在时自动创建
// interval: watcher 轮询间隔
func NewFileBridge(dir string, interval time.Duration, lg *zap.Logger) (*FileBridge, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage directory")
	}
	return &FileBridge{
		dir:      dir,
		interval: interval,
		logger:   lg,
		seen:     make(map[string]fileState),
	}, nil
}

// Path 返回 key 对应的文件路径
func (b *FileBridge) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || filepath.Base(key) != key {
		return "", code.ErrorInvalidStorageKey.WithDetails(key)
	}
	return filepath.Join(b.dir, key+fileExt), nil
}

func (b *FileBridge) Read(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, err := b.load(key)
	if err != nil {
		return "", false, err
	}
	b.seen[key] = st
	return st.value, st.present, nil
}

func (b *FileBridge) Write(key, value string) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := fileurl.CreatePath(path, 0o755); err != nil {
		return errors.Wrap(err, "create storage directory")
	}
	if err := fileurl.WriteFileAtomic(path, []byte(value), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	b.seen[key] = fileState{value: value, present: true}
	return nil
}

func (b *FileBridge) Remove(key string) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", path)
	}
	b.seen[key] = fileState{}
	return nil
}

// Watch 监听 key 文件的变化；内容与本进程最后一次读写一致时不通知
func (b *FileBridge) Watch(key string, onChange func()) (func(), error) {
	path, err := b.Path(key)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	if _, ok := b.seen[key]; !ok {
		st, err := b.load(key)
		if err != nil {
			b.mu.Unlock()
			return nil, err
		}
		b.seen[key] = st
	}
	b.mu.Unlock()

	w := watcher.New()

	// Set MaxEvents to 1 to receive at most 1 event in each listening cycle
	// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	// Only the key file, never its temp file
	// 只关注 key 对应的文件，忽略临时文件
	w.AddFilterHook(watcher.RegexFilterHook(regexp.MustCompile(`^`+regexp.QuoteMeta(filepath.Base(path))+`$`), false))

	if err := w.Add(b.dir); err != nil {
		return nil, errors.Wrapf(err, "watch %s", b.dir)
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				b.logger.Debug("storage watcher event",
					zap.String("event", event.Op.String()),
					zap.String(logger.FieldPath, event.Path))
				if b.changed(key) {
					onChange()
				}
			case err := <-w.Error:
				b.logger.Error("storage watcher error", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	go func() {
		if err := w.Start(b.interval); err != nil {
			b.logger.Error("storage watcher start error", zap.Error(err))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			// Close is ignored until the watcher is running
			// watcher 未启动时 Close 不生效，先等待启动
			w.Wait()
			w.Close()
		})
	}, nil
}

// changed 重新读取文件并与已知内容比较，变化时更新已知内容
func (b *FileBridge) changed(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, err := b.load(key)
	if err != nil {
		b.logger.Warn("storage watcher read error", zap.String(logger.FieldKey, key), zap.Error(err))
		return false
	}
	if st == b.seen[key] {
		return false
	}
	b.seen[key] = st
	return true
}

// load 读取文件当前内容，调用方须持有 b.mu
func (b *FileBridge) load(key string) (fileState, error) {
	path, err := b.Path(key)
	if err != nil {
		return fileState{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fileState{}, nil
	}
	if err != nil {
		return fileState{}, errors.Wrapf(err, "read %s", path)
	}
	return fileState{value: string(data), present: true}, nil
}
