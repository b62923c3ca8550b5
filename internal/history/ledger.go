// Package history 维护单个空间的撤销/重做时间线
package history

import "github.com/ivywong/webwriter/internal/domain"

// Ledger 单个空间的撤销/重做记录
// undos 与 redos 均为旧在前的栈，current 为最近一次提交的快照
// 所有进出的快照都是深拷贝，修改实时状态不会影响已记录的快照
type Ledger struct {
	undos   []domain.Space
	redos   []domain.Space
	current domain.Space
	limit   int
}

// New 以 initial 为当前快照创建记录，limit 限制 undos 深度，0 表示不限
func New(initial domain.Space, limit int) *Ledger {
	return &Ledger{current: initial.Clone(), limit: limit}
}

// Current 返回当前快照
func (l *Ledger) Current() domain.Space {
	return l.current.Clone()
}

// PrevState 返回 undos 栈顶，不修改记录
func (l *Ledger) PrevState() (domain.Space, bool) {
	if len(l.undos) == 0 {
		return domain.Space{}, false
	}
	return l.undos[len(l.undos)-1].Clone(), true
}

// NextState 返回 redos 栈顶，不修改记录
func (l *Ledger) NextState() (domain.Space, bool) {
	if len(l.redos) == 0 {
		return domain.Space{}, false
	}
	return l.redos[len(l.redos)-1].Clone(), true
}

// Add 将 current 压入 undos，以 state 替换 current，并清空 redos
func (l *Ledger) Add(state domain.Space) {
	l.undos = append(l.undos, l.current)
	if l.limit > 0 && len(l.undos) > l.limit {
		drop := len(l.undos) - l.limit
		clear(l.undos[:drop])
		l.undos = l.undos[drop:]
	}
	l.current = state.Clone()
	clear(l.redos)
	l.redos = l.redos[:0]
}

// Undo 回退一步，undos 为空时返回 false
func (l *Ledger) Undo() bool {
	if len(l.undos) == 0 {
		return false
	}
	prev := l.undos[len(l.undos)-1]
	l.undos = l.undos[:len(l.undos)-1]
	l.redos = append(l.redos, l.current)
	l.current = prev
	return true
}

// Redo 前进一步，redos 为空时返回 false
func (l *Ledger) Redo() bool {
	if len(l.redos) == 0 {
		return false
	}
	next := l.redos[len(l.redos)-1]
	l.redos = l.redos[:len(l.redos)-1]
	l.undos = append(l.undos, l.current)
	l.current = next
	return true
}

// Len 返回可撤销与可重做的步数
func (l *Ledger) Len() (undos, redos int) {
	return len(l.undos), len(l.redos)
}
