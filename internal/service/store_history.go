package service

import (
	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/history"
	"github.com/ivywong/webwriter/pkg/logger"
	"go.uber.org/zap"
)

// Undo 将当前空间恢复到上一个快照，没有可撤销的步骤时返回 false 且不通知
func (s *Store) Undo() bool {
	return s.step("undo", (*history.Ledger).PrevState, (*history.Ledger).Undo)
}

// Redo 重做当前空间的下一个快照，没有可重做的步骤时返回 false 且不通知
func (s *Store) Redo() bool {
	return s.step("redo", (*history.Ledger).NextState, (*history.Ledger).Redo)
}

func (s *Store) step(direction string, peek func(*history.Ledger) (domain.Space, bool), advance func(*history.Ledger) bool) bool {
	s.mu.Lock()
	l := s.ensureLedger(s.data.CurrentSpaceID)
	target, ok := peek(l)
	if !ok {
		s.mu.Unlock()
		return false
	}
	idx := s.data.SpaceIndex(target.ID)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Warn("history snapshot does not match a space",
			zap.String(logger.FieldAction, direction),
			zap.String(logger.FieldSpace, target.ID))
		return false
	}
	s.data.Spaces[idx] = target
	advance(l)
	s.persist()
	historyTotal.WithLabelValues(direction).Inc()
	s.logger.Debug("history step applied",
		zap.String(logger.FieldAction, direction),
		zap.String(logger.FieldSpace, target.ID))

	s.commit(Event{Kind: EventSave})
	return true
}

// CanUndo 当前空间是否有可撤销的步骤
func (s *Store) CanUndo() bool {
	_, ok := s.PeekUndo()
	return ok
}

// CanRedo 当前空间是否有可重做的步骤
func (s *Store) CanRedo() bool {
	_, ok := s.PeekRedo()
	return ok
}

// PeekUndo 返回撤销后当前空间的状态，不修改记录
func (s *Store) PeekUndo() (domain.Space, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLedger(s.data.CurrentSpaceID).PrevState()
}

// PeekRedo 返回重做后当前空间的状态，不修改记录
func (s *Store) PeekRedo() (domain.Space, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLedger(s.data.CurrentSpaceID).NextState()
}

// HistoryLen 返回当前空间可撤销与可重做的步数
func (s *Store) HistoryLen() (undos, redos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLedger(s.data.CurrentSpaceID).Len()
}

// HasLedger 空间是否已有撤销记录
func (s *Store) HasLedger(spaceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ledgers[spaceID]
	return ok
}
