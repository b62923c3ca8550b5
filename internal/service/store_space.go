package service

import (
	"iter"
	"strings"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/pkg/code"
	"github.com/ivywong/webwriter/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Spaces 返回所有空间的副本
func (s *Store) Spaces() []domain.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSpaces(s.data.Spaces)
}

// CurrentSpace 返回当前空间的副本
func (s *Store) CurrentSpace() domain.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Current().Clone()
}

// CurrentSpaceID 返回当前空间 ID
func (s *Store) CurrentSpaceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CurrentSpaceID
}

// GetSpace 根据 ID 获取空间，不存在时返回 code.ErrorSpaceNotFound
func (s *Store) GetSpace(id string) (domain.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	space := s.data.Space(id)
	if space == nil {
		return domain.Space{}, code.ErrorSpaceNotFound.WithDetails(id)
	}
	return space.Clone(), nil
}

// FilterSpaces 惰性遍历名称包含 query 的空间（忽略大小写）
// 每次遍历都基于开始时的状态副本，可重复遍历，不修改 Store
func (s *Store) FilterSpaces(query string) iter.Seq[domain.Space] {
	return func(yield func(domain.Space) bool) {
		fold := cases.Fold()
		q := fold.String(query)

		s.mu.Lock()
		spaces := cloneSpaces(s.data.Spaces)
		s.mu.Unlock()

		for _, sp := range spaces {
			if !strings.Contains(fold.String(sp.Name), q) {
				continue
			}
			if !yield(sp) {
				return
			}
		}
	}
}

// AddSpace 追加一个新空间（不切换），name 为空时使用默认名称
func (s *Store) AddSpace(name string) domain.Space {
	s.mu.Lock()
	space := s.newSpace(name)
	s.data.Spaces = append(s.data.Spaces, space)
	s.persist()
	mutationsTotal.WithLabelValues(string(EventAddSpace)).Inc()
	s.logger.Debug("space added",
		zap.String(logger.FieldSpace, space.ID),
		zap.String("name", space.Name))

	payload := space.Clone()
	s.commit(Event{Kind: EventAddSpace, Space: &payload})
	return space.Clone()
}

// SwitchToSpace 切换当前空间，首次激活时创建其撤销记录
// id 不存在时返回 code.ErrorSpaceNotFound，状态保持不变
func (s *Store) SwitchToSpace(id string) error {
	s.mu.Lock()
	if s.data.Space(id) == nil {
		s.mu.Unlock()
		return code.ErrorSpaceNotFound.WithDetails(id)
	}
	s.data.CurrentSpaceID = id
	s.ensureLedger(id)
	s.persist()
	mutationsTotal.WithLabelValues("switchToSpace").Inc()
	s.commit(Event{Kind: EventSave})
	return nil
}

// RenameSpace 重命名空间，id 不存在时返回 code.ErrorSpaceNotFound
func (s *Store) RenameSpace(id, name string) error {
	s.mu.Lock()
	space := s.data.Space(id)
	if space == nil {
		s.mu.Unlock()
		return code.ErrorSpaceNotFound.WithDetails(id)
	}
	space.Name = name
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventRename)).Inc()

	payload := space.Clone()
	settings := space.Settings
	s.commit(Event{Kind: EventRename, Space: &payload, Settings: &settings})
	return nil
}

// UpdateCurrentSpaceSettings 合并设置到当前空间并以 kind 发出通知
// kind 只能是 EventUpdateSpaceSize 或 EventRename
func (s *Store) UpdateCurrentSpaceSettings(patch domain.SpaceSettingsPatch, kind EventKind) error {
	if kind != EventUpdateSpaceSize && kind != EventRename {
		return code.ErrorInvalidChangeKind.WithDetails(string(kind))
	}

	s.mu.Lock()
	space := s.data.Current()
	space.Settings = patch.Apply(space.Settings)
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(kind)).Inc()

	settings := space.Settings
	s.commit(Event{Kind: kind, Settings: &settings})
	return nil
}

// EnsureCurrentSpaceExtent 将当前空间扩展到至少 width x height，从不缩小
// 已足够大时不做任何事并返回 false
func (s *Store) EnsureCurrentSpaceExtent(width, height float64) bool {
	s.mu.Lock()
	space := s.data.Current()
	grown := space.Settings
	grown.Width = max(grown.Width, width)
	grown.Height = max(grown.Height, height)
	if grown == space.Settings {
		s.mu.Unlock()
		return false
	}
	space.Settings = grown
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues("ensureExtent").Inc()
	s.logger.Debug("space extent grown",
		zap.String(logger.FieldSpace, space.ID),
		zap.Float64("width", grown.Width),
		zap.Float64("height", grown.Height))

	s.commit(Event{Kind: EventUpdateSpaceSize, Settings: &grown})
	return true
}

// DeleteSpace 删除空间并丢弃其撤销记录
// 删除当前空间时切换到第一个剩余空间；没有剩余空间时创建默认空间并切换过去
func (s *Store) DeleteSpace(id string) error {
	s.mu.Lock()
	idx := s.data.SpaceIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return code.ErrorSpaceNotFound.WithDetails(id)
	}

	s.data.Spaces = append(s.data.Spaces[:idx], s.data.Spaces[idx+1:]...)
	delete(s.ledgers, id)

	if s.data.CurrentSpaceID == id {
		if len(s.data.Spaces) == 0 {
			s.data.Spaces = append(s.data.Spaces, s.newSpace(""))
		}
		s.data.CurrentSpaceID = s.data.Spaces[0].ID
		s.ensureLedger(s.data.CurrentSpaceID)
	}
	s.persist()
	mutationsTotal.WithLabelValues("deleteSpace").Inc()
	s.logger.Debug("space deleted",
		zap.String(logger.FieldSpace, id),
		zap.String("current", s.data.CurrentSpaceID))

	s.commit(Event{Kind: EventSave})
	return nil
}

func cloneSpaces(in []domain.Space) []domain.Space {
	out := make([]domain.Space, len(in))
	for i, sp := range in {
		out[i] = sp.Clone()
	}
	return out
}
