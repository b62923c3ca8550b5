package service

import (
	"slices"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/pkg/logger"
	"go.uber.org/zap"
)

// GetBlock 在当前空间中查找块，不支持跨空间查找
func (s *Store) GetBlock(id string) (domain.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	space := s.data.Current()
	if i := space.BlockIndex(id); i >= 0 {
		return space.Blocks[i].Clone(), true
	}
	return domain.Block{}, false
}

// GetCard 在当前空间中查找卡片，id 为卡片引用的块 ID
func (s *Store) GetCard(id string) (domain.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	space := s.data.Current()
	if i := space.CardIndex(id); i >= 0 {
		return space.Cards[i].Clone(), true
	}
	return domain.Card{}, false
}

// AddBlock 在当前空间追加一个空块
func (s *Store) AddBlock() domain.Block {
	s.mu.Lock()
	space := s.data.Current()
	block := domain.NewBlock(space.ID, "", s.now())
	space.Blocks = append(space.Blocks, block)
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventAddBlock)).Inc()

	payload := block.Clone()
	s.commit(Event{Kind: EventAddBlock, Block: &payload})
	return block
}

// UpdateBlockContent 更新块内容与最后修改时间，块不存在时返回 false
func (s *Store) UpdateBlockContent(id, text string) bool {
	s.mu.Lock()
	space := s.data.Current()
	i := space.BlockIndex(id)
	if i < 0 {
		s.mu.Unlock()
		s.notFound("UpdateBlockContent", logger.FieldBlock, id)
		return false
	}
	space.Blocks[i].SetText(text, s.now())
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventUpdateBlock)).Inc()

	payload := space.Blocks[i].Clone()
	s.commit(Event{Kind: EventUpdateBlock, Block: &payload})
	return true
}

// AddCard 在当前空间创建块（可预填内容）及引用它的卡片，返回新卡片
// 位置中的 NaN/Inf 字段按 Position.Finite 替换
func (s *Store) AddCard(pos domain.Position, content string) domain.Card {
	if !pos.IsFinite() {
		s.logger.Warn("non-finite card position replaced",
			zap.String(logger.FieldMethod, "AddCard"))
		pos = pos.Finite()
	}
	s.mu.Lock()
	space := s.data.Current()
	block := domain.NewBlock(space.ID, content, s.now())
	card := domain.NewCard(block.ID, pos, s.config.CardColor)
	space.Blocks = append(space.Blocks, block)
	space.Cards = append(space.Cards, card)
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventAddCard)).Inc()
	s.logger.Debug("card added",
		zap.String(logger.FieldSpace, space.ID),
		zap.String(logger.FieldCard, card.ContentID))

	payload := card.Clone()
	s.commit(Event{Kind: EventAddCard, Card: &payload})
	return card
}

// UpdateCardColor 修改卡片颜色，卡片不存在时返回 false
func (s *Store) UpdateCardColor(id, color string) bool {
	s.mu.Lock()
	space := s.data.Current()
	i := space.CardIndex(id)
	if i < 0 {
		s.mu.Unlock()
		s.notFound("UpdateCardColor", logger.FieldCard, id)
		return false
	}
	space.Cards[i].Color = color
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventUpdateCardColor)).Inc()

	payload := space.Cards[i].Clone()
	s.commit(Event{Kind: EventUpdateCardColor, Card: &payload})
	return true
}

// ToggleLockCard 切换卡片锁定状态，卡片不存在时返回 false
func (s *Store) ToggleLockCard(id string) bool {
	s.mu.Lock()
	space := s.data.Current()
	i := space.CardIndex(id)
	if i < 0 {
		s.mu.Unlock()
		s.notFound("ToggleLockCard", logger.FieldCard, id)
		return false
	}
	space.Cards[i].IsLocked = !space.Cards[i].IsLocked
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventToggleLockCard)).Inc()

	s.commit(Event{Kind: EventToggleLockCard, ID: id})
	return true
}

// UpdateCardPosition 将补丁浅覆盖到卡片位置
// 合并结果与原位置相同或补丁含 NaN/Inf 时直接返回 false：不写入、不通知、不记录检查点
func (s *Store) UpdateCardPosition(id string, patch domain.PositionPatch) bool {
	if !patch.IsFinite() {
		s.logger.Warn("non-finite card position rejected",
			zap.String(logger.FieldMethod, "UpdateCardPosition"),
			zap.String(logger.FieldCard, id))
		return false
	}
	s.mu.Lock()
	space := s.data.Current()
	i := space.CardIndex(id)
	if i < 0 {
		s.mu.Unlock()
		s.notFound("UpdateCardPosition", logger.FieldCard, id)
		return false
	}
	merged := patch.Apply(space.Cards[i].Position)
	if merged == space.Cards[i].Position {
		s.mu.Unlock()
		return false
	}
	space.Cards[i].Position = merged
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventUpdateCardPosition)).Inc()

	payload := space.Cards[i].Clone()
	s.commit(Event{Kind: EventUpdateCardPosition, Card: &payload})
	return true
}

// DeleteCard 删除卡片及其块；卡片已锁定或不存在时返回 false
func (s *Store) DeleteCard(id string) bool {
	s.mu.Lock()
	space := s.data.Current()
	i := space.CardIndex(id)
	if i < 0 {
		s.mu.Unlock()
		s.notFound("DeleteCard", logger.FieldCard, id)
		return false
	}
	if space.Cards[i].IsLocked {
		s.mu.Unlock()
		s.logger.Debug("refusing to delete locked card", zap.String(logger.FieldCard, id))
		return false
	}
	space.Cards = slices.Delete(space.Cards, i, i+1)
	if bi := space.BlockIndex(id); bi >= 0 {
		space.Blocks = slices.Delete(space.Blocks, bi, bi+1)
	}
	s.persist()
	s.checkpoint(space)
	mutationsTotal.WithLabelValues(string(EventDeleteCard)).Inc()

	s.commit(Event{Kind: EventDeleteCard, ID: id})
	return true
}

func (s *Store) notFound(method, field, id string) {
	s.logger.Debug("entity not found in current space",
		zap.String(logger.FieldMethod, method),
		zap.String(field, id))
}
