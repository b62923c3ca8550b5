package domain

import "time"

// Block 文本内容单元（Markdown 源文本）
// SpaceID 仅为反向引用，所有权属于 Space
type Block struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	SpaceID     string `json:"spaceId"`
	Created     int64  `json:"created"`      // 毫秒时间戳
	LastUpdated int64  `json:"last_updated"` // 每次写内容时更新
}

// NewBlock 在 spaceID 下创建一个新块
func NewBlock(spaceID, content string, now time.Time) Block {
	ts := now.UnixMilli()
	return Block{
		ID:          NewID(PrefixBlock),
		Content:     content,
		SpaceID:     spaceID,
		Created:     ts,
		LastUpdated: ts,
	}
}

// SetText 更新内容并刷新最后修改时间
func (b *Block) SetText(text string, now time.Time) {
	b.Content = text
	b.LastUpdated = now.UnixMilli()
}

// Clone 返回块的副本
func (b Block) Clone() Block {
	return b
}
