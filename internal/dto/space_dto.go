// Package dto 定义命令行输出使用的只读投影
package dto

import (
	"strings"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/pkg/convert"
)

// SpaceDTO 空间列表项
type SpaceDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Current bool    `json:"current"`
	Cards   int     `json:"cards" copier:"-"`
	Blocks  int     `json:"blocks" copier:"-"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// NewSpaceDTO 从空间构造列表项
func NewSpaceDTO(s domain.Space, currentID string) *SpaceDTO {
	d := &SpaceDTO{}
	convert.StructAssign(&s, d)
	d.Current = s.ID == currentID
	d.Cards = len(s.Cards)
	d.Blocks = len(s.Blocks)
	d.Width = s.Settings.Width
	d.Height = s.Settings.Height
	return d
}

// CardDTO 卡片列表项，附带块内容
type CardDTO struct {
	ContentID   string  `json:"contentId"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	W           float64 `json:"w"`
	IsLocked    bool    `json:"isLocked"`
	Color       string  `json:"color"`
	LastUpdated int64   `json:"lastUpdated"`
}

// NewCardDTOs 为空间中的每张卡片构造列表项，块缺失时内容为空
func NewCardDTOs(s domain.Space) []*CardDTO {
	out := make([]*CardDTO, 0, len(s.Cards))
	for _, c := range s.Cards {
		d := &CardDTO{}
		convert.StructAssign(&c, d)
		d.X, d.Y, d.Z, d.W = c.Position.X, c.Position.Y, c.Position.Z, c.Position.W
		if i := s.BlockIndex(c.ContentID); i >= 0 {
			d.Content = s.Blocks[i].Content
			d.LastUpdated = s.Blocks[i].LastUpdated
			d.Title = Title(d.Content)
		}
		out = append(out, d)
	}
	return out
}

// Title 返回内容的第一行非空文本（去掉 Markdown 标题符号），最多 40 个字符
func Title(content string) string {
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > 40 {
			return string(r[:39]) + "…"
		}
		return line
	}
	return ""
}
