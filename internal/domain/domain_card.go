package domain

import "math"

// AutoWidth 宽度哨兵值，表示卡片自动调整宽度
const AutoWidth float64 = -1

// Position 卡片/堆叠在画布上的位置
// X/Y 为左上角坐标，Z 为层叠顺序，W 为宽度（AutoWidth 表示自动）
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IsFinite 所有字段都不是 NaN 或 ±Inf，否则文档无法编码
func (p Position) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z) && isFinite(p.W)
}

// Finite 将非有限字段替换为 0，宽度替换为 AutoWidth
func (p Position) Finite() Position {
	if !isFinite(p.X) {
		p.X = 0
	}
	if !isFinite(p.Y) {
		p.Y = 0
	}
	if !isFinite(p.Z) {
		p.Z = 0
	}
	if !isFinite(p.W) {
		p.W = AutoWidth
	}
	return p
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PositionPatch 位置的部分更新，nil 字段保持原值
type PositionPatch struct {
	X *float64
	Y *float64
	Z *float64
	W *float64
}

// Apply 将补丁浅覆盖到 p 上并返回新位置
func (pp PositionPatch) Apply(p Position) Position {
	if pp.X != nil {
		p.X = *pp.X
	}
	if pp.Y != nil {
		p.Y = *pp.Y
	}
	if pp.Z != nil {
		p.Z = *pp.Z
	}
	if pp.W != nil {
		p.W = *pp.W
	}
	return p
}

// IsFinite 补丁中给出的字段是否都是有限值
func (pp PositionPatch) IsFinite() bool {
	return pp.Apply(Position{}).IsFinite()
}

// IsEmpty 补丁是否不包含任何字段
func (pp PositionPatch) IsEmpty() bool {
	return pp.X == nil && pp.Y == nil && pp.Z == nil && pp.W == nil
}

// Card 块在画布上的视图，ContentID 指向同一空间内的 Block
type Card struct {
	ContentID string   `json:"contentId"`
	Position  Position `json:"position"`
	IsLocked  bool     `json:"isLocked"`
	Color     string   `json:"color"`
}

// NewCard 创建一张未锁定的卡片
func NewCard(contentID string, pos Position, color string) Card {
	return Card{ContentID: contentID, Position: pos, Color: color}
}

// Clone 卡片不含引用类型，值拷贝即为深拷贝
func (c Card) Clone() Card {
	return c
}
