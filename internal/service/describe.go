package service

import (
	"fmt"
	"strings"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/pkg/diff"
)

// BlockEdit 单个块的文本变化
type BlockEdit struct {
	ID    string
	Stat  diff.Stat
	Patch string
}

// Change 两个空间快照之间的差异摘要，用于预览撤销/重做
type Change struct {
	Renamed        bool
	Resized        bool
	CardsAdded     []string
	CardsRemoved   []string
	CardsMoved     []string
	CardsRecolored []string
	CardsLocked    []string
	BlocksAdded    []string // 没有卡片引用的块
	BlocksRemoved  []string
	BlocksEdited   []BlockEdit
}

// IsEmpty 两个快照是否没有可见差异
func (c Change) IsEmpty() bool {
	return !c.Renamed && !c.Resized &&
		len(c.CardsAdded) == 0 && len(c.CardsRemoved) == 0 &&
		len(c.CardsMoved) == 0 && len(c.CardsRecolored) == 0 &&
		len(c.CardsLocked) == 0 && len(c.BlocksAdded) == 0 &&
		len(c.BlocksRemoved) == 0 && len(c.BlocksEdited) == 0
}

// String 返回单行摘要，例如 "1 card added, 2 blocks edited (+12 -3)"
func (c Change) String() string {
	if c.IsEmpty() {
		return "no changes"
	}
	var parts []string
	if c.Renamed {
		parts = append(parts, "renamed")
	}
	if c.Resized {
		parts = append(parts, "resized")
	}
	parts = appendCount(parts, len(c.CardsAdded), "card", "added")
	parts = appendCount(parts, len(c.CardsRemoved), "card", "removed")
	parts = appendCount(parts, len(c.CardsMoved), "card", "moved")
	parts = appendCount(parts, len(c.CardsRecolored), "card", "recolored")
	parts = appendCount(parts, len(c.CardsLocked), "card", "lock toggled")
	parts = appendCount(parts, len(c.BlocksAdded), "block", "added")
	parts = appendCount(parts, len(c.BlocksRemoved), "block", "removed")
	if n := len(c.BlocksEdited); n > 0 {
		var total diff.Stat
		for _, e := range c.BlocksEdited {
			total.Inserted += e.Stat.Inserted
			total.Deleted += e.Stat.Deleted
		}
		parts = append(parts, fmt.Sprintf("%s edited (+%d -%d)", plural(n, "block"), total.Inserted, total.Deleted))
	}
	return strings.Join(parts, ", ")
}

// DescribeChange 比较 from 与 to 两个快照
func DescribeChange(from, to domain.Space) Change {
	var c Change
	c.Renamed = from.Name != to.Name
	c.Resized = from.Settings != to.Settings

	before := make(map[string]domain.Card, len(from.Cards))
	for _, card := range from.Cards {
		before[card.ContentID] = card
	}
	for _, card := range to.Cards {
		old, ok := before[card.ContentID]
		if !ok {
			c.CardsAdded = append(c.CardsAdded, card.ContentID)
			continue
		}
		delete(before, card.ContentID)
		if old.Position != card.Position {
			c.CardsMoved = append(c.CardsMoved, card.ContentID)
		}
		if old.Color != card.Color {
			c.CardsRecolored = append(c.CardsRecolored, card.ContentID)
		}
		if old.IsLocked != card.IsLocked {
			c.CardsLocked = append(c.CardsLocked, card.ContentID)
		}
	}
	for _, card := range from.Cards {
		if _, ok := before[card.ContentID]; ok {
			c.CardsRemoved = append(c.CardsRemoved, card.ContentID)
		}
	}

	texts := make(map[string]string, len(from.Blocks))
	for _, b := range from.Blocks {
		texts[b.ID] = b.Content
	}
	for _, b := range to.Blocks {
		old, ok := texts[b.ID]
		if !ok {
			if to.CardIndex(b.ID) < 0 {
				c.BlocksAdded = append(c.BlocksAdded, b.ID)
			}
			continue
		}
		delete(texts, b.ID)
		if old == b.Content {
			continue
		}
		c.BlocksEdited = append(c.BlocksEdited, BlockEdit{
			ID:    b.ID,
			Stat:  diff.TextStat(old, b.Content),
			Patch: diff.Patch(old, b.Content),
		})
	}
	for _, b := range from.Blocks {
		if _, ok := texts[b.ID]; ok && from.CardIndex(b.ID) < 0 {
			c.BlocksRemoved = append(c.BlocksRemoved, b.ID)
		}
	}
	return c
}

func appendCount(parts []string, n int, noun, verb string) []string {
	if n == 0 {
		return parts
	}
	return append(parts, plural(n, noun)+" "+verb)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
