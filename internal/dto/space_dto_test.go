package dto

import (
	"testing"
	"time"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpaceDTO(t *testing.T) {
	s := domain.NewSpace("Notes", domain.DefaultSpaceSettings())
	b := domain.NewBlock(s.ID, "x", time.Now())
	s.Blocks = append(s.Blocks, b)
	s.Cards = append(s.Cards, domain.NewCard(b.ID, domain.Position{}, "#ffffff"))

	d := NewSpaceDTO(s, s.ID)
	assert.Equal(t, &SpaceDTO{ID: s.ID, Name: "Notes", Current: true, Cards: 1, Blocks: 1, Width: 2000, Height: 1500}, d)
	assert.False(t, NewSpaceDTO(s, "space-other").Current)
}

func TestNewCardDTOs(t *testing.T) {
	s := domain.NewSpace("", domain.DefaultSpaceSettings())
	b := domain.NewBlock(s.ID, "\n## Shopping list\n- milk", time.UnixMilli(42))
	s.Blocks = append(s.Blocks, b)
	s.Cards = append(s.Cards,
		domain.Card{ContentID: b.ID, Position: domain.Position{X: 1, Y: 2, Z: 3, W: -1}, IsLocked: true, Color: "#000000"},
		domain.Card{ContentID: "block-missing"},
	)

	got := NewCardDTOs(s)
	require.Len(t, got, 2)
	assert.Equal(t, &CardDTO{
		ContentID:   b.ID,
		Title:       "Shopping list",
		Content:     "\n## Shopping list\n- milk",
		X:           1,
		Y:           2,
		Z:           3,
		W:           -1,
		IsLocked:    true,
		Color:       "#000000",
		LastUpdated: 42,
	}, got[0])
	assert.Equal(t, "", got[1].Content)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "", Title(""))
	assert.Equal(t, "hello", Title("  hello  \nworld"))
	assert.Equal(t, "heading", Title("# heading"))
	assert.Equal(t, 40, len([]rune(Title("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))))
}
