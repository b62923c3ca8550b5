package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ivywong/webwriter/internal/dto"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f9fb0")).Bold(true)
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a"))
)

func printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func printSpaces(w io.Writer, spaces []*dto.SpaceDTO) {
	t := newTable("", "ID", "NAME", "CARDS", "SIZE")
	for _, s := range spaces {
		mark := ""
		if s.Current {
			mark = currentStyle.Render("*")
		}
		t.Row(mark, s.ID, s.Name, strconv.Itoa(s.Cards), fmt.Sprintf("%gx%g", s.Width, s.Height))
	}
	fmt.Fprintln(w, t.Render())
}

func printCards(w io.Writer, cards []*dto.CardDTO) {
	t := newTable("ID", "TITLE", "POSITION", "COLOR", "")
	for _, c := range cards {
		lock := ""
		if c.IsLocked {
			lock = lockedStyle.Render("locked")
		}
		t.Row(c.ContentID, c.Title, formatPosition(c), c.Color, lock)
	}
	fmt.Fprintln(w, t.Render())
}

func formatPosition(c *dto.CardDTO) string {
	width := "auto"
	if c.W >= 0 {
		width = strconv.FormatFloat(c.W, 'g', -1, 64)
	}
	return fmt.Sprintf("(%g, %g) z=%g w=%s", c.X, c.Y, c.Z, width)
}

// renderMarkdown 渲染卡片内容，失败时原样返回
func renderMarkdown(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
