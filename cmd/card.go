package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/dto"
	"github.com/ivywong/webwriter/internal/service"
	"github.com/ivywong/webwriter/pkg/code"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// positionFlags 卡片位置参数，只有显式传入的字段进入补丁
type positionFlags struct {
	x, y, z, w float64
}

func (p *positionFlags) register(fs *pflag.FlagSet, defaultWidth float64) {
	fs.Float64Var(&p.x, "x", 0, "x coordinate")
	fs.Float64Var(&p.y, "y", 0, "y coordinate")
	fs.Float64Var(&p.z, "z", 0, "stacking order")
	fs.Float64Var(&p.w, "w", defaultWidth, "width, -1 for auto")
}

func (p *positionFlags) position() domain.Position {
	return domain.Position{X: p.x, Y: p.y, Z: p.z, W: p.w}
}

func (p *positionFlags) patch(fs *pflag.FlagSet) domain.PositionPatch {
	var patch domain.PositionPatch
	if fs.Changed("x") {
		patch.X = &p.x
	}
	if fs.Changed("y") {
		patch.Y = &p.y
	}
	if fs.Changed("z") {
		patch.Z = &p.z
	}
	if fs.Changed("w") {
		patch.W = &p.w
	}
	return patch
}

func newCardCmd(env *cmdEnv) *cobra.Command {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards in the current space // 管理当前空间的卡片",
	}

	cardCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			cards := dto.NewCardDTOs(a.Store.CurrentSpace())
			if env.flags.json {
				return printJSON(cmd.OutOrStdout(), cards)
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		},
	})

	addPos := new(positionFlags)
	addCmd := &cobra.Command{
		Use:   "add [content|-]",
		Short: "Add a card, - reads content from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			content, err := readContent(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			pos := addPos.position()
			if !pos.IsFinite() {
				return code.ErrorInvalidPosition.WithDetails(fmt.Sprintf("%+v", pos))
			}
			card := a.Store.AddCard(pos, content)
			return env.printCard(cmd, a.Store, card.ContentID)
		},
	}
	addPos.register(addCmd.Flags(), domain.AutoWidth)
	cardCmd.AddCommand(addCmd)

	var style string
	var width int
	showCmd := &cobra.Command{
		Use:   "show <card>",
		Short: "Render card content as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			block, ok := a.Store.GetBlock(id)
			if !ok {
				return code.ErrorCardNotFound.WithDetails(id)
			}
			if env.flags.json {
				return printJSON(cmd.OutOrStdout(), block)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMarkdown(block.Content, style, width))
			return nil
		},
	}
	showCmd.Flags().StringVar(&style, "style", "dark", "glamour style (dark, light, notty, ascii)")
	showCmd.Flags().IntVar(&width, "width", 80, "word wrap width")
	cardCmd.AddCommand(showCmd)

	cardCmd.AddCommand(&cobra.Command{
		Use:   "edit <card> <content|->",
		Short: "Replace card content, - reads from stdin",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			content, err := readContent(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}
			if !a.Store.UpdateBlockContent(id, content) {
				return code.ErrorCardNotFound.WithDetails(id)
			}
			return env.printCard(cmd, a.Store, id)
		},
	})

	movePos := new(positionFlags)
	moveCmd := &cobra.Command{
		Use:   "move <card> [--x] [--y] [--z] [--w]",
		Short: "Change card position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			patch := movePos.patch(cmd.Flags())
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change, pass --x, --y, --z or --w")
			}
			if !patch.IsFinite() {
				return code.ErrorInvalidPosition.WithDetails(args[0])
			}
			a.Store.UpdateCardPosition(id, patch)
			return env.printCard(cmd, a.Store, id)
		},
	}
	movePos.register(moveCmd.Flags(), 0)
	cardCmd.AddCommand(moveCmd)

	cardCmd.AddCommand(&cobra.Command{
		Use:   "color <card> <color>",
		Short: "Change card color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			if !a.Store.UpdateCardColor(id, args[1]) {
				return code.ErrorCardNotFound.WithDetails(id)
			}
			return env.printCard(cmd, a.Store, id)
		},
	})

	cardCmd.AddCommand(&cobra.Command{
		Use:   "lock <card>",
		Short: "Toggle the lock on a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			if !a.Store.ToggleLockCard(id) {
				return code.ErrorCardNotFound.WithDetails(id)
			}
			return env.printCard(cmd, a.Store, id)
		},
	})

	cardCmd.AddCommand(&cobra.Command{
		Use:     "rm <card>",
		Aliases: []string{"delete"},
		Short:   "Delete an unlocked card and its block",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveCardID(a.Store, args[0])
			if err != nil {
				return err
			}
			if !a.Store.DeleteCard(id) {
				return code.ErrorCardLocked.WithDetails(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	})

	return cardCmd
}

func (e *cmdEnv) printCard(cmd *cobra.Command, store *service.Store, id string) error {
	s := store.CurrentSpace()
	var cards []*dto.CardDTO
	for _, c := range dto.NewCardDTOs(s) {
		if c.ContentID == id {
			cards = append(cards, c)
		}
	}
	if e.flags.json {
		return printJSON(cmd.OutOrStdout(), cards)
	}
	printCards(cmd.OutOrStdout(), cards)
	return nil
}

// readContent 拼接参数作为内容，单个 - 时读取 r
func readContent(r io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

// resolveCardID 在当前空间中按完整 ID 或唯一前缀查找卡片
func resolveCardID(store *service.Store, ref string) (string, error) {
	var matches []string
	for _, c := range store.CurrentSpace().Cards {
		if c.ContentID == ref {
			return ref, nil
		}
		if strings.HasPrefix(c.ContentID, ref) {
			matches = append(matches, c.ContentID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", code.ErrorCardNotFound.WithDetails(ref)
	}
	return "", fmt.Errorf("card %q is ambiguous", ref)
}
