package cmd

import (
	"fmt"
	"strings"

	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/dto"
	"github.com/ivywong/webwriter/internal/service"
	"github.com/ivywong/webwriter/pkg/code"

	"github.com/spf13/cobra"
)

func newSpaceCmd(env *cmdEnv) *cobra.Command {
	spaceCmd := &cobra.Command{
		Use:   "space",
		Short: "Manage spaces // 管理空间",
	}

	spaceCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List spaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			return env.printSpaceList(cmd, a.Store.Spaces(), a.Store.CurrentSpaceID())
		},
	})

	spaceCmd.AddCommand(&cobra.Command{
		Use:   "find <query>",
		Short: "List spaces whose name contains query (case-insensitive)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			var found []domain.Space
			for s := range a.Store.FilterSpaces(strings.Join(args, " ")) {
				found = append(found, s)
			}
			return env.printSpaceList(cmd, found, a.Store.CurrentSpaceID())
		},
	})

	var switchTo bool
	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a space",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			s := a.Store.AddSpace(strings.Join(args, " "))
			if switchTo {
				if err := a.Store.SwitchToSpace(s.ID); err != nil {
					return err
				}
			}
			return env.printSpace(cmd, s, a.Store.CurrentSpaceID())
		},
	}
	addCmd.Flags().BoolVarP(&switchTo, "use", "u", false, "switch to the new space")
	spaceCmd.AddCommand(addCmd)

	spaceCmd.AddCommand(&cobra.Command{
		Use:   "rename <space> <name>",
		Short: "Rename a space",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveSpaceID(a.Store, args[0])
			if err != nil {
				return err
			}
			if err := a.Store.RenameSpace(id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			s, err := a.Store.GetSpace(id)
			if err != nil {
				return err
			}
			return env.printSpace(cmd, s, a.Store.CurrentSpaceID())
		},
	})

	spaceCmd.AddCommand(&cobra.Command{
		Use:     "rm <space>",
		Aliases: []string{"delete"},
		Short:   "Delete a space and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveSpaceID(a.Store, args[0])
			if err != nil {
				return err
			}
			if err := a.Store.DeleteSpace(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s, current space is %s\n", id, a.Store.CurrentSpace().Name)
			return nil
		},
	})

	spaceCmd.AddCommand(&cobra.Command{
		Use:     "use <space>",
		Aliases: []string{"switch"},
		Short:   "Switch the current space",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			id, err := resolveSpaceID(a.Store, args[0])
			if err != nil {
				return err
			}
			if err := a.Store.SwitchToSpace(id); err != nil {
				return err
			}
			return env.printSpace(cmd, a.Store.CurrentSpace(), id)
		},
	})

	var width, height float64
	var grow bool
	resizeCmd := &cobra.Command{
		Use:   "resize [--width w] [--height h]",
		Short: "Change the size of the current space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			if grow {
				if !a.Store.EnsureCurrentSpaceExtent(width, height) {
					fmt.Fprintln(cmd.OutOrStdout(), "space already large enough")
					return nil
				}
			} else {
				var patch domain.SpaceSettingsPatch
				if cmd.Flags().Changed("width") {
					patch.Width = &width
				}
				if cmd.Flags().Changed("height") {
					patch.Height = &height
				}
				if patch.Width == nil && patch.Height == nil {
					return fmt.Errorf("nothing to change, pass --width or --height")
				}
				if err := a.Store.UpdateCurrentSpaceSettings(patch, service.EventUpdateSpaceSize); err != nil {
					return err
				}
			}
			return env.printSpace(cmd, a.Store.CurrentSpace(), a.Store.CurrentSpaceID())
		},
	}
	fs := resizeCmd.Flags()
	fs.Float64Var(&width, "width", 0, "canvas width")
	fs.Float64Var(&height, "height", 0, "canvas height")
	fs.BoolVar(&grow, "grow", false, "only grow the canvas to at least width x height")
	spaceCmd.AddCommand(resizeCmd)

	return spaceCmd
}

func (e *cmdEnv) printSpaceList(cmd *cobra.Command, spaces []domain.Space, currentID string) error {
	list := make([]*dto.SpaceDTO, 0, len(spaces))
	for _, s := range spaces {
		list = append(list, dto.NewSpaceDTO(s, currentID))
	}
	if e.flags.json {
		return printJSON(cmd.OutOrStdout(), list)
	}
	printSpaces(cmd.OutOrStdout(), list)
	return nil
}

func (e *cmdEnv) printSpace(cmd *cobra.Command, s domain.Space, currentID string) error {
	return e.printSpaceList(cmd, []domain.Space{s}, currentID)
}

// resolveSpaceID 将 current、完整 ID、唯一的 ID 前缀或空间名称解析为空间 ID
func resolveSpaceID(store *service.Store, ref string) (string, error) {
	if ref == "current" || ref == "." {
		return store.CurrentSpaceID(), nil
	}

	var byPrefix, byName []string
	for _, s := range store.Spaces() {
		if s.ID == ref {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			byPrefix = append(byPrefix, s.ID)
		}
		if s.Name == ref {
			byName = append(byName, s.ID)
		}
	}
	switch {
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) == 0 && len(byName) == 1:
		return byName[0], nil
	case len(byPrefix)+len(byName) > 1:
		return "", fmt.Errorf("space %q is ambiguous", ref)
	}
	return "", code.ErrorSpaceNotFound.WithDetails(ref)
}
