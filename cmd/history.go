package cmd

import (
	"fmt"

	"github.com/ivywong/webwriter/global"
	"github.com/ivywong/webwriter/internal/domain"
	"github.com/ivywong/webwriter/internal/service"

	"github.com/spf13/cobra"
)

// historyStatus history 命令的 JSON 输出
type historyStatus struct {
	SpaceID string `json:"spaceId"`
	Undos   int    `json:"undos"`
	Redos   int    `json:"redos"`
	Undo    string `json:"undo,omitempty"`
	Redo    string `json:"redo,omitempty"`
}

func newUndoCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change in the current space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.step(cmd, "undo", (*service.Store).PeekUndo, (*service.Store).Undo)
		},
	}
}

func newRedoCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change in the current space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.step(cmd, "redo", (*service.Store).PeekRedo, (*service.Store).Redo)
		},
	}
}

func (e *cmdEnv) step(cmd *cobra.Command, name string, peek func(*service.Store) (domain.Space, bool), apply func(*service.Store) bool) error {
	a, err := e.App()
	if err != nil {
		return err
	}
	before := a.Store.CurrentSpace()
	target, ok := peek(a.Store)
	if !ok || !apply(a.Store) {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to %s\n", name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, service.DescribeChange(before, target))
	return nil
}

func newHistoryCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show undo/redo state of the current space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			current := a.Store.CurrentSpace()
			st := historyStatus{SpaceID: current.ID}
			st.Undos, st.Redos = a.Store.HistoryLen()
			if prev, ok := a.Store.PeekUndo(); ok {
				st.Undo = service.DescribeChange(current, prev).String()
			}
			if next, ok := a.Store.PeekRedo(); ok {
				st.Redo = service.DescribeChange(current, next).String()
			}

			if env.flags.json {
				return printJSON(cmd.OutOrStdout(), st)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d undo, %d redo\n", current.Name, st.Undos, st.Redos)
			if st.Undo != "" {
				fmt.Fprintf(w, "  undo -> %s\n", st.Undo)
			}
			if st.Redo != "" {
				fmt.Fprintf(w, "  redo -> %s\n", st.Redo)
			}
			return nil
		},
	}
}

func newResetCmd(env *cmdEnv) *cobra.Command {
	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset --force",
		Short: "Replace all data with one empty space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset removes every space, pass --force to confirm")
			}
			a, err := env.App()
			if err != nil {
				return err
			}
			a.Store.Reset()
			fmt.Fprintf(cmd.OutOrStdout(), "reset, current space is %s\n", a.Store.CurrentSpaceID())
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "confirm reset")
	return resetCmd
}

func newDumpCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the whole document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.App()
			if err != nil {
				return err
			}
			data := a.Store.AppData()
			if env.flags.json {
				text, err := domain.Serialize(data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			global.Fdump(cmd.OutOrStdout(), data)
			return nil
		},
	}
}
