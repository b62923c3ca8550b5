package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newShellCmd(env *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session, undo/redo history lasts until exit // 交互模式",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.interactive {
				return errors.New("already in a shell")
			}
			a, err := env.App()
			if err != nil {
				return err
			}

			env.interactive = true
			outer := env.flags
			defer func() {
				env.interactive = false
				env.flags = outer
			}()

			w := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			prompt := func() {
				fmt.Fprintf(w, "%s> ", a.Store.CurrentSpace().Name)
			}

			for prompt(); scanner.Scan(); prompt() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				words, err := shlex.Split(line)
				if err != nil {
					fmt.Fprintln(w, "error:", err)
					continue
				}

				// 每行重新构建命令树，避免上一条命令的参数残留
				root := newRootCmd(env)
				root.SetArgs(words)
				root.SetIn(cmd.InOrStdin())
				root.SetOut(w)
				root.SetErr(cmd.ErrOrStderr())
				if err := root.Execute(); err != nil {
					fmt.Fprintln(w, "error:", err)
				}
			}
			fmt.Fprintln(w)
			return scanner.Err()
		},
	}
}
