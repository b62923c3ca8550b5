package cmd

import (
	"fmt"
	"os"

	internalApp "github.com/ivywong/webwriter/internal/app"
	"github.com/ivywong/webwriter/pkg/fileurl"
	"github.com/ivywong/webwriter/pkg/logger"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDefault string

// rootFlags 所有命令共享的全局参数
type rootFlags struct {
	config string // Specified configuration file path // 指定要使用的配置文件路径
	dir    string // Working directory // 工作目录
	json   bool   // JSON output // 以 JSON 输出
}

// cmdEnv 命令执行环境，按需打开 App
// 交互模式下多条命令共享同一个 App，撤销/重做历史得以保留
type cmdEnv struct {
	flags       *rootFlags
	app         *internalApp.App
	configPath  string // 首次打开后确定的配置文件路径
	interactive bool
}

func newRootCmd(env *cmdEnv) *cobra.Command {
	f := new(rootFlags)
	env.flags = f

	root := &cobra.Command{
		Use:           "webwriter",
		Short:         "Spatial note canvas store // 空间笔记画布存储",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	fs := root.PersistentFlags()
	fs.StringVarP(&f.config, "config", "c", "", "config file")
	fs.StringVarP(&f.dir, "dir", "d", "", "working dir")
	fs.BoolVar(&f.json, "json", false, "print JSON")

	root.AddCommand(
		newVersionCmd(),
		newSpaceCmd(env),
		newCardCmd(env),
		newUndoCmd(env),
		newRedoCmd(env),
		newHistoryCmd(env),
		newResetCmd(env),
		newDumpCmd(env),
		newShellCmd(env),
		newRunCmd(env),
	)
	return root
}

func Execute(c string) {
	configDefault = c

	env := new(cmdEnv)
	err := newRootCmd(env).Execute()
	env.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// App 打开（或复用）应用容器
func (e *cmdEnv) App() (*internalApp.App, error) {
	if e.app != nil {
		return e.app, nil
	}

	if e.configPath == "" {
		if len(e.flags.dir) > 0 {
			if err := os.Chdir(e.flags.dir); err != nil {
				return nil, errors.Wrap(err, "failed to change the current working directory")
			}
			bootstrapLogger.Debug("working directory changed", zap.String("dir", e.flags.dir))
		}

		file, err := resolveConfig(e.flags.config)
		if err != nil {
			return nil, err
		}
		e.configPath = file
	}

	cfg, realpath, err := internalApp.LoadConfig(e.configPath)
	if err != nil {
		return nil, err
	}
	e.configPath = realpath
	bootstrapLogger.Debug("config loaded", zap.String(logger.FieldPath, realpath))

	lg, err := logger.NewLogger(cfg.GetLoggerConfig())
	if err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	a, err := internalApp.NewApp(cfg, lg)
	if err != nil {
		return nil, err
	}
	e.app = a
	return a, nil
}

// Close 释放应用容器
func (e *cmdEnv) Close() {
	if e.app == nil {
		return
	}
	if err := e.app.Close(); err != nil {
		bootstrapLogger.Error("app close error", zap.Error(err))
	}
	_ = e.app.Logger().Sync()
	e.app = nil
}

// resolveConfig 查找配置文件，均不存在时以默认配置创建 config/config.yaml
func resolveConfig(file string) (string, error) {
	if len(file) > 0 {
		return file, nil
	}

	for _, candidate := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(candidate) {
			return candidate, nil
		}
	}

	file = "config/config.yaml"
	bootstrapLogger.Warn("config file not found, creating default config", zap.String(logger.FieldPath, file))

	if err := fileurl.CreatePath(file, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	if err := os.WriteFile(file, []byte(configDefault), 0o644); err != nil {
		return "", errors.Wrap(err, "config file auto create writing error")
	}
	return file, nil
}
