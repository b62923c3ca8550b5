package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	internalApp "github.com/ivywong/webwriter/internal/app"
	"github.com/ivywong/webwriter/internal/routers"
	"github.com/ivywong/webwriter/internal/service"
	"github.com/ivywong/webwriter/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultShutdownTimeout default shutdown timeout duration
// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

func newRunCmd(env *cmdEnv) *cobra.Command {
	var listen string

	runCommand := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [--listen addr]",
		Short: "Run the store, follow external changes and serve metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.interactive {
				return errors.New("run is not available in a shell")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			for {
				a, err := env.App()
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("listen") {
					a.Config().Server.PrivateHttpListen = listen
				}

				restart, err := serve(ctx, a)
				if err != nil || !restart {
					return err
				}

				// Re-initialize app
				// 重新初始化 app
				env.Close()
			}
		},
	}

	runCommand.Flags().StringVarP(&listen, "listen", "l", "", "private http listen address, overrides server.private-http-listen")
	return runCommand
}

// serve 运行直到 ctx 结束或配置文件变化，配置变化时返回 restart=true
func serve(ctx context.Context, a *internalApp.App) (restart bool, err error) {
	cfg := a.Config()
	lg := a.Logger().Named("run")
	gin.SetMode(cfg.Server.RunMode)

	sub := a.Store.Subscribe(service.EventAll, func(ev service.Event) {
		fields := []zap.Field{zap.String(logger.FieldAction, string(ev.Kind))}
		switch {
		case ev.Card != nil:
			fields = append(fields, zap.String(logger.FieldCard, ev.Card.ContentID))
		case ev.Block != nil:
			fields = append(fields, zap.String(logger.FieldBlock, ev.Block.ID))
		case ev.Space != nil:
			fields = append(fields, zap.String(logger.FieldSpace, ev.Space.ID))
		case ev.ID != "":
			fields = append(fields, zap.String(logger.FieldCard, ev.ID))
		}
		lg.Info("store event", fields...)
	})
	defer sub.Unsubscribe()

	errCh := make(chan error, 1)
	var srv *http.Server
	if addr := cfg.Server.PrivateHttpListen; len(addr) > 0 {
		srv = &http.Server{
			Addr:              addr,
			Handler:           routers.NewPrivateRouter(a),
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		lg.Warn("private_router", zap.String("config.server.private-http-listen", addr))
	}

	configChanged := make(chan struct{}, 1)
	stopWatch := watchConfig(cfg.File, lg, configChanged)
	defer stopWatch()

	lg.Warn(fmt.Sprintf("%s v%s Git: %s BuildTime: %s", internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime),
		zap.String("storage", cfg.Storage.Type),
		zap.String(logger.FieldKey, cfg.Storage.Key),
		zap.String("config", cfg.File))

	select {
	case <-ctx.Done():
		lg.Info("Received shutdown signal, initiating graceful shutdown...")
	case <-configChanged:
		lg.Warn("config changed, restarting")
		restart = true
	case err = <-errCh:
		lg.Error("private http server error", zap.Error(err))
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			lg.Error("private http server shutdown error", zap.Error(serr))
		}
	}
	return restart, err
}

// watchConfig 监听配置文件写入，变化时向 changed 发送信号
func watchConfig(file string, lg *zap.Logger, changed chan<- struct{}) func() {
	if file == "" {
		return func() {}
	}

	w := watcher.New()

	// Set MaxEvents to 1 to receive at most 1 event in each listening cycle
	// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
	w.SetMaxEvents(1)

	// Only notify write events.
	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	if err := w.Add(file); err != nil {
		lg.Error("config watcher file error", zap.Error(err))
		return func() {}
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				lg.Info("config watcher change", zap.String("event", event.Op.String()), zap.String(logger.FieldPath, event.Path))
				select {
				case changed <- struct{}{}:
				default:
				}
			case err := <-w.Error:
				lg.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	go func() {
		if err := w.Start(time.Second * 5); err != nil {
			lg.Error("config watcher start error", zap.Error(err))
		}
	}()

	return func() {
		w.Wait()
		w.Close()
	}
}
