package routers

import (
	"net/http"
	"net/http/pprof"

	"github.com/ivywong/webwriter/internal/app"
	"github.com/ivywong/webwriter/internal/middleware"
	"github.com/ivywong/webwriter/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultPrefix url prefix of pprof
	DefaultPrefix = "/debug/pprof"
)

// NewPrivateRouter creates the private router: metrics, health and read-only store views
// NewPrivateRouter 创建私有路由：监控、健康检查与只读的存储视图
func NewPrivateRouter(a *app.App) *gin.Engine {
	runMode := a.Config().Server.RunMode
	lg := a.Logger().Named("http")

	r := gin.New()
	if runMode == "debug" {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(lg))
	}
	r.Use(middleware.AppInfoWithConfig(app.Name, a.Version().Version))
	r.NoRoute(middleware.NoFound())

	// prom监控
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := api_router.NewHealthHandler(a)
	r.GET("/healthz", healthHandler.Check)

	spaceHandler := api_router.NewSpaceHandler(a)
	api := r.Group("/api")
	{
		api.Use(middleware.AccessLogWithLogger(lg))

		api.GET("/spaces", spaceHandler.List)
		api.GET("/spaces/:id", spaceHandler.Get)
		api.GET("/spaces/:id/cards", spaceHandler.Cards)
		api.GET("/history", spaceHandler.History)
	}

	if runMode == "debug" {
		p := r.Group(DefaultPrefix)
		{
			p.GET("/", pprofHandler(pprof.Index))
			p.GET("/cmdline", pprofHandler(pprof.Cmdline))
			p.GET("/profile", pprofHandler(pprof.Profile))
			p.GET("/symbol", pprofHandler(pprof.Symbol))
			p.GET("/trace", pprofHandler(pprof.Trace))
			p.GET("/heap", pprofHandler(pprof.Handler("heap").ServeHTTP))
			p.GET("/goroutine", pprofHandler(pprof.Handler("goroutine").ServeHTTP))
		}
	}

	return r
}

func pprofHandler(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
