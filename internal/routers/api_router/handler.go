// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/ivywong/webwriter/internal/app"
	pkgapp "github.com/ivywong/webwriter/pkg/app"
	"github.com/ivywong/webwriter/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// fail 输出错误响应，非 code.Code 错误视为内部错误
func fail(c *gin.Context, err error) {
	var ce *code.Code
	if errors.As(err, &ce) {
		pkgapp.NewResponse(c).ToResponse(ce)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}
