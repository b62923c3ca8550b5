package api_router

import (
	"time"

	"github.com/ivywong/webwriter/internal/app"
	pkgapp "github.com/ivywong/webwriter/pkg/app"
	"github.com/ivywong/webwriter/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string  `json:"status"`              // "healthy" 或 "unhealthy"
	Version   string  `json:"version"`             // 服务版本号
	Uptime    float64 `json:"uptime"`              // 运行时间（秒）
	Storage   string  `json:"storage"`             // 存储类型
	SaveError string  `json:"saveError,omitempty"` // 最近一次写入失败
}

// Check 健康检查接口，最近一次写入失败时返回 unhealthy
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:  "healthy",
		Version: h.App.Version().Version,
		Uptime:  time.Since(h.App.StartTime).Seconds(),
		Storage: h.App.Config().Storage.Type,
	}

	if err := h.App.Store.LastSaveError(); err != nil {
		response.Status = "unhealthy"
		response.SaveError = err.Error()
		pkgapp.NewResponse(c).ToResponse(code.ErrorStorageWrite.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
