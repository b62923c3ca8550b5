package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/ivywong/webwriter/pkg/app"
	"github.com/ivywong/webwriter/pkg/code"
	"github.com/ivywong/webwriter/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}

			var errorMsg string
			switch v := err.(type) {
			case string:
				errorMsg = v
			case error:
				errorMsg = v.Error()
			default:
				errorMsg = fmt.Sprintf("%v", v)
			}

			lg.Error("Recovered from panic",
				zap.String(logger.FieldPath, c.Request.URL.Path),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("panic_value", errorMsg),
				zap.String("stack", string(debug.Stack())),
			)

			// 返回统一的错误响应
			app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
			c.Abort()
		}()

		c.Next()
	}
}
