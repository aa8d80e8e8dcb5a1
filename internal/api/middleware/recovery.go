package middleware

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/petmall-backend/pkg/logger"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

// Recovery panic 恢复：记录完整现场并上报 Sentry（已初始化时），
// 对外只返回不含细节的 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
					hub.Recover(r)
				} else {
					sentry.CurrentHub().Recover(r)
				}
				response.InternalError(c, fmt.Errorf("panic: %v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
