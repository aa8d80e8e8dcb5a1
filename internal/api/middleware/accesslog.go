package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/petmall-backend/pkg/logger"
)

// slowRequestThreshold 超过该耗时的请求按 Warn 记录
const slowRequestThreshold = 500 * time.Millisecond

// AccessLog 请求日志，带慢请求告警
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", elapsed),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case len(c.Errors) > 0:
			logger.L().Error("request failed", fields...)
		case elapsed > slowRequestThreshold:
			logger.L().Warn("slow request", fields...)
		default:
			logger.L().Info("request", fields...)
		}
	}
}
