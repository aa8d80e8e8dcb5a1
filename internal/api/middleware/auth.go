package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/petmall-backend/internal/model"
	"github.com/d60-Lab/petmall-backend/internal/service"
	"github.com/d60-Lab/petmall-backend/pkg/logger"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

const (
	// HeaderOpenID 微信云托管网关注入的身份头
	HeaderOpenID = "x-wx-openid"
	// HeaderDebugOpenID 本地调试身份头，仅在配置显式放行时生效
	HeaderDebugOpenID = "X-Debug-OpenId"

	// CtxOpenID / CtxUser 鉴权通过后写入 gin context，下游无需重新解析
	CtxOpenID = "openid"
	CtxUser   = "user"
)

// RequireMerchant 商家端鉴权：挂载在受保护路由组上
// 身份头缺失返回 401；未注册或角色不足返回 403
// 每个请求只做一次身份查询，结果不跨请求缓存（角色可能随时变更）
func RequireMerchant(users service.UserService, allowDebugHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		openid := c.GetHeader(HeaderOpenID)
		if openid == "" && allowDebugHeader {
			openid = c.GetHeader(HeaderDebugOpenID)
		}

		if openid == "" {
			logger.L().Warn("unauthorized access attempt: missing openid",
				zap.String("path", path))
			response.Unauthorized(c, "Unauthorized: Missing Identity")
			c.Abort()
			return
		}

		user, err := users.GetUserByOpenID(c.Request.Context(), openid)
		if err != nil {
			response.InternalError(c, err)
			c.Abort()
			return
		}
		if user == nil {
			logger.L().Warn("forbidden access attempt: user not registered",
				zap.String("path", path), zap.String("openid", openid))
			response.Forbidden(c, "Forbidden: User not registered")
			c.Abort()
			return
		}

		if user.Role != model.RoleMerchant && user.Role != model.RoleAdmin {
			logger.L().Warn("forbidden access attempt: insufficient role",
				zap.String("path", path), zap.String("openid", openid), zap.String("role", string(user.Role)))
			response.Forbidden(c, "Forbidden: Insufficient Permissions")
			c.Abort()
			return
		}

		c.Set(CtxOpenID, openid)
		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireAdmin 管理端鉴权：在商家鉴权结果之上进一步收紧到 admin
// 必须挂载在 RequireMerchant 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUser)
		if !ok {
			response.Forbidden(c, "Forbidden: Insufficient Permissions")
			c.Abort()
			return
		}
		user := v.(*model.User)
		if user.Role != model.RoleAdmin {
			response.Forbidden(c, "Forbidden: Insufficient Permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
