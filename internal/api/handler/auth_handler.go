package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/petmall-backend/internal/service"
	"github.com/d60-Lab/petmall-backend/pkg/response"
)

type loginRequest struct {
	Phone string `json:"phone" binding:"required,len=11"`
	Code  string `json:"code" binding:"required"`
}

type updateRoleRequest struct {
	OpenID string `json:"openid" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Login 手机号登录（验证码为演示用 mock）
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "手机号与验证码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, token, err := h.users.LoginWithPhone(c.Request.Context(), req.Phone)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":    token,
		"role":     user.Role,
		"openid":   user.OpenID,
		"userInfo": user,
	})
}

// Me 根据会话令牌返回当前用户
// @Summary 当前用户
// @Tags 认证
// @Param Authorization header string true "Bearer 令牌"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 401 {object} response.Response
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if token == "" {
		response.Unauthorized(c, "Unauthorized: Missing Identity")
		return
	}

	openid, err := h.users.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "Unauthorized: Invalid Token")
		return
	}
	user, err := h.users.GetUserByOpenID(c.Request.Context(), openid)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Forbidden(c, "Forbidden: User not registered")
		return
	}
	response.Success(c, user)
}

// UpdateUserRole 变更用户角色（仅 admin）
// @Summary 变更用户角色
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body updateRoleRequest true "openid 与目标角色"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/merchant/user/role [post]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	err := h.users.UpdateUserRole(c.Request.Context(), req.OpenID, req.Role)
	switch {
	case err == nil:
		response.Success(c, nil)
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		response.InternalError(c, err)
	}
}
