package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response 统一响应包装，code 为 0 表示成功
// 与小程序端约定保持一致：{code, errorMsg, data}
type Response struct {
	Code     int         `json:"code"`
	ErrorMsg string      `json:"errorMsg,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Data: data})
}

// BadRequest 参数类错误
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, ErrorMsg: msg})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, ErrorMsg: msg})
}

// Unauthorized 未认证（缺少身份）
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, ErrorMsg: msg})
}

// Forbidden 已认证但无权限
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Response{Code: http.StatusForbidden, ErrorMsg: msg})
}

// InternalError 内部错误，对外不暴露细节
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err) // 交给日志中间件记录
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, ErrorMsg: "internal server error"})
}

// BindError 绑定/校验失败响应，字段错误格式化为 "field: tag; ..."
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var sb strings.Builder
		for _, fe := range verrs {
			sb.WriteString(fe.Field())
			sb.WriteString(": ")
			sb.WriteString(fe.Tag())
			sb.WriteString("; ")
		}
		BadRequest(c, sb.String())
		return
	}
	BadRequest(c, err.Error())
}
