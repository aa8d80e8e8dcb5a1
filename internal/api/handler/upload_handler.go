package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/petmall-backend/pkg/response"
)

// Upload 文件上传：uuid 重命名后落盘，返回可访问的相对路径
// @Summary 上传文件
// @Tags 上传
// @Accept multipart/form-data
// @Param file formData file true "文件"
// @Success 200 {object} response.Response{data=string}
// @Failure 400 {object} response.Response
// @Router /api/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dir := h.cfg.Upload.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, "/uploads/"+name)
}
