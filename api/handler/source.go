package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/api/middleware"
	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/extract"
	"github.com/fyerfyer/card-gen-system/internal/services"
)

// SourceHandler 处理源文件上传相关的API请求
type SourceHandler struct {
	sourceService *services.SourceService // 源文件服务
	logger        *logrus.Logger          // 日志记录器
}

// NewSourceHandler 创建新的源文件处理器
func NewSourceHandler(sourceService *services.SourceService) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
		logger:        middleware.GetLogger(),
	}
}

// UploadSource 上传图片或PDF并提取文本
// POST /api/sessions/:id/sources
func (h *SourceHandler) UploadSource(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.SourceUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"error":      err.Error(),
		}).Warn("Invalid source upload request")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "未提供文件"))
		return
	}

	filename := sanitizeFilename(req.File.Filename)
	if extract.DetectKind(filename) == extract.KindUnknown {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			"不支持的文件类型，仅支持图片和PDF",
		))
		return
	}

	file, err := req.File.Open()
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"filename":   filename,
			"error":      err.Error(),
		}).Error("Failed to open uploaded file")

		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"无法打开上传的文件",
		))
		return
	}
	defer file.Close()

	sess, err := h.sourceService.Upload(c.Request.Context(), uri.ID, file, filename)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"filename":   filename,
			"error":      err.Error(),
		}).Error("Failed to process uploaded source")

		middleware.HandleError(c, err)
		return
	}

	latest := sess.LatestSource()

	h.logger.WithFields(logrus.Fields{
		"session_id": uri.ID,
		"filename":   filename,
		"chars":      latest.Chars,
	}).Info("Source uploaded and extracted")

	resp := model.UploadSourceResponse{
		Session:  model.NewSessionResponse(sess),
		Filename: filename,
		Chars:    latest.Chars,
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}

// sanitizeFilename 去除文件名中的路径成分
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.TrimSpace(name)
}
