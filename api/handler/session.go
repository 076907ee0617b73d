package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/api/middleware"
	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/repository"
	"github.com/fyerfyer/card-gen-system/internal/services"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// SessionHandler 处理会话相关的API请求
type SessionHandler struct {
	sessions      *session.Store               // 会话存取器
	sourceService *services.SourceService      // 源文件服务
	history       repository.HistoryRepository // 历史记录仓库，可为空
	logger        *logrus.Logger               // 日志记录器
}

// NewSessionHandler 创建新的会话处理器
func NewSessionHandler(sessions *session.Store, sourceService *services.SourceService, history repository.HistoryRepository) *SessionHandler {
	return &SessionHandler{
		sessions:      sessions,
		sourceService: sourceService,
		history:       history,
		logger:        middleware.GetLogger(),
	}
}

// CreateSession 创建新会话
// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess, err := h.sessions.Create()
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create session")
		middleware.HandleError(c, err)
		return
	}

	h.logger.WithField("session_id", sess.ID).Info("Session created")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSessionResponse(sess)))
}

// GetSession 获取会话状态
// GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	var req model.SessionURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	sess, err := h.sessions.Get(req.ID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSessionResponse(sess)))
}

// ClearSources 清空会话的所有源和卡片
// DELETE /api/sessions/:id/sources
func (h *SessionHandler) ClearSources(c *gin.Context) {
	var req model.SessionURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	sess, err := h.sourceService.ClearSources(req.ID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	h.logger.WithField("session_id", req.ID).Info("Session sources cleared")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSessionResponse(sess)))
}

// GetHistory 获取会话的上传与导出历史
// GET /api/sessions/:id/history
func (h *SessionHandler) GetHistory(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.HistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的查询参数"))
		return
	}

	if h.history == nil {
		c.JSON(http.StatusOK, model.NewSuccessResponse(
			model.NewHistoryResponse(nil, nil, 0, req.GetPage(), req.GetPageSize())))
		return
	}

	sources, err := h.history.ListSourceFiles(uri.ID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"error":      err.Error(),
		}).Error("Failed to list source history")
		middleware.HandleError(c, err)
		return
	}

	offset := (req.GetPage() - 1) * req.GetPageSize()
	exports, total, err := h.history.ListDeckExports(uri.ID, offset, req.GetPageSize())
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"error":      err.Error(),
		}).Error("Failed to list export history")
		middleware.HandleError(c, err)
		return
	}

	resp := model.NewHistoryResponse(sources, exports, total, req.GetPage(), req.GetPageSize())
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}
