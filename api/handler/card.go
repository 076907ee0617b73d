package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/api/middleware"
	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/services"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// CardHandler 处理卡片生成与浏览相关的API请求
type CardHandler struct {
	cardService *services.CardService // 卡片服务
	sessions    *session.Store        // 会话存取器
	logger      *logrus.Logger        // 日志记录器
}

// NewCardHandler 创建新的卡片处理器
func NewCardHandler(cardService *services.CardService, sessions *session.Store) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		sessions:    sessions,
		logger:      middleware.GetLogger(),
	}
}

// GenerateCards 根据学习目标生成卡片
// POST /api/sessions/:id/cards
func (h *CardHandler) GenerateCards(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.GenerateCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"error":      err.Error(),
		}).Warn("Invalid card generation request")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	var (
		result *services.GenerateResult
		err    error
	)
	if req.Mode == "latest" {
		result, err = h.cardService.GenerateFromLatest(c.Request.Context(), uri.ID, req.Objective, req.Count)
	} else {
		result, err = h.cardService.GenerateFromAll(c.Request.Context(), uri.ID, req.Objective, req.Count)
	}

	if err != nil {
		// 校验不通过时返回422，并附上缺陷明细供用户修正
		if errors.Is(err, services.ErrInvalidCards) && result != nil {
			resp := model.GenerateCardsResponse{
				Session:    model.NewSessionResponse(result.Session),
				Validation: model.NewValidationInfo(result.Validation),
				Preview:    result.Preview,
			}
			c.JSON(http.StatusUnprocessableEntity, &model.Response{
				Code:    http.StatusUnprocessableEntity,
				Message: "generated cards failed validation",
				Data:    resp,
			})
			return
		}

		if errors.Is(err, services.ErrNoSources) || errors.Is(err, services.ErrNoObjective) {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}

		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"error":      err.Error(),
		}).Error("Failed to generate cards")

		middleware.HandleError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": uri.ID,
		"cards":      result.Validation.Total,
	}).Info("Cards generated")

	resp := model.GenerateCardsResponse{
		Session:    model.NewSessionResponse(result.Session),
		Validation: model.NewValidationInfo(result.Validation),
		Preview:    result.Preview,
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}

// ListCards 列出会话中的卡片与选择状态
// GET /api/sessions/:id/cards
func (h *CardHandler) ListCards(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	sess, err := h.sessions.Get(uri.ID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp := model.GenerateCardsResponse{
		Session:    model.NewSessionResponse(sess),
		Validation: model.NewValidationInfo(cards.Validate(sess.Cards)),
		Preview:    cards.Preview(sess.Cards, 3),
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}

// UpdateSelection 更新被选中卡片的下标
// PUT /api/sessions/:id/selection
func (h *CardHandler) UpdateSelection(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	sess, err := h.sessions.Update(uri.ID, func(sess *session.Session) error {
		sess.SetSelection(req.Indices)
		return nil
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSessionResponse(sess)))
}

// ViewerAction 卡片浏览器状态转移
// POST /api/sessions/:id/viewer
func (h *CardHandler) ViewerAction(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.ViewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的浏览器操作"))
		return
	}

	sess, err := h.sessions.Update(uri.ID, func(sess *session.Session) error {
		switch req.Action {
		case "next":
			sess.ViewerNext()
		case "prev":
			sess.ViewerPrev()
		case "jump":
			sess.ViewerJumpTo(req.Index)
		case "flip":
			sess.ViewerToggleReveal()
		}
		return nil
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSessionResponse(sess)))
}

// EnhanceObjective 用AI润色学习目标
// POST /api/sessions/:id/enhance
func (h *CardHandler) EnhanceObjective(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	var req model.EnhanceObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	enhanced := h.cardService.EnhanceObjective(c.Request.Context(), uri.ID, req.Objective)

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.EnhanceObjectiveResponse{
		Objective: enhanced,
	}))
}
