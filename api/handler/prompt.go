package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/cards"
)

// PromptHandler 处理预置学习目标相关的API请求
type PromptHandler struct{}

// NewPromptHandler 创建新的预置目标处理器
func NewPromptHandler() *PromptHandler {
	return &PromptHandler{}
}

// ListPrompts 列出所有预置学习目标
// GET /api/prompts
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	presets := cards.ObjectivePresets()

	resp := model.PromptsResponse{
		Presets: make([]model.PromptPresetInfo, 0, len(presets)),
	}
	for _, preset := range presets {
		resp.Presets = append(resp.Presets, model.PromptPresetInfo{
			Name:        preset.Name,
			Description: preset.Description,
		})
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(resp))
}
