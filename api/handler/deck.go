package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/api/middleware"
	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/services"
)

// DeckHandler 处理卡组导出导入相关的API请求
type DeckHandler struct {
	deckService *services.DeckService // 卡组服务
	logger      *logrus.Logger        // 日志记录器
}

// NewDeckHandler 创建新的卡组处理器
func NewDeckHandler(deckService *services.DeckService) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		logger:      middleware.GetLogger(),
	}
}

// ExportDeck 把会话中被选中的卡片打包为.apkg
// POST /api/sessions/:id/export
func (h *DeckHandler) ExportDeck(c *gin.Context) {
	var uri model.SessionURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的会话ID"))
		return
	}

	// 请求体可以省略，此时使用默认卡组名称
	var req model.ExportDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	result, err := h.deckService.Export(uri.ID, req.DeckName)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": uri.ID,
			"deck_name":  req.DeckName,
			"error":      err.Error(),
		}).Error("Failed to export deck")

		middleware.HandleError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": uri.ID,
		"deck_name":  result.DeckName,
		"cards":      result.CardCount,
		"path":       result.FilePath,
	}).Info("Deck exported")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ExportDeckResponse{
		FilePath:  result.FilePath,
		DeckName:  result.DeckName,
		CardCount: result.CardCount,
	}))
}

// ReadDeck 解析上传的.apkg并返回卡片内容
// POST /api/decks/read
func (h *DeckHandler) ReadDeck(c *gin.Context) {
	var req model.DeckFileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "未提供卡组文件"))
		return
	}

	path, cleanup, err := h.saveUpload(c, req.File)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	deck, err := h.deckService.Read(path)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"filename": req.File.Filename,
			"error":    err.Error(),
		}).Warn("Failed to read deck file")

		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewDeckResponse(deck)))
}

// ExtendDeck 把会话中被选中的卡片追加到已有卡组
// POST /api/decks/extend
func (h *DeckHandler) ExtendDeck(c *gin.Context) {
	var req model.ExtendDeckRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	path, cleanup, err := h.saveUpload(c, req.File)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	result, err := h.deckService.Extend(req.SessionID, path, req.DeckName)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"filename":   req.File.Filename,
			"error":      err.Error(),
		}).Error("Failed to extend deck")

		middleware.HandleError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": req.SessionID,
		"deck_name":  result.DeckName,
		"cards":      result.CardCount,
	}).Info("Deck extended")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ExportDeckResponse{
		FilePath:  result.FilePath,
		DeckName:  result.DeckName,
		CardCount: result.CardCount,
	}))
}

// ImportDeck 从JSON文件导入卡组到会话
// POST /api/decks/import
func (h *DeckHandler) ImportDeck(c *gin.Context) {
	var req model.ImportDeckRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的请求参数"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "未提供JSON文件"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	sess, deck, err := h.deckService.ImportJSON(req.SessionID, data)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"error":      err.Error(),
		}).Warn("Failed to import deck from JSON")

		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "无效的JSON卡组文件"))
		return
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": req.SessionID,
		"deck_name":  deck.Name,
		"cards":      len(deck.Cards),
	}).Info("Deck imported from JSON")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.ImportDeckResponse{
		Session:  model.NewSessionResponse(sess),
		DeckName: deck.Name,
		Imported: len(deck.Cards),
	}))
}

// ExportDeckJSON 把上传的.apkg转换为JSON
// POST /api/decks/export-json
func (h *DeckHandler) ExportDeckJSON(c *gin.Context) {
	var req model.DeckFileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "未提供卡组文件"))
		return
	}

	path, cleanup, err := h.saveUpload(c, req.File)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer cleanup()

	jsonPath, err := h.deckService.ExportJSON(path)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"filename": req.File.Filename,
			"error":    err.Error(),
		}).Warn("Failed to export deck as JSON")

		middleware.HandleError(c, err)
		return
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

// saveUpload 把上传的文件保存到临时目录
// 返回文件路径和清理函数
func (h *DeckHandler) saveUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, func(), error) {
	dir, err := os.MkdirTemp("", "cardgen_upload_")
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(dir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}

	return path, func() { os.RemoveAll(dir) }, nil
}
