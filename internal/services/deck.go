package services

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/internal/anki"
	"github.com/fyerfyer/card-gen-system/internal/models"
	"github.com/fyerfyer/card-gen-system/internal/repository"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// 新生成卡片写入Source字段的默认来源说明
const generatedSourceInfo = "Generated from image using Gemini AI"

// DeckService 牌组服务
// 负责把会话中选中的卡片打包为.apkg，以及读取和扩展已有牌组
type DeckService struct {
	packager *anki.Packager               // 牌组打包器
	sessions *session.Store               // 会话存取器
	history  repository.HistoryRepository // 历史记录仓储，可选
	logger   *logrus.Logger               // 日志记录器
}

// DeckOption 牌组服务配置选项
type DeckOption func(*DeckService)

// WithDeckHistory 设置历史记录仓储
func WithDeckHistory(repo repository.HistoryRepository) DeckOption {
	return func(s *DeckService) {
		s.history = repo
	}
}

// NewDeckService 创建牌组服务实例
func NewDeckService(packager *anki.Packager, sessions *session.Store, opts ...DeckOption) *DeckService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	service := &DeckService{
		packager: packager,
		sessions: sessions,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// ExportResult 牌组导出结果
type ExportResult struct {
	FilePath  string // 导出文件路径
	DeckName  string // 牌组名称
	CardCount int    // 打包的卡片数量
}

// Export 把会话中选中的卡片导出为.apkg牌组
// 没有任何选择时导出全部卡片
func (s *DeckService) Export(sessionID string, deckName string) (*ExportResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	selected := sess.SelectedCards()
	if len(selected) == 0 {
		return nil, anki.ErrEmptyDeck
	}

	if strings.TrimSpace(deckName) == "" {
		deckName = anki.DefaultDeckName
	}

	path, err := s.packager.CreateDeck(selected, deckName, generatedSourceInfo)
	if err != nil {
		return nil, err
	}

	s.recordExport(sessionID, deckName, path, len(selected), false)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"deck_name":  deckName,
		"cards":      len(selected),
	}).Info("Deck exported")

	return &ExportResult{
		FilePath:  path,
		DeckName:  deckName,
		CardCount: len(selected),
	}, nil
}

// Extend 读取已有牌组并追加会话中选中的卡片
// 已有卡片排在新卡片前面
func (s *DeckService) Extend(sessionID string, existingDeckPath string, deckName string) (*ExportResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	existing, err := anki.ReadDeck(existingDeckPath)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(deckName) == "" {
		deckName = existing.Name
	}

	fresh := sess.SelectedCards()
	path, err := s.packager.ExtendDeck(existing.Cards, fresh, deckName, generatedSourceInfo)
	if err != nil {
		return nil, err
	}

	total := len(existing.Cards) + len(fresh)
	s.recordExport(sessionID, deckName, path, total, true)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"deck_name":  deckName,
		"existing":   len(existing.Cards),
		"added":      len(fresh),
	}).Info("Deck extended")

	return &ExportResult{
		FilePath:  path,
		DeckName:  deckName,
		CardCount: total,
	}, nil
}

// Read 读取牌组文件内容
func (s *DeckService) Read(deckPath string) (*anki.Deck, error) {
	return anki.ReadDeck(deckPath)
}

// ExportJSON 把牌组文件导出为JSON
func (s *DeckService) ExportJSON(deckPath string) (string, error) {
	return anki.ExportJSON(deckPath, "")
}

// ImportJSON 从JSON数据导入牌组到会话
// 导入的卡片替换当前草稿并默认全选
func (s *DeckService) ImportJSON(sessionID string, data []byte) (*session.Session, *anki.Deck, error) {
	deck, err := anki.DecodeJSON(data)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		sess.ReplaceCards(deck.Cards)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return sess, deck, nil
}

// recordExport 写入导出历史记录，失败只记日志
func (s *DeckService) recordExport(sessionID, deckName, path string, count int, extended bool) {
	if s.history == nil {
		return
	}

	record := &models.DeckExport{
		SessionID: sessionID,
		DeckName:  deckName,
		FilePath:  path,
		CardCount: count,
		Extended:  extended,
	}
	if err := s.history.SaveDeckExport(record); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"deck_name":  deckName,
			"error":      err.Error(),
		}).Warn("Failed to record deck export history")
	}
}
