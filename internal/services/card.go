package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/gemini"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// 默认生成卡片数量
const defaultCardCount = 10

var (
	// ErrNoSources 会话中没有可用的源文本
	ErrNoSources = errors.New("no extracted text available, upload a source first")

	// ErrNoObjective 学习目标为空
	ErrNoObjective = errors.New("learning objective cannot be empty")

	// ErrInvalidCards 生成的卡片未通过校验
	ErrInvalidCards = errors.New("generated cards failed validation")
)

// CardService 卡片生成服务
// 负责调用生成模型、解析响应并维护会话中的草稿卡片
type CardService struct {
	client   gemini.Client  // 生成模型客户端
	sessions *session.Store // 会话存取器
	logger   *logrus.Logger // 日志记录器
}

// NewCardService 创建卡片生成服务实例
func NewCardService(client gemini.Client, sessions *session.Store) *CardService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &CardService{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// GenerateResult 一次生成的结果
type GenerateResult struct {
	Session    *session.Session       // 更新后的会话
	Validation cards.ValidationResult // 校验结果
	Preview    string                 // 卡片文本预览
}

// GenerateFromAll 基于会话中全部源文本生成卡片
// 生成结果替换当前草稿并默认全选；校验失败时不改动会话
func (s *CardService) GenerateFromAll(ctx context.Context, sessionID string, objective string, count int) (*GenerateResult, error) {
	return s.generate(ctx, sessionID, objective, count, false)
}

// GenerateFromLatest 只基于最近上传的源生成卡片并追加到现有草稿
func (s *CardService) GenerateFromLatest(ctx context.Context, sessionID string, objective string, count int) (*GenerateResult, error) {
	return s.generate(ctx, sessionID, objective, count, true)
}

func (s *CardService) generate(ctx context.Context, sessionID string, objective string, count int, latestOnly bool) (*GenerateResult, error) {
	if strings.TrimSpace(objective) == "" {
		return nil, ErrNoObjective
	}
	if count <= 0 {
		count = defaultCardCount
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var sourceText string
	if latestOnly {
		latest := sess.LatestSource()
		if latest == nil {
			return nil, ErrNoSources
		}
		sourceText = latest.Text
	} else {
		sourceText = sess.CombinedText()
	}

	if strings.TrimSpace(sourceText) == "" {
		return nil, ErrNoSources
	}

	prompt := cards.BuildGenerationPrompt(sourceText, objective, count)
	response, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Card generation request failed")
		return nil, err
	}

	drafts := cards.ParseResponse(response)
	validation := cards.Validate(drafts)

	if !validation.Valid {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"total":      validation.Total,
			"invalid":    validation.InvalidCount,
		}).Warn("Generated cards failed validation")
		// 校验失败的草稿不进入会话
		return &GenerateResult{Session: sess, Validation: validation}, ErrInvalidCards
	}

	sess, err = s.sessions.Update(sessionID, func(sess *session.Session) error {
		if latestOnly {
			sess.AppendCards(drafts)
		} else {
			sess.ReplaceCards(drafts)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"cards":       len(drafts),
		"latest_only": latestOnly,
	}).Info("Cards generated")

	return &GenerateResult{
		Session:    sess,
		Validation: validation,
		Preview:    cards.Preview(drafts, 3),
	}, nil
}

// EnhanceObjective 请求模型细化学习目标
// 任何失败都回退到用户原始目标，不返回错误
func (s *CardService) EnhanceObjective(ctx context.Context, sessionID string, objective string) string {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return objective
	}

	combined := sess.CombinedText()
	if strings.TrimSpace(combined) == "" {
		return objective
	}

	prompt := cards.BuildEnhancePrompt(combined, objective)
	enhanced, err := s.client.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(enhanced) == "" {
		return objective
	}
	return enhanced
}

// Preview 生成会话中当前草稿的文本预览
func (s *CardService) Preview(sessionID string, maxPreview int) (string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}
	return cards.Preview(sess.Cards, maxPreview), nil
}
