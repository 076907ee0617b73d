package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/internal/extract"
	"github.com/fyerfyer/card-gen-system/internal/models"
	"github.com/fyerfyer/card-gen-system/internal/repository"
	"github.com/fyerfyer/card-gen-system/internal/session"
	"github.com/fyerfyer/card-gen-system/pkg/storage"
)

// ErrNoFilename 上传时缺少文件名
var ErrNoFilename = errors.New("filename cannot be empty")

// SourceService 源文件服务
// 负责上传、提取文本并把结果挂到会话上
type SourceService struct {
	storage   storage.Storage              // 文件存储
	extractor *extract.Extractor           // 文本提取器
	sessions  *session.Store               // 会话存取器
	history   repository.HistoryRepository // 历史记录仓储，可选
	logger    *logrus.Logger               // 日志记录器
}

// SourceOption 源文件服务配置选项
type SourceOption func(*SourceService)

// WithSourceHistory 设置历史记录仓储
func WithSourceHistory(repo repository.HistoryRepository) SourceOption {
	return func(s *SourceService) {
		s.history = repo
	}
}

// WithSourceLogger 设置日志记录器
func WithSourceLogger(logger *logrus.Logger) SourceOption {
	return func(s *SourceService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSourceService 创建源文件服务实例
func NewSourceService(
	store storage.Storage,
	extractor *extract.Extractor,
	sessions *session.Store,
	opts ...SourceOption,
) *SourceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	service := &SourceService{
		storage:   store,
		extractor: extractor,
		sessions:  sessions,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Upload 上传源文件，提取文本并追加到会话
func (s *SourceService) Upload(ctx context.Context, sessionID string, reader io.Reader, filename string) (*session.Session, error) {
	if filename == "" {
		return nil, ErrNoFilename
	}

	// 先保存，再提取；提取失败时文件保留，便于排查
	info, err := s.storage.Save(reader, filename)
	if err != nil {
		return nil, err
	}

	tmpPath, err := storage.FetchToTemp(s.storage, info.ID, filename)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(filepath.Dir(tmpPath))

	result, err := s.extractor.Extract(ctx, tmpPath)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"filename":   filename,
			"error":      err.Error(),
		}).Error("Failed to extract text from uploaded source")
		return nil, err
	}

	sess, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		sess.AddSource(session.Source{
			Filename: filename,
			Kind:     result.Kind,
			Chars:    result.Chars,
			Text:     result.Text,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordSourceFile(sessionID, filename, info.Path, result)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"filename":   filename,
		"kind":       string(result.Kind),
		"chars":      result.Chars,
		"from_cache": result.FromCache,
	}).Info("Source file processed")

	return sess, nil
}

// ClearSources 原子清空会话的所有源与卡片
func (s *SourceService) ClearSources(sessionID string) (*session.Session, error) {
	return s.sessions.Update(sessionID, func(sess *session.Session) error {
		sess.Clear()
		return nil
	})
}

// recordSourceFile 写入源文件历史记录，失败只记日志
func (s *SourceService) recordSourceFile(sessionID, filename, storagePath string, result *extract.Result) {
	if s.history == nil {
		return
	}

	record := &models.SourceFile{
		SessionID:   sessionID,
		Filename:    filename,
		Kind:        string(result.Kind),
		StoragePath: storagePath,
		Digest:      result.Digest,
		Chars:       result.Chars,
		Pages:       result.Pages,
	}
	if err := s.history.SaveSourceFile(record); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"filename":   filename,
			"error":      err.Error(),
		}).Warn("Failed to record source file history")
	}
}
