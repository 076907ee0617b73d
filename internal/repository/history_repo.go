package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fyerfyer/card-gen-system/internal/database"
	"github.com/fyerfyer/card-gen-system/internal/models"
)

// historyRepository 历史记录仓储实现
type historyRepository struct {
	db *gorm.DB // 数据库连接
}

// NewHistoryRepository 创建历史记录仓储实例
func NewHistoryRepository() HistoryRepository {
	return &historyRepository{
		db: database.MustDB(),
	}
}

// NewHistoryRepositoryWithDB 使用指定的数据库连接创建历史记录仓储实例
func NewHistoryRepositoryWithDB(db *gorm.DB) HistoryRepository {
	if db == nil {
		db = database.MustDB()
	}
	return &historyRepository{db: db}
}

// SaveSourceFile 保存源文件记录
func (r *historyRepository) SaveSourceFile(file *models.SourceFile) error {
	if file.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	return r.db.Create(file).Error
}

// ListSourceFiles 列出会话的源文件记录
func (r *historyRepository) ListSourceFiles(sessionID string) ([]*models.SourceFile, error) {
	var files []*models.SourceFile
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindSourceByDigest 按内容摘要查找源文件记录
func (r *historyRepository) FindSourceByDigest(digest string) (*models.SourceFile, error) {
	var file models.SourceFile
	err := r.db.Where("digest = ?", digest).
		Order("created_at DESC").
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSourceFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// SaveDeckExport 保存导出记录
func (r *historyRepository) SaveDeckExport(export *models.DeckExport) error {
	if export.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	return r.db.Create(export).Error
}

// ListDeckExports 列出会话的导出记录，支持分页
func (r *historyRepository) ListDeckExports(sessionID string, offset, limit int) ([]*models.DeckExport, int64, error) {
	var exports []*models.DeckExport
	var total int64

	query := r.db.Model(&models.DeckExport{}).Where("session_id = ?", sessionID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&exports).Error
	if err != nil {
		return nil, 0, err
	}

	return exports, total, nil
}

// DeleteSessionHistory 删除会话的全部历史记录
func (r *historyRepository) DeleteSessionHistory(sessionID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.SourceFile{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).
			Delete(&models.DeckExport{}).Error
	})
}
