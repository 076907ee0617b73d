package repository

import "github.com/fyerfyer/card-gen-system/internal/models"

// HistoryRepository 历史记录仓储接口
// 负责源文件与牌组导出元数据的存储和检索
type HistoryRepository interface {
	// SaveSourceFile 保存源文件记录
	SaveSourceFile(file *models.SourceFile) error

	// ListSourceFiles 列出会话的源文件记录
	ListSourceFiles(sessionID string) ([]*models.SourceFile, error)

	// FindSourceByDigest 按内容摘要查找源文件记录
	FindSourceByDigest(digest string) (*models.SourceFile, error)

	// SaveDeckExport 保存导出记录
	SaveDeckExport(export *models.DeckExport) error

	// ListDeckExports 列出会话的导出记录，支持分页
	ListDeckExports(sessionID string, offset, limit int) ([]*models.DeckExport, int64, error)

	// DeleteSessionHistory 删除会话的全部历史记录
	DeleteSessionHistory(sessionID string) error
}
