package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourceFile 源文件上传历史记录
// 记录每次提取的元数据，便于追溯与统计
type SourceFile struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`  // 主键ID
	SessionID   string         `gorm:"not null;index"`            // 所属会话ID
	Filename    string         `gorm:"not null"`                  // 原始文件名
	Kind        string         `gorm:"not null;type:varchar(20)"` // 文件类型：image, pdf
	StoragePath string         `gorm:"not null"`                  // 存储路径
	Digest      string         `gorm:"index;type:varchar(64)"`    // 内容SHA-256摘要
	Chars       int            `gorm:"not null;default:0"`        // 提取文本字符数
	Pages       int            `gorm:"not null;default:0"`        // PDF页数，图片为0
	CreatedAt   time.Time      `gorm:"not null"`                  // 创建时间
	Metadata    datatypes.JSON `gorm:"type:json"`                 // 元数据，JSON格式
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (sf *SourceFile) BeforeCreate(tx *gorm.DB) (err error) {
	if sf.CreatedAt.IsZero() {
		sf.CreatedAt = time.Now()
	}
	return nil
}

// TableName 明确指定表名
func (SourceFile) TableName() string {
	return "source_files"
}
