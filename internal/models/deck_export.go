package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeckExport 牌组导出历史记录
// 只保留导出元数据，卡片内容不落库
type DeckExport struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"` // 主键ID
	SessionID string         `gorm:"not null;index"`           // 所属会话ID
	DeckName  string         `gorm:"not null"`                 // 牌组名称
	FilePath  string         `gorm:"not null"`                 // 导出文件路径
	CardCount int            `gorm:"not null;default:0"`       // 卡片数量
	Extended  bool           `gorm:"not null;default:false"`   // 是否为扩展已有牌组
	CreatedAt time.Time      `gorm:"not null"`                 // 创建时间
	Metadata  datatypes.JSON `gorm:"type:json"`                // 元数据，JSON格式
}

// BeforeCreate GORM的钩子函数，创建记录前自动设置时间
func (de *DeckExport) BeforeCreate(tx *gorm.DB) (err error) {
	if de.CreatedAt.IsZero() {
		de.CreatedAt = time.Now()
	}
	return nil
}

// TableName 明确指定表名
func (DeckExport) TableName() string {
	return "deck_exports"
}
