package model

import (
	"mime/multipart"
)

// SessionURIRequest 会话路径参数
type SessionURIRequest struct {
	ID string `uri:"id" binding:"required"` // 会话ID
}

// SourceUploadRequest 源文件上传请求
type SourceUploadRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"` // 图片或PDF文件
}

// GenerateCardsRequest 卡片生成请求
type GenerateCardsRequest struct {
	Objective string `json:"objective" binding:"required,notblank"`     // 学习目标
	Count     int    `json:"count" binding:"omitempty,min=1,max=50"`    // 目标卡片数量，默认10
	Mode      string `json:"mode" binding:"omitempty,oneof=all latest"` // 取材范围：all=全部源，latest=最近一个源
}

// EnhanceObjectiveRequest 学习目标润色请求
type EnhanceObjectiveRequest struct {
	Objective string `json:"objective" binding:"required,notblank"` // 待润色的学习目标
}

// SelectionRequest 卡片选择更新请求
type SelectionRequest struct {
	Indices []int `json:"indices" binding:"required"` // 被选中卡片的下标，可以为空数组
}

// ViewerRequest 卡片浏览器操作请求
type ViewerRequest struct {
	Action string `json:"action" binding:"required,oneof=next prev jump flip"` // 浏览器动作
	Index  int    `json:"index" binding:"omitempty,min=0"`                     // jump动作的目标下标
}

// ExportDeckRequest 卡组导出请求
type ExportDeckRequest struct {
	DeckName string `json:"deck_name" binding:"omitempty"` // 卡组名称，为空时使用默认名称
}

// DeckFileRequest 已有卡组文件请求
type DeckFileRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"` // .apkg文件
}

// ExtendDeckRequest 卡组扩展请求
type ExtendDeckRequest struct {
	File      *multipart.FileHeader `form:"file" binding:"required"`       // 已有的.apkg文件
	SessionID string                `form:"session_id" binding:"required"` // 提供新卡片的会话ID
	DeckName  string                `form:"deck_name" binding:"omitempty"` // 新卡组名称，为空时沿用原名
}

// ImportDeckRequest JSON卡组导入请求
type ImportDeckRequest struct {
	SessionID string `form:"session_id" binding:"required"` // 接收卡片的会话ID
}

// HistoryListRequest 会话历史列表请求
type HistoryListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`      // 页码，从1开始
	PageSize int `form:"page_size" binding:"omitempty,min=1"` // 每页记录数
}

// GetPage 获取页码，默认为1
func (r *HistoryListRequest) GetPage() int {
	if r.Page <= 0 {
		return 1
	}
	return r.Page
}

// GetPageSize 获取每页记录数，默认为20，最大为100
func (r *HistoryListRequest) GetPageSize() int {
	if r.PageSize <= 0 {
		return 20
	}
	if r.PageSize > 100 {
		return 100
	}
	return r.PageSize
}
