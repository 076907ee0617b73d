package model

import (
	"time"

	"github.com/fyerfyer/card-gen-system/internal/anki"
	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/models"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`               // 响应状态码，0表示成功
	Message string      `json:"message"`            // 响应消息
	Data    interface{} `json:"data,omitempty"`     // 响应数据，可能为空
	TraceID string      `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) *Response {
	return &Response{
		Code:    code,
		Message: message,
	}
}

// SourceInfo 会话中单个源文件的摘要
type SourceInfo struct {
	Filename string `json:"filename"` // 原始文件名
	Kind     string `json:"kind"`     // 文件类型：image或pdf
	Chars    int    `json:"chars"`    // 提取文本字符数
}

// CardInfo 单张卡片
type CardInfo struct {
	Index int    `json:"index"` // 卡片下标
	Front string `json:"front"` // 问题面
	Back  string `json:"back"`  // 答案面
	Label string `json:"label"` // 列表展示用的简短标签
}

// ViewerInfo 卡片浏览器状态
type ViewerInfo struct {
	Index    int    `json:"index"`          // 当前卡片下标
	Total    int    `json:"total"`          // 卡片总数
	Revealed bool   `json:"revealed"`       // 是否已翻开答案面
	Front    string `json:"front"`          // 当前卡片问题面（HTML）
	Back     string `json:"back,omitempty"` // 当前卡片答案面（HTML），未翻开时为空
}

// SessionResponse 会话状态响应
type SessionResponse struct {
	SessionID  string       `json:"session_id"`       // 会话ID
	Sources    []SourceInfo `json:"sources"`          // 已提取的源文件
	TotalChars int          `json:"total_chars"`      // 所有源的字符总数
	Cards      []CardInfo   `json:"cards"`            // 当前草稿卡片
	Selected   []int        `json:"selected"`         // 被选中卡片的下标
	Viewer     *ViewerInfo  `json:"viewer,omitempty"` // 浏览器状态，无卡片时省略
}

// NewSessionResponse 把会话状态转换为响应结构
func NewSessionResponse(sess *session.Session) *SessionResponse {
	resp := &SessionResponse{
		SessionID:  sess.ID,
		Sources:    make([]SourceInfo, 0, len(sess.Sources)),
		TotalChars: sess.TotalChars(),
		Cards:      make([]CardInfo, 0, len(sess.Cards)),
		Selected:   sess.Selected,
	}
	if resp.Selected == nil {
		resp.Selected = []int{}
	}

	for _, src := range sess.Sources {
		resp.Sources = append(resp.Sources, SourceInfo{
			Filename: src.Filename,
			Kind:     string(src.Kind),
			Chars:    src.Chars,
		})
	}

	for i, card := range sess.Cards {
		resp.Cards = append(resp.Cards, CardInfo{
			Index: i,
			Front: card.Front,
			Back:  card.Back,
			Label: cards.FrontLabel(i+1, card, 50),
		})
	}

	if current := sess.CurrentCard(); current != nil {
		viewer := &ViewerInfo{
			Index:    sess.Viewer.Index,
			Total:    len(sess.Cards),
			Revealed: sess.Viewer.Revealed,
			Front:    cards.RenderHTML(current.Front),
		}
		if sess.Viewer.Revealed {
			viewer.Back = cards.RenderHTML(current.Back)
		}
		resp.Viewer = viewer
	}

	return resp
}

// UploadSourceResponse 源文件上传响应
type UploadSourceResponse struct {
	Session  *SessionResponse `json:"session"`  // 上传后的会话状态
	Filename string           `json:"filename"` // 原始文件名
	Chars    int              `json:"chars"`    // 本次提取的字符数
}

// ValidationInfo 卡片校验结果
type ValidationInfo struct {
	Valid        bool     `json:"valid"`         // 是否全部合格
	Total        int      `json:"total"`         // 卡片总数
	ValidCount   int      `json:"valid_count"`   // 合格卡片数
	InvalidCount int      `json:"invalid_count"` // 缺陷卡片数
	Errors       []string `json:"errors"`        // 缺陷描述列表
}

// NewValidationInfo 把校验结果转换为响应结构
func NewValidationInfo(result cards.ValidationResult) ValidationInfo {
	errs := result.Errors()
	if errs == nil {
		errs = []string{}
	}
	return ValidationInfo{
		Valid:        result.Valid,
		Total:        result.Total,
		ValidCount:   result.ValidCount,
		InvalidCount: result.InvalidCount,
		Errors:       errs,
	}
}

// GenerateCardsResponse 卡片生成响应
type GenerateCardsResponse struct {
	Session    *SessionResponse `json:"session"`    // 生成后的会话状态
	Validation ValidationInfo   `json:"validation"` // 草稿卡片的校验结果
	Preview    string           `json:"preview"`    // 前几张卡片的文本预览
}

// EnhanceObjectiveResponse 学习目标润色响应
type EnhanceObjectiveResponse struct {
	Objective string `json:"objective"` // 润色后的学习目标
}

// ExportDeckResponse 卡组导出响应
type ExportDeckResponse struct {
	FilePath  string `json:"file_path"`  // 生成的.apkg文件路径
	DeckName  string `json:"deck_name"`  // 卡组名称
	CardCount int    `json:"card_count"` // 卡片数量
}

// DeckCardInfo 卡组中的单张卡片
type DeckCardInfo struct {
	Front string `json:"front"` // 问题面
	Back  string `json:"back"`  // 答案面
}

// DeckResponse 卡组内容响应
type DeckResponse struct {
	DeckName  string         `json:"deck_name"`  // 卡组名称
	CardCount int            `json:"card_count"` // 卡片数量
	Cards     []DeckCardInfo `json:"cards"`      // 卡片列表
}

// NewDeckResponse 把解析出的卡组转换为响应结构
func NewDeckResponse(deck *anki.Deck) *DeckResponse {
	resp := &DeckResponse{
		DeckName:  deck.Name,
		CardCount: len(deck.Cards),
		Cards:     make([]DeckCardInfo, 0, len(deck.Cards)),
	}
	for _, card := range deck.Cards {
		resp.Cards = append(resp.Cards, DeckCardInfo{Front: card.Front, Back: card.Back})
	}
	return resp
}

// ImportDeckResponse JSON卡组导入响应
type ImportDeckResponse struct {
	Session  *SessionResponse `json:"session"`   // 导入后的会话状态
	DeckName string           `json:"deck_name"` // 导入的卡组名称
	Imported int              `json:"imported"`  // 导入的卡片数量
}

// PromptPresetInfo 预置学习目标
type PromptPresetInfo struct {
	Name        string `json:"name"`        // 预置名称
	Description string `json:"description"` // 提示词内容
}

// PromptsResponse 预置学习目标列表响应
type PromptsResponse struct {
	Presets []PromptPresetInfo `json:"presets"` // 预置列表
}

// ExportRecordInfo 历史导出记录
type ExportRecordInfo struct {
	DeckName  string    `json:"deck_name"`  // 卡组名称
	FilePath  string    `json:"file_path"`  // 文件路径
	CardCount int       `json:"card_count"` // 卡片数量
	Extended  bool      `json:"extended"`   // 是否为扩展导出
	CreatedAt time.Time `json:"created_at"` // 导出时间
}

// SourceRecordInfo 历史源文件记录
type SourceRecordInfo struct {
	Filename  string    `json:"filename"`   // 原始文件名
	Kind      string    `json:"kind"`       // 文件类型
	Chars     int       `json:"chars"`      // 提取字符数
	CreatedAt time.Time `json:"created_at"` // 上传时间
}

// HistoryResponse 会话历史响应
type HistoryResponse struct {
	Sources  []SourceRecordInfo `json:"sources"`   // 源文件记录
	Exports  []ExportRecordInfo `json:"exports"`   // 导出记录
	Total    int64              `json:"total"`     // 导出记录总数
	Page     int                `json:"page"`      // 当前页码
	PageSize int                `json:"page_size"` // 每页大小
}

// NewHistoryResponse 把历史记录转换为响应结构
func NewHistoryResponse(sources []*models.SourceFile, exports []*models.DeckExport, total int64, page, pageSize int) *HistoryResponse {
	resp := &HistoryResponse{
		Sources:  make([]SourceRecordInfo, 0, len(sources)),
		Exports:  make([]ExportRecordInfo, 0, len(exports)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, src := range sources {
		resp.Sources = append(resp.Sources, SourceRecordInfo{
			Filename:  src.Filename,
			Kind:      src.Kind,
			Chars:     src.Chars,
			CreatedAt: src.CreatedAt,
		})
	}
	for _, exp := range exports {
		resp.Exports = append(resp.Exports, ExportRecordInfo{
			DeckName:  exp.DeckName,
			FilePath:  exp.FilePath,
			CardCount: exp.CardCount,
			Extended:  exp.Extended,
			CreatedAt: exp.CreatedAt,
		})
	}
	return resp
}
