package cards

import (
	"fmt"
	"strings"
)

// DefectReason 卡片缺陷原因标签
type DefectReason string

const (
	// DefectNoCards 输入序列为空
	DefectNoCards DefectReason = "no-cards"
	// DefectNotARecord 不是合法的卡片记录（字段缺失或类型错误）
	DefectNotARecord DefectReason = "not-a-record"
	// DefectEmptyFront 问题面为空
	DefectEmptyFront DefectReason = "empty-front"
	// DefectEmptyBack 答案面为空
	DefectEmptyBack DefectReason = "empty-back"
)

// Defect 单张卡片的缺陷描述
type Defect struct {
	Position int          `json:"position"` // 卡片位置，从1开始；0表示整体缺陷
	Reason   DefectReason `json:"reason"`   // 缺陷原因标签
}

// String 生成人类可读的缺陷描述
func (d Defect) String() string {
	switch d.Reason {
	case DefectNoCards:
		return "no cards provided"
	case DefectNotARecord:
		return fmt.Sprintf("Card %d: not a valid card record", d.Position)
	case DefectEmptyFront:
		return fmt.Sprintf("Card %d: missing or empty front", d.Position)
	case DefectEmptyBack:
		return fmt.Sprintf("Card %d: missing or empty back", d.Position)
	default:
		return fmt.Sprintf("Card %d: %s", d.Position, string(d.Reason))
	}
}

// ValidationResult 卡片序列的校验结果
// 纯报告结构，校验器本身没有阻止导出的权力，是否拦截由调用方决定
type ValidationResult struct {
	Valid        bool     `json:"valid"`         // 缺陷列表为空时为true
	Total        int      `json:"total"`         // 卡片总数
	ValidCount   int      `json:"valid_count"`   // 合格卡片数
	InvalidCount int      `json:"invalid_count"` // 缺陷卡片数
	Defects      []Defect `json:"defects"`       // 按位置排列的缺陷列表
}

// Errors 返回所有缺陷的可读描述
func (r ValidationResult) Errors() []string {
	msgs := make([]string, 0, len(r.Defects))
	for _, d := range r.Defects {
		msgs = append(msgs, d.String())
	}
	return msgs
}

// Validate 校验卡片序列的结构完整性
//
// 空输入返回{Valid:false, Total:0}及一条"no cards provided"缺陷。
// 每张卡片的缺陷按以下优先级取第一条：非法记录、空front、空back。
// 确定性的全函数，永远不会失败，没有副作用。
func Validate(drafts []Card) ValidationResult {
	if len(drafts) == 0 {
		return ValidationResult{
			Valid:   false,
			Total:   0,
			Defects: []Defect{{Position: 0, Reason: DefectNoCards}},
		}
	}

	result := ValidationResult{Total: len(drafts)}

	for i, card := range drafts {
		position := i + 1

		switch {
		case card.Malformed():
			result.Defects = append(result.Defects, Defect{Position: position, Reason: DefectNotARecord})
		case strings.TrimSpace(card.Front) == "":
			result.Defects = append(result.Defects, Defect{Position: position, Reason: DefectEmptyFront})
		case strings.TrimSpace(card.Back) == "":
			result.Defects = append(result.Defects, Defect{Position: position, Reason: DefectEmptyBack})
		default:
			result.ValidCount++
		}
	}

	result.InvalidCount = len(result.Defects)
	result.Valid = result.InvalidCount == 0
	return result
}
