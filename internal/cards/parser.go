package cards

import "strings"

// 响应文本的行前缀标记
// 生成提示词要求AI严格按这种格式输出，解析时大小写敏感
const (
	cardMarker  = "CARD "
	frontMarker = "FRONT:"
	backMarker  = "BACK:"
)

// record 解析过程中的卡片累积状态
// hasFront/hasBack区分"字段未出现"和"字段出现但内容为空"：
// FRONT:后面可以是空内容，此时后续普通行仍然追加到front
type record struct {
	front    string
	back     string
	hasFront bool
	hasBack  bool
}

// complete 判断累积记录是否构成一张完整卡片
// 两个面都必须有非空内容
func (r *record) complete() bool {
	return r.front != "" && r.back != ""
}

// ParseResponse 将AI的自由文本响应解析为有序的卡片序列
//
// 按行扫描：
//   - "CARD "开头的行开启新卡片，若前一张卡片已完整则先输出
//   - "FRONT:"行设置问题面，"BACK:"行设置答案面（前缀后内容去除首尾空白）
//   - 其他非空行作为多行内容的延续，用空格拼接到当前累积的面上
//   - 空行直接跳过，不会中断多行累积
//
// 不完整的卡片（缺front或back）会被静默丢弃。
// 该函数对任意输入都不会失败，最坏情况返回空序列。
func ParseResponse(responseText string) []Card {
	var result []Card
	current := &record{}

	lines := strings.Split(strings.TrimSpace(responseText), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, cardMarker):
			// 新卡片开始，先保存已完整的前一张
			if current.complete() {
				result = append(result, Card{Front: current.front, Back: current.back})
			}
			current = &record{}

		case strings.HasPrefix(line, frontMarker):
			current.front = strings.TrimSpace(line[len(frontMarker):])
			current.hasFront = true

		case strings.HasPrefix(line, backMarker):
			current.back = strings.TrimSpace(line[len(backMarker):])
			current.hasBack = true

		case current.hasFront && current.back == "":
			// 问题面换行续写
			current.front += " " + line

		case current.hasBack:
			// 答案面换行续写
			current.back += " " + line
		}
	}

	// 输出最后一张卡片
	if current.complete() {
		result = append(result, Card{Front: current.front, Back: current.back})
	}

	return result
}
