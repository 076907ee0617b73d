package cards

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Card 学习卡片草稿
// 由解析器从AI响应文本中产生，front为问题面，back为答案面
// 两个字段都可能包含内联HTML标记
type Card struct {
	Front string `json:"front"` // 问题/提示内容
	Back  string `json:"back"`  // 答案/解释内容

	// malformed 标记该卡片在JSON导入时不是合法的对象记录
	// （例如数组元素是字符串，或front/back不是字符串类型）
	malformed bool
}

// Malformed 返回该卡片是否为非法记录
func (c Card) Malformed() bool {
	return c.malformed
}

// NewMalformedCard 构造一个非法记录占位卡片
// 仅用于宽松JSON导入路径，让校验器报告缺陷而不是在解码时失败
func NewMalformedCard() Card {
	return Card{malformed: true}
}

// UnmarshalJSON 宽松解码卡片
// 非对象元素或非字符串字段不会导致解码失败，而是产生一个
// 非法记录，由校验器以not-a-record缺陷报告
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		c.malformed = true
		return nil
	}

	front, frontOK := decodeStringField(raw["front"])
	back, backOK := decodeStringField(raw["back"])
	if !frontOK || !backOK {
		c.malformed = true
		return nil
	}

	c.Front = front
	c.Back = back
	return nil
}

// decodeStringField 解码字符串字段
// 字段缺失视为空字符串；字段存在但不是字符串视为非法
func decodeStringField(data json.RawMessage) (string, bool) {
	if len(data) == 0 {
		return "", true
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// htmlTagPattern 匹配HTML标签
var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanHTML 去除文本中的HTML标签并还原常见实体
// 用于卡片列表预览等纯文本展示场景
func CleanHTML(text string) string {
	clean := htmlTagPattern.ReplaceAllString(text, "")
	clean = UnescapeEntities(clean)
	return strings.TrimSpace(clean)
}

// UnescapeEntities 还原deck打包器写入的HTML实体
// 读取路径必须撤销这种规范化，否则导出再导入无法得到原文
func UnescapeEntities(text string) string {
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return text
}

// Preview 生成卡片的文本预览
// 最多展示maxPreview张卡片，每面截断到100个字符
func Preview(drafts []Card, maxPreview int) string {
	if len(drafts) == 0 {
		return "No cards to preview."
	}

	if maxPreview <= 0 {
		maxPreview = 3
	}

	shown := len(drafts)
	if shown > maxPreview {
		shown = maxPreview
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Preview of %d cards (Total: %d):\n\n", shown, len(drafts)))

	for i, card := range drafts[:shown] {
		b.WriteString(fmt.Sprintf("--- Card %d ---\n", i+1))
		b.WriteString(fmt.Sprintf("Q: %s\n", truncate(card.Front, 100)))
		b.WriteString(fmt.Sprintf("A: %s\n\n", truncate(card.Back, 100)))
	}

	if len(drafts) > shown {
		b.WriteString(fmt.Sprintf("... and %d more cards", len(drafts)-shown))
	}

	return b.String()
}

// FrontLabel 生成卡片在下拉列表中的展示标签
// 格式为"Card N: 问题前缀"，HTML标签会被去除
func FrontLabel(position int, card Card, maxLen int) string {
	front := CleanHTML(card.Front)
	if front == "" {
		front = "No question"
	}
	return fmt.Sprintf("Card %d: %s", position, truncate(front, maxLen))
}

// truncate 截断字符串并追加省略号
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
