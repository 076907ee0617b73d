package session

import (
	"strings"

	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/extract"
)

// Source 会话中的一个已提取源
type Source struct {
	Filename string             `json:"filename"` // 原始文件名
	Kind     extract.SourceKind `json:"kind"`     // 文件类型
	Chars    int                `json:"chars"`    // 提取文本字符数
	Text     string             `json:"text"`     // 提取到的文本
}

// Viewer 卡片浏览器状态
type Viewer struct {
	Index    int  `json:"index"`    // 当前卡片下标
	Revealed bool `json:"revealed"` // 是否已翻开答案面
}

// Session 一次制卡会话的完整状态
// 每个用户各自持有一份，互不共享
type Session struct {
	ID       string       `json:"id"`       // 会话标识
	Sources  []Source     `json:"sources"`  // 已提取的源文件
	Cards    []cards.Card `json:"cards"`    // 当前草稿卡片
	Selected []int        `json:"selected"` // 被选中卡片的下标
	Viewer   Viewer       `json:"viewer"`   // 浏览器状态
}

// AddSource 追加一个已提取的源
func (s *Session) AddSource(src Source) {
	s.Sources = append(s.Sources, src)
}

// CombinedText 把所有源的文本拼接为生成输入
func (s *Session) CombinedText() string {
	texts := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		texts = append(texts, src.Text)
	}
	return strings.Join(texts, "\n\n")
}

// LatestSource 返回最近添加的源，没有时返回nil
func (s *Session) LatestSource() *Source {
	if len(s.Sources) == 0 {
		return nil
	}
	return &s.Sources[len(s.Sources)-1]
}

// TotalChars 所有源的字符数总和
func (s *Session) TotalChars() int {
	total := 0
	for _, src := range s.Sources {
		total += src.Chars
	}
	return total
}

// Clear 原子清空所有源、卡片与选择状态
func (s *Session) Clear() {
	s.Sources = nil
	s.Cards = nil
	s.Selected = nil
	s.Viewer = Viewer{}
}

// ReplaceCards 用新卡片替换全部草稿并默认全选
func (s *Session) ReplaceCards(drafts []cards.Card) {
	s.Cards = drafts
	s.SelectAll()
	s.Viewer = Viewer{}
}

// AppendCards 在已有草稿后追加新卡片，新卡片加入选择集
func (s *Session) AppendCards(drafts []cards.Card) {
	start := len(s.Cards)
	s.Cards = append(s.Cards, drafts...)
	for i := range drafts {
		s.Selected = append(s.Selected, start+i)
	}
}

// SelectAll 选中全部卡片
func (s *Session) SelectAll() {
	s.Selected = make([]int, len(s.Cards))
	for i := range s.Cards {
		s.Selected[i] = i
	}
}

// SetSelection 设置选择集，越界下标被忽略
func (s *Session) SetSelection(indices []int) {
	selected := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(s.Cards) {
			selected = append(selected, idx)
		}
	}
	s.Selected = selected
}

// SelectedCards 返回被选中的卡片
// 没有任何选择时回退为全部卡片
func (s *Session) SelectedCards() []cards.Card {
	if len(s.Selected) == 0 {
		return s.Cards
	}

	result := make([]cards.Card, 0, len(s.Selected))
	for _, idx := range s.Selected {
		if idx >= 0 && idx < len(s.Cards) {
			result = append(result, s.Cards[idx])
		}
	}
	return result
}

// ViewerNext 前进到下一张卡片并收起答案面，越界时停在最后一张
func (s *Session) ViewerNext() {
	if s.Viewer.Index < len(s.Cards)-1 {
		s.Viewer.Index++
	}
	s.Viewer.Revealed = false
}

// ViewerPrev 回退到上一张卡片并收起答案面，越界时停在第一张
func (s *Session) ViewerPrev() {
	if s.Viewer.Index > 0 {
		s.Viewer.Index--
	}
	s.Viewer.Revealed = false
}

// ViewerJumpTo 跳转到指定卡片，下标被钳制到有效范围
func (s *Session) ViewerJumpTo(index int) {
	if len(s.Cards) == 0 {
		s.Viewer = Viewer{}
		return
	}

	if index < 0 {
		index = 0
	}
	if index > len(s.Cards)-1 {
		index = len(s.Cards) - 1
	}
	s.Viewer.Index = index
	s.Viewer.Revealed = false
}

// ViewerToggleReveal 翻转答案面的显示状态
func (s *Session) ViewerToggleReveal() {
	s.Viewer.Revealed = !s.Viewer.Revealed
}

// CurrentCard 返回浏览器当前指向的卡片，没有卡片时返回nil
func (s *Session) CurrentCard() *cards.Card {
	if len(s.Cards) == 0 {
		return nil
	}

	idx := s.Viewer.Index
	if idx < 0 || idx >= len(s.Cards) {
		idx = 0
	}
	return &s.Cards[idx]
}
