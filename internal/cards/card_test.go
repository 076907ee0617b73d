package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCleanHTML 测试HTML标签去除和实体还原
func TestCleanHTML(t *testing.T) {
	t.Run("strips tags", func(t *testing.T) {
		assert.Equal(t, "Hello World", CleanHTML("<strong>Hello</strong> <em>World</em>"))
	})

	t.Run("unescapes entities", func(t *testing.T) {
		assert.Equal(t, "a < b && c > d", CleanHTML("a &lt; b &amp;&amp; c &gt; d"))
	})

	t.Run("nbsp becomes space", func(t *testing.T) {
		assert.Equal(t, "one two", CleanHTML("one&nbsp;two"))
	})
}

// TestPreview 测试卡片文本预览
func TestPreview(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "No cards to preview.", Preview(nil, 3))
	})

	t.Run("truncates long fields", func(t *testing.T) {
		long := strings.Repeat("x", 150)
		preview := Preview([]Card{{Front: long, Back: "short"}}, 3)

		assert.Contains(t, preview, strings.Repeat("x", 100)+"...")
		assert.NotContains(t, preview, strings.Repeat("x", 101))
	})

	t.Run("reports remaining count", func(t *testing.T) {
		drafts := make([]Card, 5)
		for i := range drafts {
			drafts[i] = Card{Front: "Q", Back: "A"}
		}

		preview := Preview(drafts, 3)
		assert.Contains(t, preview, "Preview of 3 cards (Total: 5)")
		assert.Contains(t, preview, "... and 2 more cards")
	})
}

// TestFrontLabel 测试卡片列表标签
func TestFrontLabel(t *testing.T) {
	card := Card{Front: "<b>What</b> is Go?", Back: "A language"}
	label := FrontLabel(3, card, 60)

	assert.Equal(t, "Card 3: What is Go?", label)
}

// TestRenderHTML 测试卡片内容渲染
func TestRenderHTML(t *testing.T) {
	t.Run("passes through existing html", func(t *testing.T) {
		text := "<strong>term</strong><br>definition"
		assert.Equal(t, text, RenderHTML(text))
	})

	t.Run("renders markdown for plain cards", func(t *testing.T) {
		rendered := RenderHTML("**bold** and *italic*")
		assert.Contains(t, rendered, "<strong>bold</strong>")
		assert.Contains(t, rendered, "<em>italic</em>")
	})
}

// TestCombineSourceTexts 测试多来源文本合并
func TestCombineSourceTexts(t *testing.T) {
	combined := CombineSourceTexts([]string{"first", "second", "third"})
	assert.Equal(t, "first\n\nsecond\n\nthird", combined)
}

// TestBuildGenerationPrompt 测试生成提示词的结构约定
func TestBuildGenerationPrompt(t *testing.T) {
	prompt := BuildGenerationPrompt("source material here", "learn the vocabulary", 12)

	// 源文本和目标原样传入
	assert.Contains(t, prompt, "source material here")
	assert.Contains(t, prompt, "learn the vocabulary")
	// 目标数量和行格式约定必须出现在提示词中
	assert.Contains(t, prompt, "create 12 study cards")
	assert.Contains(t, prompt, "Create exactly 12 flashcards")
	assert.Contains(t, prompt, "CARD 1:")
	assert.Contains(t, prompt, "FRONT:")
	assert.Contains(t, prompt, "BACK:")
}

// TestObjectivePresets 测试预置学习目标
func TestObjectivePresets(t *testing.T) {
	presets := ObjectivePresets()
	require.NotEmpty(t, presets)

	// 第一项是自定义，描述为空
	assert.Equal(t, "Custom (Enter your own)", presets[0].Name)
	assert.Empty(t, presets[0].Description)

	// 按名称查找
	desc := LookupObjective("Mathematical Formulas")
	assert.Contains(t, desc, "<code>")

	assert.Empty(t, LookupObjective("does not exist"))
}
