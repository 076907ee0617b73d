package cards

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseResponseBasic 测试基本的卡片解析
func TestParseResponseBasic(t *testing.T) {
	text := "CARD 1:\nFRONT: What is 2+2?\nBACK: 4\n"
	result := ParseResponse(text)

	require.Len(t, result, 1)
	assert.Equal(t, "What is 2+2?", result[0].Front)
	assert.Equal(t, "4", result[0].Back)
}

// TestParseResponseMultipleCards 测试多卡片解析及顺序保持
func TestParseResponseMultipleCards(t *testing.T) {
	text := `CARD 1:
FRONT: Question one
BACK: Answer one

CARD 2:
FRONT: Question two
BACK: Answer two

CARD 3:
FRONT: Question three
BACK: Answer three`

	result := ParseResponse(text)

	require.Len(t, result, 3)
	assert.Equal(t, "Question one", result[0].Front)
	assert.Equal(t, "Answer two", result[1].Back)
	assert.Equal(t, "Question three", result[2].Front)
}

// TestParseResponseContinuationLines 测试多行内容的空格拼接
func TestParseResponseContinuationLines(t *testing.T) {
	t.Run("back continuation", func(t *testing.T) {
		text := "CARD 1:\nFRONT: Q\nBACK: A\nextra line\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "A extra line", result[0].Back)
	})

	t.Run("front continuation", func(t *testing.T) {
		text := "CARD 1:\nFRONT: A question that\nwraps onto two lines\nBACK: answer\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "A question that wraps onto two lines", result[0].Front)
		assert.Equal(t, "answer", result[0].Back)
	})

	t.Run("blank lines do not break accumulation", func(t *testing.T) {
		text := "CARD 1:\nFRONT: Q\nBACK: first part\n\nsecond part\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "first part second part", result[0].Back)
	})
}

// TestParseResponseNoMarkers 测试不含CARD标记的文本
func TestParseResponseNoMarkers(t *testing.T) {
	texts := []string{
		"",
		"   \n\n  ",
		"Here are your flashcards, I hope they help!",
		"FRONT: orphan question without a card marker\nBACK: orphan answer",
	}

	// 没有CARD标记时FRONT/BACK行仍会累积，
	// 但最后一条完整记录依然会被输出
	result := ParseResponse(texts[0])
	assert.Empty(t, result)

	result = ParseResponse(texts[1])
	assert.Empty(t, result)

	result = ParseResponse(texts[2])
	assert.Empty(t, result)

	result = ParseResponse(texts[3])
	require.Len(t, result, 1)
	assert.Equal(t, "orphan question without a card marker", result[0].Front)
}

// TestParseResponseIncompleteRecords 测试不完整卡片的静默丢弃
func TestParseResponseIncompleteRecords(t *testing.T) {
	t.Run("trailing card without back is dropped", func(t *testing.T) {
		text := "CARD 1:\nFRONT: Q1\nBACK: A1\nCARD 2:\nFRONT: Q2 without answer\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "Q1", result[0].Front)
	})

	t.Run("mid-stream incomplete card is dropped", func(t *testing.T) {
		text := "CARD 1:\nFRONT: dangling question\nCARD 2:\nFRONT: Q2\nBACK: A2\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "Q2", result[0].Front)
		assert.Equal(t, "A2", result[0].Back)
	})

	t.Run("card with only back is dropped", func(t *testing.T) {
		text := "CARD 1:\nBACK: answer without question\n"
		result := ParseResponse(text)
		assert.Empty(t, result)
	})
}

// TestParseResponsePrefixMatching 测试前缀匹配的细节
func TestParseResponsePrefixMatching(t *testing.T) {
	t.Run("prefixes are case sensitive", func(t *testing.T) {
		text := "card 1:\nfront: lowercase\nback: markers\n"
		result := ParseResponse(text)
		// 小写标记不被识别，这些行没有可追加的目标面，被忽略
		assert.Empty(t, result)
	})

	t.Run("indented lines are trimmed before matching", func(t *testing.T) {
		text := "  CARD 1:\n    FRONT: indented question\n  BACK: indented answer\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, "indented question", result[0].Front)
		assert.Equal(t, "indented answer", result[0].Back)
	})

	t.Run("empty front marker still accepts continuation", func(t *testing.T) {
		text := "CARD 1:\nFRONT:\ncontinued question\nBACK: answer\n"
		result := ParseResponse(text)

		require.Len(t, result, 1)
		assert.Equal(t, " continued question", result[0].Front)
	})
}

// TestParseResponseHTMLContent 测试带内联HTML的卡片内容
func TestParseResponseHTMLContent(t *testing.T) {
	text := "CARD 1:\nFRONT: What does <strong>DNA</strong> stand for?\nBACK: <em>Deoxyribonucleic acid</em><br>The molecule of heredity\n"
	result := ParseResponse(text)

	require.Len(t, result, 1)
	assert.Contains(t, result[0].Front, "<strong>DNA</strong>")
	assert.Contains(t, result[0].Back, "<em>Deoxyribonucleic acid</em>")
}

// TestParseResponseTargetCountNotEnforced 测试解析器不裁剪卡片数量
func TestParseResponseTargetCountNotEnforced(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		b.WriteString(fmt.Sprintf("CARD %d:\nFRONT: Q%d\nBACK: A%d\n", i, i, i))
	}

	// 即使调用方只要求了10张，响应里有多少完整卡片就返回多少
	result := ParseResponse(b.String())
	assert.Len(t, result, 20)
}

// TestParseResponseOrderPreserved 测试输出顺序与输入顺序一致
func TestParseResponseOrderPreserved(t *testing.T) {
	text := "CARD 1:\nFRONT: alpha\nBACK: 1\nCARD 2:\nFRONT: beta\nBACK: 2\nCARD 3:\nFRONT: gamma\nBACK: 3\n"
	result := ParseResponse(text)

	require.Len(t, result, 3)
	assert.Equal(t, []string{"alpha", "beta", "gamma"},
		[]string{result[0].Front, result[1].Front, result[2].Front})
}
