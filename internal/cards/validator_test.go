package cards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateEmptyInput 测试空输入的校验结果
func TestValidateEmptyInput(t *testing.T) {
	result := Validate(nil)

	assert.False(t, result.Valid)
	assert.Equal(t, 0, result.Total)
	require.Len(t, result.Defects, 1)
	assert.Equal(t, DefectNoCards, result.Defects[0].Reason)
	assert.Equal(t, "no cards provided", result.Defects[0].String())
}

// TestValidateAllValid 测试全部合格的卡片
func TestValidateAllValid(t *testing.T) {
	drafts := []Card{
		{Front: "Q1", Back: "A1"},
		{Front: "Q2", Back: "A2"},
	}

	result := Validate(drafts)

	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.ValidCount)
	assert.Equal(t, 0, result.InvalidCount)
	assert.Empty(t, result.Defects)
}

// TestValidateEmptyFields 测试空字段缺陷的定位
func TestValidateEmptyFields(t *testing.T) {
	drafts := []Card{
		{Front: "Q1", Back: "A1"},
		{Front: "", Back: "A2"},
		{Front: "   ", Back: "A3"}, // 纯空白也算空
		{Front: "Q4", Back: ""},
		{Front: "Q5", Back: "A5"},
	}

	result := Validate(drafts)

	assert.False(t, result.Valid)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 2, result.ValidCount)
	assert.Equal(t, 3, result.InvalidCount)
	require.Len(t, result.Defects, 3)

	assert.Equal(t, Defect{Position: 2, Reason: DefectEmptyFront}, result.Defects[0])
	assert.Equal(t, Defect{Position: 3, Reason: DefectEmptyFront}, result.Defects[1])
	assert.Equal(t, Defect{Position: 4, Reason: DefectEmptyBack}, result.Defects[2])
}

// TestValidateMalformedRecords 测试宽松JSON导入产生的非法记录
func TestValidateMalformedRecords(t *testing.T) {
	var drafts []Card
	data := `[{"front":"Q1","back":"A1"},"not an object",{"front":42,"back":"A3"}]`
	require.NoError(t, json.Unmarshal([]byte(data), &drafts))
	require.Len(t, drafts, 3)

	result := Validate(drafts)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.ValidCount)
	require.Len(t, result.Defects, 2)
	assert.Equal(t, Defect{Position: 2, Reason: DefectNotARecord}, result.Defects[0])
	assert.Equal(t, Defect{Position: 3, Reason: DefectNotARecord}, result.Defects[1])
}

// TestValidateDeterministic 测试校验的确定性
func TestValidateDeterministic(t *testing.T) {
	drafts := []Card{
		{Front: "Q", Back: ""},
		{Front: "", Back: "A"},
	}

	first := Validate(drafts)
	second := Validate(drafts)

	assert.Equal(t, first, second)
	// 校验没有副作用，输入不会被修改
	assert.Equal(t, "Q", drafts[0].Front)
}

// TestValidationResultErrors 测试缺陷的可读描述
func TestValidationResultErrors(t *testing.T) {
	result := Validate([]Card{{Front: "", Back: "A"}})

	msgs := result.Errors()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Card 1: missing or empty front", msgs[0])
}
