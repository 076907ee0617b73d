package cards

// ObjectivePreset 预置学习目标
// 为常见学习场景提供现成的提示词描述，用户也可以自定义
type ObjectivePreset struct {
	Name        string `json:"name"`        // 预置名称
	Description string `json:"description"` // 作为学习目标使用的提示词内容，自定义时为空
}

// customPresetName 自定义目标的预置名称
const customPresetName = "Custom (Enter your own)"

// objectivePresets 内置的学习目标预置列表
// 顺序即展示顺序，第一项为自定义
var objectivePresets = []ObjectivePreset{
	{
		Name:        customPresetName,
		Description: "",
	},
	{
		Name: "Japanese Vocabulary (Intermediate)",
		Description: `Create comprehensive Japanese vocabulary cards for intermediate students using HTML formatting for better structure. IMPORTANT: Only focus on native Japanese words written in kanji and/or hiragana. Avoid katakana words (foreign loanwords), proper names, and English words.
- Front: Display the <strong>kanji/word</strong> in large, clear text. If it is a kanji word, don't include the reading.
- Back: Structure using HTML for readability:
  <strong>Reading:</strong> hiragana reading, <strong>Meaning:</strong> English translation(s), <em>Type:</em> part of speech, <strong>Examples:</strong> example sentences with translations, usage notes or cultural context.
Use <strong> for key terms, <em> for emphasis, <ul><li> for lists.`,
	},
	{
		Name: "Spanish Vocabulary",
		Description: `Create Spanish vocabulary cards with HTML formatting:
- Front: <strong>Spanish word/phrase</strong>
- Back: <strong>English meaning</strong>, <em>Pronunciation</em> with phonetic guide, <strong>Examples</strong> as Spanish sentences with English translations, <strong>Gender/Type</strong>, and usage notes or cultural context.`,
	},
	{
		Name: "Historical Facts & Dates",
		Description: `Create historical flashcards with structured HTML formatting:
- Front: <strong>Historical question or event prompt</strong>
- Back: <strong>Date/Period</strong>, <strong>Key Figures</strong>, <strong>What happened</strong>, <strong>Significance</strong>, and <strong>Context</strong> as causes and consequences.
Use <strong> for dates and names, <ul><li> for multiple points.`,
	},
	{
		Name: "Mathematical Formulas",
		Description: `Create mathematical concept cards with clear HTML structure:
- Front: <strong>Mathematical concept or problem</strong>
- Back: <strong>Formula</strong> in <code> tags, <strong>Where</strong> each variable is defined in a list, <strong>When to use</strong>, and a worked <strong>Example</strong> as numbered steps.
Use <code> for all mathematical expressions, <ol><li> for steps.`,
	},
	{
		Name: "Scientific Terms",
		Description: `Create scientific terminology cards with structured HTML:
- Front: <strong>Scientific term or concept</strong>
- Back: <strong>Definition</strong>, <em>Category</em> (field of science), <strong>Key characteristics</strong> as a list, <strong>Examples</strong>, and <strong>Related terms</strong>.
Use <strong> for definitions, <em> for scientific names, <ul><li> for characteristics.`,
	},
	{
		Name: "Business & Finance",
		Description: `Create business and finance cards with professional HTML formatting:
- Front: <strong>Business term or financial concept</strong>
- Back: <strong>Definition</strong>, <strong>Purpose</strong>, <strong>Key components</strong> as a list, a real-world <strong>Example</strong>, and the relevant <strong>Formula/Calculation</strong> in <code> tags if applicable.`,
	},
}

// ObjectivePresets 返回内置学习目标预置的副本
func ObjectivePresets() []ObjectivePreset {
	presets := make([]ObjectivePreset, len(objectivePresets))
	copy(presets, objectivePresets)
	return presets
}

// LookupObjective 按名称查找预置目标描述
// 未找到或选择自定义时返回空字符串
func LookupObjective(name string) string {
	for _, p := range objectivePresets {
		if p.Name == name {
			return p.Description
		}
	}
	return ""
}
