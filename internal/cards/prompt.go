package cards

import (
	"fmt"
	"strings"
)

// generationPromptTemplate 卡片生成提示词模板
// 要求AI严格按照CARD n: / FRONT: / BACK:的行格式输出，
// 这是解析器能够工作的前提；HTML标记部分只是排版建议
const generationPromptTemplate = `Based on the following extracted text and learning objective, create %d study cards suitable for spaced repetition learning (like Anki flashcards).

EXTRACTED TEXT:
%s

LEARNING OBJECTIVE:
%s

INSTRUCTIONS:
1. Create exactly %d flashcards
2. Each card should have a clear, concise FRONT (question/prompt) and BACK (answer/explanation)
3. Focus on the most important information related to the learning objective
4. Make questions specific and testable
5. Include context when necessary for clarity
6. Vary question types (definitions, examples, applications, etc.)
7. Use HTML formatting to make the cards more readable and well-structured

HTML FORMATTING GUIDELINES:
- Use <strong> or <b> for important terms, keywords, and emphasis
- Use <em> or <i> for foreign words, scientific names, or subtle emphasis
- Use <br> for line breaks when needed
- Use <ul> and <li> for bullet points when listing multiple items
- Use <ol> and <li> for numbered lists when showing steps or rankings
- Use <div class="highlight"> for key concepts that need special attention
- Use <code> for formulas, equations, or technical terms
- Use <blockquote> for quotes or important excerpts
- For definitions: Use <strong> for the term being defined
- For examples: Use <em>Example:</em> to introduce examples

FORMAT YOUR RESPONSE AS:
CARD 1:
FRONT: [Question or prompt with HTML formatting]
BACK: [Answer or explanation with HTML formatting for better structure]

CARD 2:
FRONT: [Question or prompt with HTML formatting]
BACK: [Answer or explanation with HTML formatting for better structure]

...and so on for all %d cards.`

// BuildGenerationPrompt 构造卡片生成提示词
// 源文本和学习目标原样传入，目标数量写入格式约定中
func BuildGenerationPrompt(sourceText string, objective string, targetCount int) string {
	return fmt.Sprintf(generationPromptTemplate,
		targetCount, sourceText, objective, targetCount, targetCount)
}

// enhancePromptTemplate 学习目标增强提示词模板
const enhancePromptTemplate = `Based on this text content preview and the user's learning objective, suggest an enhanced and more specific learning goal.

TEXT PREVIEW:
%s

USER'S OBJECTIVE:
%s

Please provide:
1. An enhanced, more specific learning objective
2. 2-3 suggestions for different types of study cards that would be effective

Keep the response concise and practical.`

// BuildEnhancePrompt 构造学习目标增强提示词
// 文本预览最多取前500个字符
func BuildEnhancePrompt(textPreview string, objective string) string {
	preview := textPreview
	if runes := []rune(preview); len(runes) > 500 {
		preview = string(runes[:500]) + "..."
	}
	return fmt.Sprintf(enhancePromptTemplate, preview, objective)
}

// extractionPromptImage 图片文字提取提示词
const extractionPromptImage = `Please extract ALL text content from this image. Include:
- All visible text, headings, and labels
- Any structured information (lists, tables, etc.)
- Mathematical formulas or equations
- Preserve the general structure and formatting where possible

Return only the extracted text content without any additional commentary.`

// extractionPromptPDF PDF文字提取提示词
const extractionPromptPDF = `Please extract ALL text content from this PDF document. Include:
- All visible text, headings, and labels
- Any structured information (lists, tables, etc.)
- Mathematical formulas or equations
- Preserve the general structure and formatting where possible
- Include page breaks or section separators where appropriate

Return only the extracted text content without any additional commentary.`

// ExtractionPrompt 返回对应文件类型的文字提取提示词
func ExtractionPrompt(isPDF bool) string {
	if isPDF {
		return extractionPromptPDF
	}
	return extractionPromptImage
}

// CombineSourceTexts 合并多个来源的提取文本
// 按加入顺序以空行分隔，构成"从全部来源生成"使用的语料
func CombineSourceTexts(texts []string) string {
	return strings.Join(texts, "\n\n")
}
