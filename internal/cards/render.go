package cards

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// RenderHTML 将卡片单面内容渲染为HTML
// AI生成的卡片通常已带内联HTML，原样返回；
// JSON导入的纯文本或Markdown卡片则经过Markdown渲染
func RenderHTML(text string) string {
	if containsHTML(text) {
		return text
	}

	p := gmparser.NewWithExtensions(gmparser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})

	rendered := markdown.ToHTML([]byte(text), p, renderer)
	return strings.TrimSpace(string(rendered))
}

// containsHTML 粗略判断文本是否已包含HTML标签
func containsHTML(text string) bool {
	return htmlTagPattern.MatchString(text)
}
