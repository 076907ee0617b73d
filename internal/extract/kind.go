package extract

import (
	"path/filepath"
	"strings"
)

// SourceKind 源文件类型
type SourceKind string

const (
	// KindImage 图片文件
	KindImage SourceKind = "image"
	// KindPDF PDF文档
	KindPDF SourceKind = "pdf"
	// KindUnknown 未知类型
	KindUnknown SourceKind = "unknown"
)

// 支持的图片扩展名
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// DetectKind 根据文件扩展名检测源文件类型
func DetectKind(filename string) SourceKind {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case ext == ".pdf":
		return KindPDF
	case imageExtensions[ext]:
		return KindImage
	default:
		return KindUnknown
	}
}
