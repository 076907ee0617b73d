package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo 文件元数据结构
type FileInfo struct {
	ID       string // 文件唯一标识符
	Name     string // 原始文件名
	Size     int64  // 文件大小(字节)
	MimeType string // 文件MIME类型
	Path     string // 内部存储路径(实现相关)
}

// Storage 文件存储接口
// 定义上传源文件的基本操作，可以有不同实现(本地文件系统、MinIO等)
type Storage interface {
	// Save 保存文件并返回文件信息
	Save(reader io.Reader, filename string) (FileInfo, error)

	// Get 获取文件内容
	Get(id string) (io.ReadCloser, error)

	// Delete 删除文件
	Delete(id string) error

	// List 列出所有文件
	List() ([]FileInfo, error)

	// Exists 检查文件是否存在
	Exists(id string) (bool, error)
}

// FetchToTemp 把存储中的文件取到本地临时路径
// 提取流程需要一个真实的文件路径才能把文件交给视觉模型
// 调用方负责删除返回路径所在的临时目录
func FetchToTemp(s Storage, id string, filename string) (string, error) {
	reader, err := s.Get(id)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	tmpDir, err := os.MkdirTemp("", "cardgen_source_")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %v", err)
	}

	tmpPath := filepath.Join(tmpDir, filepath.Base(filename))
	file, err := os.Create(tmpPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to copy file content: %v", err)
	}

	return tmpPath, nil
}

// getMimeType 简单根据文件扩展名判断MIME类型
func getMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	case ".apkg":
		return "application/zip"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
