package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage 本地文件存储实现
// 文件按 <id><扩展名> 平铺存放在基础目录下
type LocalStorage struct {
	basePath string // 基础存储路径
}

// LocalConfig 本地存储配置
type LocalConfig struct {
	Path string // 本地存储路径
}

// NewLocalStorage 创建本地存储实例
func NewLocalStorage(cfg LocalConfig) (*LocalStorage, error) {
	// 确保路径是绝对路径
	absPath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %v", err)
	}

	// 确保目录存在
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}

	return &LocalStorage{
		basePath: absPath,
	}, nil
}

// Save 保存文件到本地存储
func (s *LocalStorage) Save(reader io.Reader, filename string) (FileInfo, error) {
	id := uuid.New().String()
	ext := filepath.Ext(filename)

	relPath := id + ext
	filePath := filepath.Join(s.basePath, relPath)

	file, err := os.Create(filePath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to write file: %v", err)
	}

	return FileInfo{
		ID:       id,
		Name:     filename,
		Size:     size,
		MimeType: getMimeType(filename),
		Path:     relPath,
	}, nil
}

// Get 获取文件内容
func (s *LocalStorage) Get(id string) (io.ReadCloser, error) {
	filePath, err := s.findFilePathById(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}

	return file, nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(id string) error {
	filePath, err := s.findFilePathById(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

// List 列出所有文件
func (s *LocalStorage) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %v", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		fileName := entry.Name()
		id := strings.TrimSuffix(fileName, filepath.Ext(fileName))

		files = append(files, FileInfo{
			ID:       id,
			Name:     fileName,
			Size:     info.Size(),
			MimeType: getMimeType(fileName),
			Path:     fileName,
		})
	}

	return files, nil
}

// Exists 检查文件是否存在
func (s *LocalStorage) Exists(id string) (bool, error) {
	_, err := s.findFilePathById(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findFilePathById 根据ID查找文件路径
func (s *LocalStorage) findFilePathById(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, id+".*"))
	if err != nil {
		return "", fmt.Errorf("error searching for file: %v", err)
	}

	if len(matches) == 0 {
		// 无扩展名保存的文件
		plain := filepath.Join(s.basePath, id)
		if _, serr := os.Stat(plain); serr == nil {
			return plain, nil
		}
		return "", fmt.Errorf("file with id %s not found", id)
	}

	return matches[0], nil
}
