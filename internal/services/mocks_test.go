package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/card-gen-system/internal/cache"
	"github.com/fyerfyer/card-gen-system/internal/extract"
	"github.com/fyerfyer/card-gen-system/internal/models"
	"github.com/fyerfyer/card-gen-system/internal/session"
	"github.com/fyerfyer/card-gen-system/pkg/storage"
)

// fakeGemini 测试用的生成模型客户端
type fakeGemini struct {
	response     string
	fileResponse string
	err          error
	prompts      []string
}

func (f *fakeGemini) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGemini) GenerateWithFile(ctx context.Context, prompt string, filePath string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.fileResponse != "" {
		return f.fileResponse, f.err
	}
	return f.response, f.err
}

func (f *fakeGemini) Name() string { return "fake" }
func (f *fakeGemini) Close() error { return nil }

// fakeHistory 测试用的内存历史记录仓储
type fakeHistory struct {
	mu      sync.Mutex
	sources []*models.SourceFile
	exports []*models.DeckExport
}

func (f *fakeHistory) SaveSourceFile(file *models.SourceFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, file)
	return nil
}

func (f *fakeHistory) ListSourceFiles(sessionID string) ([]*models.SourceFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*models.SourceFile
	for _, file := range f.sources {
		if file.SessionID == sessionID {
			result = append(result, file)
		}
	}
	return result, nil
}

func (f *fakeHistory) FindSourceByDigest(digest string) (*models.SourceFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, file := range f.sources {
		if file.Digest == digest {
			return file, nil
		}
	}
	return nil, models.ErrSourceFileNotFound
}

func (f *fakeHistory) SaveDeckExport(export *models.DeckExport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exports = append(f.exports, export)
	return nil
}

func (f *fakeHistory) ListDeckExports(sessionID string, offset, limit int) ([]*models.DeckExport, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*models.DeckExport
	for _, export := range f.exports {
		if export.SessionID == sessionID {
			result = append(result, export)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeHistory) DeleteSessionHistory(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = nil
	f.exports = nil
	return nil
}

// newTestSessionStore 创建内存后端的会话存取器
func newTestSessionStore(t *testing.T) *session.Store {
	t.Helper()
	backing, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err)
	return session.NewStore(backing, time.Hour)
}

// newTestStorage 创建临时目录的本地存储
func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.LocalConfig{Path: t.TempDir()})
	require.NoError(t, err)
	return store
}

// newTestExtractor 创建使用fake客户端的提取器
func newTestExtractor(client *fakeGemini) *extract.Extractor {
	return extract.NewExtractor(client)
}
