package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/card-gen-system/internal/cache"
)

// mockVisionClient 测试用的视觉模型客户端
type mockVisionClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (m *mockVisionClient) Generate(ctx context.Context, prompt string) (string, error) {
	return m.response, m.err
}

func (m *mockVisionClient) GenerateWithFile(ctx context.Context, prompt string, filePath string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockVisionClient) Name() string { return "mock" }
func (m *mockVisionClient) Close() error { return nil }

func createTempImage(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "source.png")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp image: %v", err)
	}
	return tmpFile
}

func createTempPDF(t *testing.T, text string) string {
	t.Helper()
	tmpPath := filepath.Join(t.TempDir(), "source.pdf")
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, text, "", "", false)
	if err := pdf.Output(tmpFile); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}
	return tmpPath
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, KindImage, DetectKind("photo.png"))
	assert.Equal(t, KindImage, DetectKind("photo.JPG"))
	assert.Equal(t, KindImage, DetectKind("scan.webp"))
	assert.Equal(t, KindPDF, DetectKind("notes.pdf"))
	assert.Equal(t, KindPDF, DetectKind("NOTES.PDF"))
	assert.Equal(t, KindUnknown, DetectKind("data.docx"))
	assert.Equal(t, KindUnknown, DetectKind("noextension"))
}

func TestExtractFromImage(t *testing.T) {
	client := &mockVisionClient{response: "extracted vocabulary list"}
	extractor := NewExtractor(client)

	file := createTempImage(t, "fake image bytes")

	result, err := extractor.Extract(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "extracted vocabulary list", result.Text)
	assert.Equal(t, KindImage, result.Kind)
	assert.Equal(t, len([]rune(result.Text)), result.Chars)
	assert.Equal(t, 0, result.Pages)
	assert.False(t, result.FromCache)
	assert.Equal(t, 1, client.calls)

	// 图片提示词不应提到页分隔
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "image")
}

func TestExtractFromPDF(t *testing.T) {
	client := &mockVisionClient{response: "chapter one text"}
	extractor := NewExtractor(client)

	file := createTempPDF(t, "Chapter one content for extraction.")

	result, err := extractor.Extract(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, "chapter one text", result.Text)
	assert.Equal(t, KindPDF, result.Kind)
	assert.Equal(t, 1, result.Pages)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "PDF")
}

func TestExtractUnsupportedType(t *testing.T) {
	client := &mockVisionClient{response: "text"}
	extractor := NewExtractor(client)

	_, err := extractor.Extract(context.Background(), "notes.docx")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnsupportedType))
	assert.Equal(t, 0, client.calls)
}

func TestExtractMissingFile(t *testing.T) {
	client := &mockVisionClient{response: "text"}
	extractor := NewExtractor(client)

	_, err := extractor.Extract(context.Background(), "/nonexistent/file.png")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeFileAccess))
}

func TestExtractEmptyResult(t *testing.T) {
	client := &mockVisionClient{response: ""}
	extractor := NewExtractor(client)

	file := createTempImage(t, "fake image bytes")

	_, err := extractor.Extract(context.Background(), file)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeEmptyResult))
}

func TestExtractCacheHit(t *testing.T) {
	client := &mockVisionClient{response: "cached text"}
	store, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err)

	extractor := NewExtractor(client, WithCache(store, time.Hour))

	file := createTempImage(t, "identical image bytes")

	first, err := extractor.Extract(context.Background(), file)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, client.calls)

	second, err := extractor.Extract(context.Background(), file)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	// 第二次不再调用模型
	assert.Equal(t, 1, client.calls)
}

func TestPreflightPDFInvalid(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0644))

	_, err := PreflightPDF(broken)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidPDF))
}
