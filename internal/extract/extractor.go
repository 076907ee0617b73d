package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/internal/cache"
	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/gemini"
)

// 提取结果缓存的默认过期时间
const defaultCacheTTL = 24 * time.Hour

// Result 文本提取结果
type Result struct {
	Text      string     `json:"text"`       // 提取到的文本内容
	Kind      SourceKind `json:"kind"`       // 源文件类型
	Chars     int        `json:"chars"`      // 文本字符数
	Pages     int        `json:"pages"`      // PDF页数，图片为0
	Digest    string     `json:"digest"`     // 文件内容SHA-256摘要
	FromCache bool       `json:"from_cache"` // 是否命中缓存
}

// Extractor 基于视觉模型的文本提取器
type Extractor struct {
	client   gemini.Client
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *logrus.Logger
}

// ExtractorOption 提取器配置选项
type ExtractorOption func(*Extractor)

// WithCache 设置提取结果缓存
func WithCache(c cache.Cache, ttl time.Duration) ExtractorOption {
	return func(e *Extractor) {
		e.cache = c
		if ttl > 0 {
			e.cacheTTL = ttl
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) ExtractorOption {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor 创建新的文本提取器
func NewExtractor(client gemini.Client, opts ...ExtractorOption) *Extractor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	e := &Extractor{
		client:   client,
		cacheTTL: defaultCacheTTL,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 从图片或PDF文件中提取文本
// 相同内容的文件直接命中缓存，不再调用模型
func (e *Extractor) Extract(ctx context.Context, filePath string) (*Result, error) {
	kind := DetectKind(filePath)
	if kind == KindUnknown {
		return nil, NewError(ErrCodeUnsupportedType,
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(filePath)))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, WrapError(err, ErrCodeFileAccess)
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	cacheKey := cache.ExtractionKey(digest)

	if e.cache != nil {
		var cached Result
		if found, cerr := cache.GetJSON(e.cache, cacheKey, &cached); cerr == nil && found {
			e.logger.WithFields(logrus.Fields{
				"file": filepath.Base(filePath),
				"kind": string(cached.Kind),
			}).Info("Extraction cache hit")
			cached.FromCache = true
			return &cached, nil
		}
	}

	pages := 0
	if kind == KindPDF {
		pages, err = PreflightPDF(filePath)
		if err != nil {
			return nil, err
		}
	}

	prompt := cards.ExtractionPrompt(kind == KindPDF)
	text, err := e.client.GenerateWithFile(ctx, prompt, filePath)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"file":  filepath.Base(filePath),
			"kind":  string(kind),
			"error": err.Error(),
		}).Error("Failed to extract text from file")
		return nil, WrapError(err, ErrCodeExtraction)
	}

	if text == "" {
		return nil, NewError(ErrCodeEmptyResult, "no text content extracted")
	}

	result := &Result{
		Text:   text,
		Kind:   kind,
		Chars:  len([]rune(text)),
		Pages:  pages,
		Digest: digest,
	}

	if e.cache != nil {
		if cerr := cache.SetJSON(e.cache, cacheKey, result, e.cacheTTL); cerr != nil {
			e.logger.WithFields(logrus.Fields{
				"file":  filepath.Base(filePath),
				"error": cerr.Error(),
			}).Warn("Failed to cache extraction result")
		}
	}

	e.logger.WithFields(logrus.Fields{
		"file":  filepath.Base(filePath),
		"kind":  string(kind),
		"chars": result.Chars,
		"pages": pages,
	}).Info("Extracted text from file")

	return result, nil
}
