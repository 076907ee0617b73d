package gemini

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GoogleClientName Google Gemini客户端名称
const GoogleClientName = "google"

// 图片扩展名到内联格式的映射
var imageFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
}

// GoogleClient Google Gemini客户端实现
type GoogleClient struct {
	client *genai.Client
	config *Config
	logger *logrus.Logger
}

// 自动注册Google客户端
func init() {
	RegisterClient(GoogleClientName, func(config *Config) (Client, error) {
		return NewGoogleClient(config)
	})
}

// NewGoogleClient 创建新的Google Gemini客户端
func NewGoogleClient(config *Config) (*GoogleClient, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.APIKey == "" {
		return nil, NewError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, WrapError(err, ErrCodeNetworkError)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &GoogleClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Name 获取客户端名称
func (c *GoogleClient) Name() string {
	return GoogleClientName
}

// Close 释放底层连接资源
func (c *GoogleClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Generate 根据纯文本提示词生成补全
func (c *GoogleClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", NewError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	return c.generate(ctx, genai.Text(prompt))
}

// GenerateWithFile 根据提示词与本地附件文件生成补全
func (c *GoogleClient) GenerateWithFile(ctx context.Context, prompt string, filePath string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", NewError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".pdf" {
		return c.generateWithUpload(ctx, prompt, filePath)
	}

	format, ok := imageFormats[ext]
	if !ok {
		return "", NewError(ErrCodeUnsupportedFile, ErrMsgUnsupportedFile)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", WrapError(err, ErrCodeInvalidRequest)
	}

	return c.generate(ctx, genai.Text(prompt), genai.ImageData(format, data))
}

// generateWithUpload PDF走文件上传通道，调用结束后删除远端文件
func (c *GoogleClient) generateWithUpload(ctx context.Context, prompt string, filePath string) (string, error) {
	file, err := c.client.UploadFileFromPath(ctx, filePath, nil)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"file":  filepath.Base(filePath),
			"error": err.Error(),
		}).Error("Failed to upload file to gemini")
		return "", WrapError(err, ErrCodeFileUpload)
	}

	defer func() {
		if derr := c.client.DeleteFile(ctx, file.Name); derr != nil {
			c.logger.WithFields(logrus.Fields{
				"file":  file.Name,
				"error": derr.Error(),
			}).Warn("Failed to delete uploaded gemini file")
		}
	}()

	return c.generate(ctx, genai.Text(prompt), genai.FileData{URI: file.URI})
}

// generate 执行生成请求并提取文本结果
func (c *GoogleClient) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(float32(c.config.Temperature))
	model.SetMaxOutputTokens(int32(c.config.MaxTokens))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", NewError(ErrCodeTimeout, "gemini request timed out")
		}

		c.logger.WithFields(logrus.Fields{
			"model": c.config.Model,
			"error": err.Error(),
		}).Error("Gemini generation request failed")
		return "", WrapError(err, ErrCodeServerError)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", NewError(ErrCodeEmptyCompletion, ErrMsgEmptyCompletion)
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", NewError(ErrCodeEmptyCompletion, ErrMsgEmptyCompletion)
	}

	return result, nil
}
