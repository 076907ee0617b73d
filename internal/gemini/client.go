package gemini

import (
	"context"
	"fmt"
	"time"
)

// 默认配置常量
const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 8192
	DefaultTimeout     = 120 * time.Second
)

// Client 生成模型客户端接口
type Client interface {
	// Generate 根据纯文本提示词生成补全
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithFile 根据提示词与本地附件文件生成补全
	// 图片内联发送，PDF走上传通道并在调用结束后清理
	GenerateWithFile(ctx context.Context, prompt string, filePath string) (string, error)

	// Name 获取客户端名称
	Name() string

	// Close 释放底层连接资源
	Close() error
}

// Config 生成模型客户端配置
type Config struct {
	APIKey      string        // API密钥
	Model       string        // 模型名称
	Temperature float64       // 采样温度
	MaxTokens   int           // 最大生成token数
	Timeout     time.Duration // 请求超时时间
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// Option 配置选项函数类型
type Option func(*Config)

// WithAPIKey 设置API密钥
func WithAPIKey(apiKey string) Option {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithModel 设置模型名称
func WithModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.Model = model
		}
	}
}

// WithTemperature 设置采样温度
func WithTemperature(temperature float64) Option {
	return func(c *Config) {
		if temperature >= 0 {
			c.Temperature = temperature
		}
	}
}

// WithMaxTokens 设置最大生成token数
func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		if maxTokens > 0 {
			c.MaxTokens = maxTokens
		}
	}
}

// WithTimeout 设置请求超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// Factory 客户端工厂函数类型
type Factory func(config *Config) (Client, error)

// 客户端工厂注册表
var clientFactories = make(map[string]Factory)

// RegisterClient 注册客户端工厂
func RegisterClient(name string, factory Factory) {
	clientFactories[name] = factory
}

// NewClient 创建指定类型的客户端实例
func NewClient(name string, opts ...Option) (Client, error) {
	factory, ok := clientFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown gemini client type: %s", name)
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	return factory(config)
}
