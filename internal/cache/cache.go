package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// 会话与提取结果缓存的键前缀
const (
	sessionKeyPrefix    = "session"
	extractionKeyPrefix = "extraction"
)

// Cache 缓存接口
// 会话状态与提取结果都以字符串形式存取
type Cache interface {
	Get(key string) (value string, found bool, err error)
	Set(key string, value string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Factory 缓存工厂函数类型
type Factory func(config Config) (Cache, error)

// 注册的缓存实现
var registry = make(map[string]Factory)

// RegisterCache 注册缓存实现
func RegisterCache(name string, factory Factory) {
	registry[name] = factory
}

// NewCache 创建缓存实例
func NewCache(config Config) (Cache, error) {
	if factory, ok := registry[config.Type]; ok {
		return factory(config)
	}
	// 默认使用内存缓存
	return NewMemoryCache(config)
}

// Config 缓存配置
type Config struct {
	// 缓存类型: "memory", "redis" 等
	Type string
	// Redis连接地址 (仅Redis缓存使用)
	RedisAddr string
	// Redis密码 (仅Redis缓存使用)
	RedisPassword string
	// Redis数据库编号 (仅Redis缓存使用)
	RedisDB int
	// 默认缓存过期时间
	DefaultTTL time.Duration
	// 自动清理间隔时间 (仅内存缓存使用)
	CleanupInterval time.Duration
}

// DefaultConfig 返回默认缓存配置
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		DefaultTTL:      time.Hour * 24,
		CleanupInterval: time.Minute * 10,
	}
}

// SessionKey 生成会话状态的缓存键
func SessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sessionID)
}

// ExtractionKey 生成提取结果的缓存键
// digest为源文件内容的SHA-256摘要
func ExtractionKey(digest string) string {
	return fmt.Sprintf("%s:%s", extractionKeyPrefix, digest)
}

// GetJSON 获取缓存内容并反序列化到目标结构
func GetJSON(c Cache, key string, target interface{}) (bool, error) {
	value, found, err := c.Get(key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal([]byte(value), target); err != nil {
		return false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return true, nil
}

// SetJSON 将结构序列化后写入缓存
func SetJSON(c Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	return c.Set(key, string(data), ttl)
}
