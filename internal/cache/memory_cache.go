package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache 进程内缓存实现
// 单机部署时用于存放会话状态和提取结果
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache 创建内存缓存实例
func NewMemoryCache(config Config) (Cache, error) {
	defaultTTL := config.DefaultTTL
	if defaultTTL == 0 {
		defaultTTL = 24 * time.Hour
	}

	cleanup := config.CleanupInterval
	if cleanup == 0 {
		cleanup = 10 * time.Minute
	}

	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanup),
	}, nil
}

// Get 获取缓存内容
func (m *MemoryCache) Get(key string) (string, bool, error) {
	value, found := m.store.Get(key)
	if !found {
		return "", false, nil
	}
	str, ok := value.(string)
	if !ok {
		// 非字符串值视为未命中
		return "", false, nil
	}
	return str, true, nil
}

// Set 设置缓存内容，ttl为0时使用默认过期时间
func (m *MemoryCache) Set(key string, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Delete 删除缓存项
func (m *MemoryCache) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear 清空所有缓存
func (m *MemoryCache) Clear() error {
	m.store.Flush()
	return nil
}

func init() {
	RegisterCache("memory", NewMemoryCache)
}
