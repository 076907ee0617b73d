package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryCache 测试内存缓存的基本功能
func TestMemoryCache(t *testing.T) {
	config := Config{
		Type:            "memory",
		DefaultTTL:      time.Second * 2,
		CleanupInterval: time.Second,
	}
	cache, err := NewMemoryCache(config)
	require.NoError(t, err)
	require.NotNil(t, cache)

	// 测试Set和Get
	err = cache.Set("key1", "value1", 0) // 使用默认TTL
	assert.NoError(t, err)

	val, found, err := cache.Get("key1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value1", val)

	// 测试不存在的键
	val, found, err = cache.Get("non-existent")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试过期
	err = cache.Set("expire-soon", "temp-value", time.Millisecond*500)
	assert.NoError(t, err)

	time.Sleep(time.Second)

	val, found, err = cache.Get("expire-soon")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试删除
	err = cache.Set("to-delete", "delete-me", 0)
	assert.NoError(t, err)

	err = cache.Delete("to-delete")
	assert.NoError(t, err)

	_, found, err = cache.Get("to-delete")
	assert.NoError(t, err)
	assert.False(t, found)

	// 测试清空
	err = cache.Set("key2", "value2", 0)
	assert.NoError(t, err)

	err = cache.Clear()
	assert.NoError(t, err)

	_, found, err = cache.Get("key2")
	assert.NoError(t, err)
	assert.False(t, found)
}

// TestRedisCache 测试Redis缓存，使用miniredis避免依赖真实服务器
func TestRedisCache(t *testing.T) {
	server := miniredis.RunT(t)

	config := Config{
		Type:       "redis",
		RedisAddr:  server.Addr(),
		DefaultTTL: time.Second * 2,
	}

	cache, err := NewRedisCache(config)
	require.NoError(t, err)
	require.NotNil(t, cache)

	// 测试Set和Get
	err = cache.Set("redis-key1", "redis-value1", 0)
	assert.NoError(t, err)

	val, found, err := cache.Get("redis-key1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "redis-value1", val)

	// 测试不存在的键
	val, found, err = cache.Get("redis-non-existent")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试过期
	err = cache.Set("redis-expire-soon", "redis-temp-value", time.Second)
	assert.NoError(t, err)

	server.FastForward(time.Second * 2)

	val, found, err = cache.Get("redis-expire-soon")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试删除
	err = cache.Set("redis-to-delete", "redis-delete-me", 0)
	assert.NoError(t, err)

	err = cache.Delete("redis-to-delete")
	assert.NoError(t, err)

	_, found, err = cache.Get("redis-to-delete")
	assert.NoError(t, err)
	assert.False(t, found)

	// 测试清空
	err = cache.Set("redis-key2", "redis-value2", 0)
	assert.NoError(t, err)

	err = cache.Clear()
	assert.NoError(t, err)

	_, found, err = cache.Get("redis-key2")
	assert.NoError(t, err)
	assert.False(t, found)
}

// TestCacheFactory 测试缓存工厂函数
func TestCacheFactory(t *testing.T) {
	// 测试内存缓存创建
	memCache, err := NewCache(DefaultConfig())
	assert.NoError(t, err)
	assert.NotNil(t, memCache)

	// 测试Redis缓存创建
	server := miniredis.RunT(t)
	redisCache, err := NewCache(Config{
		Type:      "redis",
		RedisAddr: server.Addr(),
	})
	assert.NoError(t, err)
	assert.NotNil(t, redisCache)

	// 测试未知缓存类型（应该返回默认内存缓存）
	unknownCache, err := NewCache(Config{Type: "unknown-type"})
	assert.NoError(t, err)
	assert.NotNil(t, unknownCache)
}

// TestCacheKeys 测试缓存键生成
func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "session:abc-123", SessionKey("abc-123"))
	assert.Equal(t, "extraction:deadbeef", ExtractionKey("deadbeef"))
}

// TestJSONHelpers 测试JSON序列化存取
func TestJSONHelpers(t *testing.T) {
	cache, err := NewMemoryCache(DefaultConfig())
	require.NoError(t, err)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err = SetJSON(cache, "json-key", payload{Name: "deck", Count: 3}, 0)
	require.NoError(t, err)

	var decoded payload
	found, err := GetJSON(cache, "json-key", &decoded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "deck", decoded.Name)
	assert.Equal(t, 3, decoded.Count)

	// 不存在的键
	found, err = GetJSON(cache, "missing", &decoded)
	assert.NoError(t, err)
	assert.False(t, found)

	// 内容损坏时返回错误
	err = cache.Set("broken", "{not json", 0)
	require.NoError(t, err)

	found, err = GetJSON(cache, "broken", &decoded)
	assert.Error(t, err)
	assert.False(t, found)
}
