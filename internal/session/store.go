package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fyerfyer/card-gen-system/internal/cache"
)

// 会话状态的默认过期时间
const defaultSessionTTL = 2 * time.Hour

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found or expired")

// Store 缓存后端的会话存取
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewStore 创建会话存取器
func NewStore(c cache.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{cache: c, ttl: ttl}
}

// Create 创建新会话并立即持久化
func (s *Store) Create() (*Session, error) {
	sess := &Session{ID: uuid.New().String()}
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get 按ID加载会话
func (s *Store) Get(sessionID string) (*Session, error) {
	var sess Session
	found, err := cache.GetJSON(s.cache, cache.SessionKey(sessionID), &sess)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Save 持久化会话状态并刷新过期时间
func (s *Store) Save(sess *Session) error {
	return cache.SetJSON(s.cache, cache.SessionKey(sess.ID), sess, s.ttl)
}

// Delete 删除会话
func (s *Store) Delete(sessionID string) error {
	return s.cache.Delete(cache.SessionKey(sessionID))
}

// Update 加载会话，应用修改函数后保存
// 修改函数返回错误时不保存
func (s *Store) Update(sessionID string, apply func(*Session) error) (*Session, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := apply(sess); err != nil {
		return nil, err
	}

	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}
