// Package profile 保存使用者的過敏清單
package profile

import (
	"context"
	"strings"
	"sync"

	"ingredient-analyzer/internal/pkg/common"
)

// Store 過敏清單儲存
type Store interface {
	// Get 取得使用者的過敏清單，不存在時回傳 common.ErrProfileNotFound
	Get(ctx context.Context, userID string) ([]string, error)
	// Put 覆寫使用者的過敏清單並回傳正規化後的結果
	Put(ctx context.Context, userID string, allergies []string) ([]string, error)
	Close() error
}

// MemoryStore 行程內儲存
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string][]string
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string][]string)}
}

// Get 取得過敏清單
func (s *MemoryStore) Get(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allergies, ok := s.profiles[normalizeUserID(userID)]
	if !ok {
		return nil, common.ErrProfileNotFound
	}
	return append([]string(nil), allergies...), nil
}

// Put 覆寫過敏清單
func (s *MemoryStore) Put(_ context.Context, userID string, allergies []string) ([]string, error) {
	id := normalizeUserID(userID)
	if id == "" {
		return nil, common.NewValidationError("user id is required")
	}
	normalized := common.NormalizeList(allergies)

	s.mu.Lock()
	s.profiles[id] = normalized
	s.mu.Unlock()

	return append([]string(nil), normalized...), nil
}

// Close 無需釋放資源
func (s *MemoryStore) Close() error {
	return nil
}

func normalizeUserID(userID string) string {
	return strings.TrimSpace(userID)
}
