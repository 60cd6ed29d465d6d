// Package cache 提供 AI 回應快取，支援記憶體與 Redis 兩種後端
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"ingredient-analyzer/internal/infrastructure/config"
)

// Store AI 回應快取，未命中時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetStats() map[string]interface{}
	Backend() string
	Close() error
}

// Key 以模型、prompt 與圖片產生快取鍵
func Key(model, prompt, imageData string) string {
	if imageData == "" {
		return fmt.Sprintf("text:%s", hashString(model+"\x00"+prompt))
	}
	return fmt.Sprintf("multimodal:%s:%s", hashString(model+"\x00"+prompt), hashString(imageData))
}

// hashString 計算字符串的 SHA-256 哈希值
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// NewStore 依設定建立快取，停用時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory", "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
