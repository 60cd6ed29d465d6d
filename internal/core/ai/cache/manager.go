package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// CacheManager 記憶體緩存，TTL 到期或超過容量時以 LRU 淘汰
type CacheManager struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // 前端為最近使用
	stats cacheStats

	done      chan struct{}
	closeOnce sync.Once
}

// cacheEntry 緩存條目
type cacheEntry struct {
	key         string
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建新的緩存管理器並啟動過期清理
func NewManager(cfg *config.Config) *CacheManager {
	m := newManager(cfg.Cache.MaxSize, cfg.Cache.TTL, time.Now)

	if cfg.Cache.CleanupInterval > 0 {
		go m.startCleanup(cfg.Cache.CleanupInterval)
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)
	return m
}

func newManager(maxSize int, ttl time.Duration, now func() time.Time) *CacheManager {
	return &CacheManager{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		done:    make(chan struct{}),
	}
}

// Backend 實現 Store
func (m *CacheManager) Backend() string {
	return "memory"
}

// Get 獲取緩存值
func (m *CacheManager) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		m.stats.misses++
		metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()
		common.LogCacheMiss("memory")
		return "", common.ErrCacheMiss
	}

	entry := el.Value.(*cacheEntry)
	if m.now().After(entry.expiresAt) {
		m.removeElement(el)
		m.stats.misses++
		metrics.CacheLookups.WithLabelValues("memory", "expired").Inc()
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", common.ErrCacheMiss
	}

	entry.accessCount++
	m.order.MoveToFront(el)
	m.stats.hits++
	metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
	common.LogCacheHit("memory")
	return entry.value, nil
}

// Set 設置緩存值
func (m *CacheManager) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if el, ok := m.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.value = value
		entry.expiresAt = now.Add(m.ttl)
		m.order.MoveToFront(el)
		return nil
	}

	if m.maxSize > 0 && len(m.items) >= m.maxSize {
		// 先清過期項目，仍不足再淘汰最久未使用
		if evicted := m.cleanupLocked(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		for len(m.items) >= m.maxSize {
			m.evictLRU()
		}
	}

	m.items[key] = m.order.PushFront(&cacheEntry{
		key:       key,
		value:     value,
		expiresAt: now.Add(m.ttl),
		createdAt: now,
	})
	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (m *CacheManager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.cleanupLocked()
			size := len(m.items)
			m.mu.Unlock()
			if count > 0 {
				common.LogDebug("Cleaned up expired cache entries",
					zap.Int("count", count),
					zap.Int("remaining_size", size),
				)
			}
		case <-m.done:
			return
		}
	}
}

// cleanupLocked 清理過期的緩存，呼叫前需持有鎖
func (m *CacheManager) cleanupLocked() int {
	now := m.now()
	count := 0
	for el := m.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			m.removeElement(el)
			count++
		}
		el = prev
	}
	return count
}

// evictLRU 淘汰最久未使用的項目
func (m *CacheManager) evictLRU() {
	el := m.order.Back()
	if el == nil {
		return
	}
	common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", el.Value.(*cacheEntry).key))
	m.removeElement(el)
}

func (m *CacheManager) removeElement(el *list.Element) {
	m.order.Remove(el)
	delete(m.items, el.Value.(*cacheEntry).key)
	m.stats.evictions++
}

// GetStats 獲取緩存統計信息
func (m *CacheManager) GetStats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	ratio := 0.0
	if total := m.stats.hits + m.stats.misses; total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"backend":   "memory",
		"size":      len(m.items),
		"max_size":  m.maxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close 停止清理協程並清空緩存
func (m *CacheManager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*list.Element)
	m.order.Init()
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
