// Package queue 限制同時進行的 AI 呼叫數量，超出的請求排隊等待
package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	Active         int   `json:"active"`
	ProcessedCount int64 `json:"processed_count"`
	RejectedCount  int64 `json:"rejected_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
	Closed         bool  `json:"closed"`
}

// Manager AI 呼叫閘門：Workers 個名額，最多 MaxSize 個請求等待
type Manager struct {
	slots        chan struct{}
	maxQueueSize int
	workers      int

	mu      sync.Mutex
	waiting int

	processed int64
	rejected  int64

	done      chan struct{}
	closeOnce sync.Once
}

// NewManager 創建新的隊列管理器
func NewManager(cfg *config.Config) *Manager {
	return newManager(cfg.Queue.Workers, cfg.Queue.MaxSize)
}

func newManager(workers, maxQueueSize int) *Manager {
	if workers <= 0 {
		workers = 1
	}
	return &Manager{
		slots:        make(chan struct{}, workers),
		maxQueueSize: maxQueueSize,
		workers:      workers,
		done:         make(chan struct{}),
	}
}

// Acquire 取得一個名額，呼叫端必須執行回傳的 release
func (m *Manager) Acquire(ctx context.Context) (func(), error) {
	select {
	case <-m.done:
		return nil, fmt.Errorf("queue manager is closed")
	default:
	}

	// 有空位時直接取得
	select {
	case m.slots <- struct{}{}:
		return m.releaseFunc(), nil
	default:
	}

	m.mu.Lock()
	if m.waiting >= m.maxQueueSize {
		m.mu.Unlock()
		atomic.AddInt64(&m.rejected, 1)
		common.LogWarn("AI 請求排隊已滿",
			zap.Int("queue_length", m.maxQueueSize),
			zap.Int("workers", m.workers),
		)
		return nil, common.ErrQueueFull
	}
	m.waiting++
	m.mu.Unlock()
	metrics.GateWaiting.Inc()

	defer func() {
		m.mu.Lock()
		m.waiting--
		m.mu.Unlock()
		metrics.GateWaiting.Dec()
	}()

	select {
	case m.slots <- struct{}{}:
		return m.releaseFunc(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.done:
		return nil, fmt.Errorf("queue manager is closed")
	}
}

func (m *Manager) releaseFunc() func() {
	metrics.GateActive.Inc()
	var once sync.Once
	return func() {
		once.Do(func() {
			<-m.slots
			atomic.AddInt64(&m.processed, 1)
			metrics.GateActive.Dec()
		})
	}
}

// Do 取得名額後執行 fn
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	release, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	m.mu.Lock()
	waiting := m.waiting
	m.mu.Unlock()

	closed := false
	select {
	case <-m.done:
		closed = true
	default:
	}

	return &Status{
		QueueLength:    waiting,
		Active:         len(m.slots),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		RejectedCount:  atomic.LoadInt64(&m.rejected),
		MaxQueueSize:   m.maxQueueSize,
		Workers:        m.workers,
		Closed:         closed,
	}
}

// Close 關閉隊列管理器，等待中的請求會立即返回錯誤
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}
