package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/core/ai/cache"
	"ingredient-analyzer/internal/core/ai/queue"
	openrouter "ingredient-analyzer/internal/core/service"
	"ingredient-analyzer/internal/pkg/common"
)

// Generator 實際呼叫模型的傳輸層
type Generator interface {
	GenerateResponse(ctx context.Context, c openrouter.Completion) (string, error)
}

// Request AI 請求
type Request struct {
	Purpose     string // 用於日誌，例如 knowledge、ocr
	Model       string
	Prompt      string
	ImageData   string
	MaxTokens   int
	Temperature float64
	// Validate 回覆可用時才寫入快取，nil 表示非空即可
	Validate func(content string) bool
}

// Response AI 回應
type Response struct {
	Content  string `json:"content"`
	CacheHit bool   `json:"cache_hit"`
}

// Service AI 服務：快取 → 閘門 → 模型
type Service struct {
	generator Generator
	cache     cache.Store
	gate      *queue.Manager
}

// NewService 創建 AI 服務，store 與 gate 可為 nil
func NewService(generator Generator, store cache.Store, gate *queue.Manager) *Service {
	return &Service{
		generator: generator,
		cache:     store,
		gate:      gate,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, req Request) (*Response, error) {
	// 統一 prompt 空白，確保快取 key 一致
	prompt := strings.Join(strings.Fields(req.Prompt), " ")
	key := cache.Key(req.Model, prompt, req.ImageData)

	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		if err == nil && req.cacheable(val) {
			return &Response{Content: val, CacheHit: true}, nil
		}
		if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.String("purpose", req.Purpose), zap.Error(err))
		}
	}

	var content string
	call := func(ctx context.Context) error {
		start := time.Now()
		out, err := s.generator.GenerateResponse(ctx, openrouter.Completion{
			Model:       req.Model,
			Prompt:      prompt,
			ImageData:   req.ImageData,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		})
		common.LogAICall(req.Purpose, time.Since(start), err)
		content = out
		return err
	}

	var err error
	if s.gate != nil {
		err = s.gate.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil && req.cacheable(content) {
		if err := s.cache.Set(ctx, key, content); err != nil {
			common.LogWarn("快取寫入失敗", zap.String("purpose", req.Purpose), zap.Error(err))
		}
	}

	return &Response{Content: content}, nil
}

func (r Request) cacheable(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	return r.Validate == nil || r.Validate(content)
}

// CacheStats 快取統計，未啟用時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.GetStats()
}

// GateStatus AI 呼叫閘門狀態，未啟用時回傳 nil
func (s *Service) GateStatus() *queue.Status {
	if s.gate == nil {
		return nil
	}
	return s.gate.GetQueueStatus()
}
