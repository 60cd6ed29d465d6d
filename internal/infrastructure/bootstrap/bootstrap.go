// Package bootstrap 依設定組裝分析流程，供 API 與 CLI 共用
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/core/ai/cache"
	"ingredient-analyzer/internal/core/ai/queue"
	aiservice "ingredient-analyzer/internal/core/ai/service"
	"ingredient-analyzer/internal/core/image"
	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/core/knowledge"
	"ingredient-analyzer/internal/core/ocr"
	openrouter "ingredient-analyzer/internal/core/service"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

// Components 組裝完成的服務
type Components struct {
	Analyzer *ingredient.Analyzer
	AI       *aiservice.Service // OpenRouter 未啟用時為 nil
	OCR      ocr.Extractor      // 未啟用時為 nil

	closers []func()
}

// Options 組裝選項
type Options struct {
	// Offline 不連線任何外部服務，只使用查表
	Offline bool
}

// Build 建立快取、AI 閘門、知識來源、分析器與文字辨識
func Build(ctx context.Context, cfg *config.Config, opts Options) (*Components, error) {
	c := &Components{}

	if cfg.OpenRouter.Enabled && !opts.Offline {
		store, err := cache.NewStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		if store != nil {
			c.closers = append(c.closers, func() { _ = store.Close() })
		}

		gate := queue.NewManager(cfg)
		c.closers = append(c.closers, gate.Close)

		c.AI = aiservice.NewService(openrouter.NewOpenRouterService(cfg), store, gate)
	}

	var source ingredient.KnowledgeSource
	if c.AI != nil && cfg.Knowledge.Enabled {
		source = knowledge.NewLLMSource(c.AI, cfg)
	}
	c.Analyzer = ingredient.NewAnalyzer(ingredient.NewClassifier(ingredient.DefaultTable, source))

	if !opts.Offline {
		var ai ocr.AIService
		if c.AI != nil {
			ai = c.AI
		}
		images := image.NewService(cfg.Image.MaxSizeBytes).WithMaxDimension(cfg.Image.MaxDimension)
		extractor, err := ocr.New(ctx, cfg, ai, images)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.OCR = extractor
	}

	common.LogInfo("分析流程已初始化",
		zap.Bool("ai_enabled", c.AI != nil),
		zap.Bool("knowledge_enabled", source != nil),
		zap.Bool("ocr_enabled", c.OCR != nil),
		zap.Bool("offline", opts.Offline),
	)
	return c, nil
}

// Close 依建立的相反順序釋放資源
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
