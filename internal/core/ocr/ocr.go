// Package ocr 將標籤圖片轉為文字
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	aiservice "ingredient-analyzer/internal/core/ai/service"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// 支援的 provider
const (
	ProviderOpenRouter  = "openrouter"
	ProviderRekognition = "rekognition"
	ProviderNone        = "none"
)

// Extractor 文字辨識
type Extractor interface {
	ExtractText(ctx context.Context, imageData string) (string, error)
	Name() string
}

// AIService 發送 prompt 並取得模型回覆
type AIService interface {
	ProcessRequest(ctx context.Context, req aiservice.Request) (*aiservice.Response, error)
}

// ImageEncoder 驗證上傳圖片並轉為 JPEG
type ImageEncoder interface {
	ProcessImage(ctx context.Context, imageData string) (string, error)
	JPEGBytes(ctx context.Context, imageData string) ([]byte, error)
}

// Error 文字辨識失敗
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New 依設定建立 Extractor；未啟用時回傳 nil
func New(ctx context.Context, cfg *config.Config, ai AIService, images ImageEncoder) (Extractor, error) {
	var ext Extractor
	switch cfg.OCR.Provider {
	case ProviderOpenRouter, "":
		if !cfg.OpenRouter.Enabled || ai == nil {
			common.LogWarn("OpenRouter 未啟用，停用圖片文字辨識")
			return nil, nil
		}
		ext = NewVisionExtractor(ai, images, cfg.OpenRouter.VisionModel, cfg.OpenRouter.MaxTokens)
	case ProviderRekognition:
		r, err := NewRekognitionExtractor(ctx, cfg.OCR.AWSRegion, images)
		if err != nil {
			return nil, fmt.Errorf("failed to create rekognition client: %w", err)
		}
		ext = r
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown ocr provider %q", cfg.OCR.Provider)
	}

	common.LogInfo("圖片文字辨識已啟用", zap.String("provider", ext.Name()))
	return Instrument(ext), nil
}

// Instrument 為 Extractor 加上指標與日誌
func Instrument(next Extractor) Extractor {
	if next == nil {
		return nil
	}
	return &instrumented{next: next}
}

type instrumented struct {
	next Extractor
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) ExtractText(ctx context.Context, imageData string) (string, error) {
	start := time.Now()
	text, err := i.next.ExtractText(ctx, imageData)
	metrics.OCRCalls.WithLabelValues(i.next.Name(), metrics.Outcome(err)).Inc()
	if err != nil {
		common.LogError("圖片文字辨識失敗",
			zap.String("provider", i.next.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	common.LogInfo("圖片文字辨識完成",
		zap.String("provider", i.next.Name()),
		zap.Duration("duration", time.Since(start)),
		zap.Int("text_length", len(text)),
	)
	return strings.TrimSpace(text), nil
}
