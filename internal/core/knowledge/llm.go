// Package knowledge 以語言模型作為查表未命中成分的外部知識來源
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	aiservice "ingredient-analyzer/internal/core/ai/service"
	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

// AIService 發送 prompt 並取得模型回覆
type AIService interface {
	ProcessRequest(ctx context.Context, req aiservice.Request) (*aiservice.Response, error)
}

// LLMSource 實現 ingredient.KnowledgeSource
type LLMSource struct {
	ai          AIService
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

var _ ingredient.KnowledgeSource = (*LLMSource)(nil)

// NewLLMSource 創建知識來源
func NewLLMSource(ai AIService, cfg *config.Config) *LLMSource {
	return &LLMSource{
		ai:          ai,
		model:       cfg.OpenRouter.Model,
		maxTokens:   cfg.OpenRouter.MaxTokens,
		temperature: cfg.OpenRouter.Temperature,
		timeout:     cfg.Knowledge.Timeout,
	}
}

// QueryUnknown 一次查詢整批成分；單一項目格式錯誤只會被略過
func (s *LLMSource) QueryUnknown(ctx context.Context, names []string, allergies []string) (map[string]ingredient.KnowledgeEntry, error) {
	if len(names) == 0 {
		return map[string]ingredient.KnowledgeEntry{}, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.ai.ProcessRequest(ctx, aiservice.Request{
		Purpose:     "knowledge",
		Model:       s.model,
		Prompt:      BuildPrompt(names, allergies),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Validate:    validReply,
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge query failed: %w", err)
	}

	entries, err := ParseReply(resp.Content)
	if err != nil {
		return nil, err
	}
	common.LogDebug("知識來源回覆已解析",
		zap.Int("requested", len(names)),
		zap.Int("returned", len(entries)),
		zap.Bool("cache_hit", resp.CacheHit),
	)
	return entries, nil
}

// validReply 至少能解析出一個成分才值得快取
func validReply(content string) bool {
	entries, err := ParseReply(content)
	return err == nil && len(entries) > 0
}

// BuildPrompt 組出分級用的 prompt
func BuildPrompt(names []string, allergies []string) string {
	var b strings.Builder
	b.WriteString("In a scale of Green as healthy, Yellow as warning and Red as unhealthy, analyze these food ingredients: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nReturn a JSON structure with 1. how healthy each food ingredient is, 2. in a single sentence, why; and 3. what are potential alternative healthier ingredients.")
	if len(allergies) > 0 {
		b.WriteString("\n\nThe user is allergic to: ")
		b.WriteString(strings.Join(allergies, ", "))
		b.WriteString(". Mention it in the description when an ingredient contains one of these allergens.")
	}
	b.WriteString(`

Use the ingredient names exactly as given as the JSON keys. Return ONLY a valid JSON structure like this example:
{
  "ingredient_name": {
    "healthCategory": "RED",
    "description": "Reason why this ingredient is unhealthy",
    "alternatives": ["healthier alternative 1", "healthier alternative 2"]
  },
  "another_ingredient": {
    "healthCategory": "GREEN",
    "description": "Reason why this ingredient is healthy",
    "alternatives": []
  }
}`)
	return b.String()
}

// ParseReply 從模型回覆取出最大的 JSON 物件並逐項解析
func ParseReply(content string) (map[string]ingredient.KnowledgeEntry, error) {
	obj, ok := common.ExtractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("no valid JSON object in knowledge reply")
	}

	var raw map[string]json.RawMessage
	if err := common.ParseJSON(obj, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge reply: %w", err)
	}

	entries := make(map[string]ingredient.KnowledgeEntry, len(raw))
	for name, data := range raw {
		var entry ingredient.KnowledgeEntry
		if err := common.ParseJSONBytes(data, &entry); err != nil {
			common.LogWarn("略過格式錯誤的成分回覆", zap.String("ingredient", name), zap.Error(err))
			continue
		}
		entries[name] = entry
	}
	return entries, nil
}
