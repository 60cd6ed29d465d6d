package ingredient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// Classifier 先查表，未命中者整批交給外部知識來源
type Classifier struct {
	table  *Table
	source KnowledgeSource
}

// NewClassifier 建立分類器，source 為 nil 時未命中的成分一律為 unknown
func NewClassifier(table *Table, source KnowledgeSource) *Classifier {
	if table == nil {
		table = DefaultTable
	}
	return &Classifier{table: table, source: source}
}

// Table 回傳使用中的查表
func (c *Classifier) Table() *Table {
	return c.table
}

// Classify 依輸入順序產生分析結果，外部來源失敗時降級為 unknown，不回傳錯誤
func (c *Classifier) Classify(ctx context.Context, ingredients []string, allergies []string) []AnalysisResult {
	results := make([]AnalysisResult, 0, len(ingredients))
	pending := make([]int, 0)
	batch := make([]string, 0)
	inBatch := make(map[string]struct{})

	for _, raw := range ingredients {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		if m, ok := c.table.Lookup(name); ok {
			results = append(results, resultFromMatch(name, m))
			continue
		}
		pending = append(pending, len(results))
		results = append(results, unknownResult(name))
		if _, ok := inBatch[name]; !ok {
			inBatch[name] = struct{}{}
			batch = append(batch, name)
		}
	}

	if len(batch) == 0 {
		return results
	}

	entries := c.queryKnowledge(ctx, batch, allergies)
	if len(entries) == 0 {
		return results
	}

	for _, i := range pending {
		name := results[i].Ingredient
		entry, ok := entries[name]
		if !ok {
			common.LogWarn("知識來源缺少成分", zap.String("ingredient", name))
			continue
		}
		result, err := resultFromKnowledge(name, entry)
		if err != nil {
			common.LogWarn("知識來源回覆格式錯誤", zap.String("ingredient", name), zap.Error(err))
			continue
		}
		results[i] = result
	}
	return results
}

// queryKnowledge 呼叫外部來源一次，回傳以正規化名稱為鍵的結果；任何失敗都回傳 nil
func (c *Classifier) queryKnowledge(ctx context.Context, batch, allergies []string) (entries map[string]KnowledgeEntry) {
	if c.source == nil {
		metrics.KnowledgeCalls.WithLabelValues("disabled").Inc()
		return nil
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			common.LogError("知識來源發生 panic", zap.Any("panic", r), zap.Int("batch_size", len(batch)))
			metrics.ObserveKnowledgeCall("error", time.Since(start))
			entries = nil
		}
	}()

	reply, err := c.source.QueryUnknown(ctx, batch, allergies)
	duration := time.Since(start)
	if err != nil {
		common.LogWarn("知識來源查詢失敗，未知成分降級為 unknown",
			zap.Int("batch_size", len(batch)),
			zap.Duration("duration", duration),
			zap.Error(err))
		metrics.ObserveKnowledgeCall("error", duration)
		return nil
	}
	if len(reply) == 0 {
		common.LogWarn("知識來源沒有回傳資料", zap.Int("batch_size", len(batch)))
		metrics.ObserveKnowledgeCall("empty", duration)
		return nil
	}
	metrics.ObserveKnowledgeCall("success", duration)

	wanted := make(map[string]struct{}, len(batch))
	for _, name := range batch {
		wanted[name] = struct{}{}
	}
	entries = make(map[string]KnowledgeEntry, len(reply))
	for key, entry := range reply {
		name := NormalizeName(key)
		if _, ok := wanted[name]; !ok {
			common.LogDebug("忽略知識來源多回傳的成分", zap.String("ingredient", key))
			continue
		}
		entries[name] = entry
	}
	return entries
}

func resultFromKnowledge(name string, entry KnowledgeEntry) (AnalysisResult, error) {
	category, ok := ParseCategory(entry.HealthCategory)
	if !ok || !category.IsTier() {
		return AnalysisResult{}, fmt.Errorf("unexpected health category %q", entry.HealthCategory)
	}
	if entry.Description == "" {
		return AnalysisResult{}, fmt.Errorf("missing description")
	}
	alternatives := make([]string, 0, len(entry.Alternatives))
	for _, alt := range entry.Alternatives {
		if alt != "" {
			alternatives = append(alternatives, alt)
		}
	}
	return AnalysisResult{
		Ingredient:   name,
		Category:     category,
		Description:  entry.Description,
		Alternatives: alternatives,
	}, nil
}
