package ingredient

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"

	"go.uber.org/zap"

	"ingredient-analyzer/internal/pkg/common"
)

// Status 報告狀態
type Status string

const (
	// StatusEmpty 沒有抽取到任何成分
	StatusEmpty Status = "empty"
	// StatusUnresolved 有成分但全部無法判斷
	StatusUnresolved Status = "unresolved"
	// StatusAnalyzed 至少一個成分有分級
	StatusAnalyzed Status = "analyzed"
)

// MisleadingNote 成分名稱提到容易誤導的商品
type MisleadingNote struct {
	Ingredient      string `json:"ingredient"`
	Product         string `json:"product"`
	Description     string `json:"description"`
	RealIngredients string `json:"realIngredients"`
}

// Report 一次分析的完整輸出
type Report struct {
	Status      Status           `json:"status"`
	Ingredients []string         `json:"ingredients"`
	Results     []AnalysisResult `json:"results"`
	Overall     OverallScore     `json:"overall"`
	Marker      string           `json:"marker,omitempty"`
	Confidence  Confidence       `json:"confidence,omitempty"`
	Misleading  []MisleadingNote `json:"misleading,omitempty"`
	Tip         string           `json:"tip,omitempty"`
}

// Analyzer 串接抽取、分類、過敏重評與總分
type Analyzer struct {
	classifier *Classifier
}

// NewAnalyzer 創建分析服務
func NewAnalyzer(classifier *Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Classifier 回傳底層分類器
func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}

// AnalyzeText 從原始標籤文字開始分析
func (a *Analyzer) AnalyzeText(ctx context.Context, text string, allergies []string) Report {
	extraction := Extract(text)
	report := a.AnalyzeIngredients(ctx, extraction.Ingredients, allergies)
	report.Marker = extraction.Marker
	report.Confidence = extraction.Confidence
	return report
}

// AnalyzeIngredients 分析已拆好的成分清單
func (a *Analyzer) AnalyzeIngredients(ctx context.Context, ingredients []string, allergies []string) Report {
	allergies = common.NormalizeList(allergies)

	candidates := make([]string, 0, len(ingredients))
	for _, name := range ingredients {
		if n := NormalizeName(name); n != "" {
			candidates = append(candidates, n)
		}
	}

	if len(candidates) == 0 {
		return Report{
			Status:      StatusEmpty,
			Ingredients: []string{},
			Results:     []AnalysisResult{},
			Overall:     Overall(nil, allergies),
		}
	}

	results := a.classifier.Classify(ctx, candidates, allergies)
	results = ApplyAllergyOverrides(results, allergies)
	overall := Overall(results, allergies)

	report := Report{
		Status:      reportStatus(results),
		Ingredients: candidates,
		Results:     results,
		Overall:     overall,
		Misleading:  a.misleadingNotes(candidates),
		Tip:         pickTip(a.classifier.Table().Tips(), candidates),
	}

	common.LogInfo("成分分析完成",
		zap.Int("ingredients", len(candidates)),
		zap.String("status", string(report.Status)),
		zap.String("overall", overall.Score.String()))
	return report
}

func reportStatus(results []AnalysisResult) Status {
	if len(results) == 0 {
		return StatusEmpty
	}
	for _, r := range results {
		// 過敏升級的成分原本可能是 unknown，仍視為已判斷
		if r.Category != CategoryUnknown {
			return StatusAnalyzed
		}
	}
	return StatusUnresolved
}

// misleadingNotes 成分名稱以完整單字包含誤導性商品名稱時附上說明
func (a *Analyzer) misleadingNotes(ingredients []string) []MisleadingNote {
	products := a.classifier.Table().MisleadingProducts()
	if len(products) == 0 {
		return nil
	}
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)

	var notes []MisleadingNote
	seen := make(map[string]struct{})
	for _, ingredient := range ingredients {
		for _, product := range names {
			if _, ok := seen[product]; ok {
				continue
			}
			if indexWord(ingredient, product) < 0 {
				continue
			}
			seen[product] = struct{}{}
			p := products[product]
			notes = append(notes, MisleadingNote{
				Ingredient:      ingredient,
				Product:         product,
				Description:     p.Description,
				RealIngredients: p.RealIngredients,
			})
		}
	}
	return notes
}

// pickTip 依成分清單決定一則小技巧，同樣的輸入得到同樣的結果
func pickTip(tips []string, ingredients []string) string {
	if len(tips) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(ingredients, "\x00")))
	return tips[h.Sum32()%uint32(len(tips))]
}
