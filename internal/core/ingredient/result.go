package ingredient

// UnknownDescription 外部知識來源無法判斷時的固定說明
const UnknownDescription = "Unknown ingredient, could not be analyzed"

// AnalysisResult 單一成分的分析結果，每次請求重新產生
type AnalysisResult struct {
	Ingredient   string   `json:"ingredient"`
	Category     Category `json:"category"`
	Description  string   `json:"description"`
	Alternatives []string `json:"alternatives"`
	// Allergen 已因過敏清單重評過
	Allergen bool `json:"allergen,omitempty"`
}

// OverallScore 整體評分
type OverallScore struct {
	Score  Category `json:"score"`
	Reason string   `json:"reason"`
}

func unknownResult(name string) AnalysisResult {
	return AnalysisResult{
		Ingredient:   name,
		Category:     CategoryUnknown,
		Description:  UnknownDescription,
		Alternatives: []string{},
	}
}

func resultFromMatch(name string, m Match) AnalysisResult {
	alternatives := m.Entry.Alternatives
	if alternatives == nil {
		alternatives = []string{}
	}
	return AnalysisResult{
		Ingredient:   name,
		Category:     m.Category,
		Description:  m.Entry.Description,
		Alternatives: alternatives,
	}
}

func cloneResults(results []AnalysisResult) []AnalysisResult {
	out := make([]AnalysisResult, len(results))
	for i, r := range results {
		out[i] = r
		if r.Alternatives != nil {
			out[i].Alternatives = append([]string{}, r.Alternatives...)
		}
	}
	return out
}
