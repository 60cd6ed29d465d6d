package ingredient

import "fmt"

const (
	concernThreshold = 0.4
	safeThreshold    = 0.7
)

// Overall 依序套用規則產生整體評分，第一個符合的規則為準
// 過敏規則只比對 allergies 參數，不看結果上的 Allergen 旗標
func Overall(results []AnalysisResult, allergies []string) OverallScore {
	if len(results) == 0 {
		return OverallScore{Score: CategorySafe, Reason: "No ingredients to analyze"}
	}

	matcher := NewAllergyMatcher(allergies)
	counts := make(map[Category]int, 4)
	allergenHarmful := false
	for _, r := range results {
		counts[r.Category]++
		if r.Category == CategoryHarmful && matcher.Matches(r.Ingredient) {
			allergenHarmful = true
		}
	}

	switch {
	case allergenHarmful:
		return OverallScore{Score: CategoryHarmful, Reason: "Contains an ingredient you are allergic to."}
	case counts[CategoryHarmful] > 0:
		return OverallScore{Score: CategoryHarmful, Reason: "Contains one or more harmful, toxic, or allergenic ingredients."}
	}

	total := len(results)
	concerning := counts[CategoryCaution] + counts[CategoryHarmful]
	if float64(concerning)/float64(total) > concernThreshold {
		return OverallScore{
			Score:  CategoryCaution,
			Reason: fmt.Sprintf("%d out of %d ingredients are concerning or harmful", concerning, total),
		}
	}
	if safe := counts[CategorySafe]; float64(safe)/float64(total) > safeThreshold {
		return OverallScore{
			Score:  CategorySafe,
			Reason: fmt.Sprintf("%d out of %d ingredients are generally safe and natural", safe, total),
		}
	}
	return OverallScore{Score: CategoryCaution, Reason: "Mixed ingredients with some concerns"}
}
