package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultsOf(categories ...Category) []AnalysisResult {
	out := make([]AnalysisResult, len(categories))
	for i, c := range categories {
		out[i] = AnalysisResult{Ingredient: "item" + string(rune('a'+i)), Category: c}
	}
	return out
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name      string
		results   []AnalysisResult
		allergies []string
		want      OverallScore
	}{
		{
			name: "no results",
			want: OverallScore{Score: CategorySafe, Reason: "No ingredients to analyze"},
		},
		{
			name: "harmful allergen in allergy list",
			results: []AnalysisResult{
				{Ingredient: "oats", Category: CategoryHarmful, Allergen: true},
				{Ingredient: "honey", Category: CategorySafe},
			},
			allergies: []string{"oats"},
			want:      OverallScore{Score: CategoryHarmful, Reason: "Contains an ingredient you are allergic to."},
		},
		{
			name: "allergen flag alone does not trigger allergy rule",
			results: []AnalysisResult{
				{Ingredient: "oats", Category: CategoryHarmful, Allergen: true},
				{Ingredient: "honey", Category: CategorySafe},
			},
			want: OverallScore{Score: CategoryHarmful, Reason: "Contains one or more harmful, toxic, or allergenic ingredients."},
		},
		{
			name: "harmful allergen by name",
			results: []AnalysisResult{
				{Ingredient: "peanut oil", Category: CategoryHarmful},
			},
			allergies: []string{"peanut"},
			want:      OverallScore{Score: CategoryHarmful, Reason: "Contains an ingredient you are allergic to."},
		},
		{
			name:    "any harmful",
			results: resultsOf(CategoryCaution, CategoryHarmful, CategoryCaution),
			want:    OverallScore{Score: CategoryHarmful, Reason: "Contains one or more harmful, toxic, or allergenic ingredients."},
		},
		{
			name:      "allergen that is not harmful does not trigger allergy rule",
			results:   resultsOf(CategorySafe, CategorySafe),
			allergies: []string{"itema"},
			want:      OverallScore{Score: CategorySafe, Reason: "2 out of 2 ingredients are generally safe and natural"},
		},
		{
			name:    "concerning fraction",
			results: resultsOf(CategoryCaution, CategoryCaution, CategorySafe),
			want:    OverallScore{Score: CategoryCaution, Reason: "2 out of 3 ingredients are concerning or harmful"},
		},
		{
			name:    "concerning fraction at threshold is not enough",
			results: resultsOf(CategoryCaution, CategoryCaution, CategorySafe, CategorySafe, CategorySafe),
			want:    OverallScore{Score: CategoryCaution, Reason: "Mixed ingredients with some concerns"},
		},
		{
			name:    "mostly safe",
			results: resultsOf(CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategoryCaution, CategoryUnknown),
			want:    OverallScore{Score: CategorySafe, Reason: "8 out of 10 ingredients are generally safe and natural"},
		},
		{
			name:    "safe fraction at threshold is not enough",
			results: resultsOf(CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategorySafe, CategoryUnknown, CategoryUnknown, CategoryCaution),
			want:    OverallScore{Score: CategoryCaution, Reason: "Mixed ingredients with some concerns"},
		},
		{
			name:    "all unknown",
			results: resultsOf(CategoryUnknown, CategoryUnknown),
			want:    OverallScore{Score: CategoryCaution, Reason: "Mixed ingredients with some concerns"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overall(tt.results, tt.allergies))
		})
	}
}

func TestOverallAfterOverridesUsesGivenAllergies(t *testing.T) {
	escalated := ApplyAllergyOverrides([]AnalysisResult{
		{Ingredient: "peanut butter", Category: CategorySafe},
	}, []string{"peanut"})

	assert.Equal(t, "Contains an ingredient you are allergic to.", Overall(escalated, []string{"peanut"}).Reason)
	assert.Equal(t, "Contains one or more harmful, toxic, or allergenic ingredients.", Overall(escalated, nil).Reason)
}
