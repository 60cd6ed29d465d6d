package ingredient

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	escalatedNotePrefix    = "Marked as harmful because it's in your allergy profile"
	alsoAllergenNotePrefix = "This ingredient is classified as harmful and is also listed in your allergy profile"
)

// AllergyMatcher 以整字比對判斷成分是否為使用者的過敏原
type AllergyMatcher struct {
	allergies []string
	patterns  []*regexp.Regexp
}

// NewAllergyMatcher 建立比對器，空白項目會被忽略
func NewAllergyMatcher(allergies []string) *AllergyMatcher {
	m := &AllergyMatcher{}
	seen := make(map[string]struct{}, len(allergies))
	for _, a := range allergies {
		a = NormalizeName(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		m.allergies = append(m.allergies, a)
		m.patterns = append(m.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(a)+`\b`))
	}
	return m
}

// Empty 沒有任何過敏項目
func (m *AllergyMatcher) Empty() bool {
	return len(m.patterns) == 0
}

// Matches 成分名稱與某過敏項目相同，或過敏項目以完整單字出現在名稱中
func (m *AllergyMatcher) Matches(ingredient string) bool {
	name := NormalizeName(ingredient)
	if name == "" {
		return false
	}
	for i, p := range m.patterns {
		if name == m.allergies[i] || p.MatchString(name) {
			return true
		}
	}
	return false
}

// IsAllergen 單次比對的便利函式
func IsAllergen(ingredient string, allergies []string) bool {
	return NewAllergyMatcher(allergies).Matches(ingredient)
}

// ApplyAllergyOverrides 將命中過敏清單的成分升級為 harmful，重複套用結果不變
func ApplyAllergyOverrides(results []AnalysisResult, allergies []string) []AnalysisResult {
	out := cloneResults(results)
	matcher := NewAllergyMatcher(allergies)
	if matcher.Empty() {
		return out
	}
	for i := range out {
		r := &out[i]
		if r.Allergen || alreadyEscalated(r.Description) {
			r.Allergen = true
			continue
		}
		if !matcher.Matches(r.Ingredient) {
			continue
		}
		r.Allergen = true
		if r.Category == CategoryHarmful {
			r.Description = fmt.Sprintf("%s. Original description: %s", alsoAllergenNotePrefix, r.Description)
			continue
		}
		r.Description = fmt.Sprintf("%s (original classification: %s). Original description: %s",
			escalatedNotePrefix, r.Category, r.Description)
		r.Category = CategoryHarmful
	}
	return out
}

func alreadyEscalated(description string) bool {
	return strings.HasPrefix(description, escalatedNotePrefix) ||
		strings.HasPrefix(description, alsoAllergenNotePrefix)
}
