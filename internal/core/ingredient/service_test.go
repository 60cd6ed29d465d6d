package ingredient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAnalyzeTextHarmfulIngredient(t *testing.T) {
	analyzer := NewAnalyzer(NewClassifier(DefaultTable, nil))

	report := analyzer.AnalyzeText(context.Background(), "INGREDIENTS: sugar, high fructose corn syrup, salt.", nil)

	assert.Equal(t, StatusAnalyzed, report.Status)
	assert.Equal(t, []string{"sugar", "high fructose corn syrup", "salt"}, report.Ingredients)
	require.Len(t, report.Results, 3)
	assert.Equal(t, CategoryCaution, report.Results[0].Category)
	assert.Equal(t, CategoryHarmful, report.Results[1].Category)
	assert.Equal(t, CategoryCaution, report.Results[2].Category)
	assert.Equal(t, OverallScore{Score: CategoryHarmful, Reason: "Contains one or more harmful, toxic, or allergenic ingredients."}, report.Overall)
	assert.Equal(t, "ingredients:", report.Marker)
	assert.Equal(t, ConfidenceHigh, report.Confidence)
	assert.Contains(t, DefaultTable.Tips(), report.Tip)
}

func TestAnalyzeTextAllergen(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockKnowledgeSource(ctrl)
	source.EXPECT().
		QueryUnknown(gomock.Any(), []string{"organic oats"}, []string{"oats"}).
		Return(map[string]KnowledgeEntry{
			"organic oats": {HealthCategory: "green", Description: "Whole grain oats."},
		}, nil)

	analyzer := NewAnalyzer(NewClassifier(DefaultTable, source))
	report := analyzer.AnalyzeText(context.Background(), "Ingredients: organic oats, honey.", []string{" Oats "})

	require.Len(t, report.Results, 2)
	oats := report.Results[0]
	assert.Equal(t, "organic oats", oats.Ingredient)
	assert.Equal(t, CategoryHarmful, oats.Category)
	assert.True(t, oats.Allergen)
	assert.Equal(t,
		"Marked as harmful because it's in your allergy profile (original classification: safe). Original description: Whole grain oats.",
		oats.Description)
	assert.Equal(t, CategorySafe, report.Results[1].Category)
	assert.Equal(t, OverallScore{Score: CategoryHarmful, Reason: "Contains an ingredient you are allergic to."}, report.Overall)
}

func TestAnalyzeTextEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockKnowledgeSource(ctrl)

	report := NewAnalyzer(NewClassifier(DefaultTable, source)).AnalyzeText(context.Background(), "", []string{"milk"})
	assert.Equal(t, StatusEmpty, report.Status)
	assert.Empty(t, report.Ingredients)
	assert.Empty(t, report.Results)
	assert.Equal(t, OverallScore{Score: CategorySafe, Reason: "No ingredients to analyze"}, report.Overall)
	assert.Empty(t, report.Tip)
}

func TestAnalyzeTextKnowledgeSourceDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockKnowledgeSource(ctrl)
	source.EXPECT().QueryUnknown(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)

	report := NewAnalyzer(NewClassifier(DefaultTable, source)).AnalyzeText(context.Background(), "Ingredients: zorblax, quuxite", nil)

	assert.Equal(t, StatusUnresolved, report.Status)
	require.Len(t, report.Results, 2)
	for _, r := range report.Results {
		assert.Equal(t, CategoryUnknown, r.Category)
		assert.Equal(t, UnknownDescription, r.Description)
	}
	assert.Equal(t, OverallScore{Score: CategoryCaution, Reason: "Mixed ingredients with some concerns"}, report.Overall)
}

func TestAnalyzeMisleadingNotes(t *testing.T) {
	analyzer := NewAnalyzer(NewClassifier(DefaultTable, nil))
	report := analyzer.AnalyzeIngredients(context.Background(), []string{"pure maple syrup", "whole grain oats", "maple syrup"}, nil)

	require.Len(t, report.Misleading, 2)
	assert.Equal(t, "pure maple syrup", report.Misleading[0].Ingredient)
	assert.Equal(t, "maple syrup", report.Misleading[0].Product)
	assert.Equal(t, "whole grain", report.Misleading[1].Product)
	assert.NotEmpty(t, report.Misleading[1].RealIngredients)
}

func TestAnalyzeTipIsDeterministic(t *testing.T) {
	analyzer := NewAnalyzer(NewClassifier(DefaultTable, nil))
	first := analyzer.AnalyzeIngredients(context.Background(), []string{"honey", "salt"}, nil)
	second := analyzer.AnalyzeIngredients(context.Background(), []string{"honey", "salt"}, nil)
	assert.Equal(t, first.Tip, second.Tip)
	assert.NotEmpty(t, first.Tip)
}
