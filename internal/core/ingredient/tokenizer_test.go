package ingredient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIngredients(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic label",
			text: "INGREDIENTS: sugar, high fructose corn syrup, salt.",
			want: []string{"sugar", "high fructose corn syrup", "salt"},
		},
		{
			name: "mixed case marker",
			text: "Ingredients: organic oats, honey.",
			want: []string{"organic oats", "honey"},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			want: []string{},
		},
		{
			name: "duplicates keep first position",
			text: "Ingredients: salt, sugar, SALT, water",
			want: []string{"salt", "sugar", "water"},
		},
		{
			name: "connector words",
			text: "Ingredients: salt and pepper, oil and/or butter, rice or barley",
			want: []string{"salt", "pepper", "oil", "butter", "rice", "barley"},
		},
		{
			name: "line breaks inside the section",
			text: "Ingredients: wheat\nflour, cane\r\nsugar",
			want: []string{"wheat flour", "cane sugar"},
		},
		{
			name: "parenthetical content stripped",
			text: "Ingredients: enriched flour (wheat flour, niacin), sugar.",
			want: []string{"enriched flour", "sugar"},
		},
		{
			name: "nested brackets",
			text: "Ingredients: chocolate (sugar, cocoa [processed with alkali]), milk",
			want: []string{"chocolate", "milk"},
		},
		{
			name: "braces",
			text: "Ingredients: seasoning {salt, spices}, water",
			want: []string{"seasoning", "water"},
		},
		{
			name: "unmatched bracket becomes a delimiter",
			text: "Ingredients: water, salt (iodized",
			want: []string{"water", "salt", "iodized"},
		},
		{
			name: "disclaimer truncates",
			text: "Ingredients: oats, honey. Manufactured by Acme Foods, Springfield.",
			want: []string{"oats", "honey"},
		},
		{
			name: "may contain warning truncates",
			text: "Ingredients: wheat, sugar. May contain traces of nuts",
			want: []string{"wheat", "sugar"},
		},
		{
			name: "section ends at paragraph break",
			text: "Ingredients: rice, water\n\nStore in a cool dry place",
			want: []string{"rice", "water"},
		},
		{
			name: "marker after nutrition panel",
			text: "Nutrition Facts\nCalories 200\n\nIngredients: milk, sugar",
			want: []string{"milk", "sugar"},
		},
		{
			name: "decimal numbers and units",
			text: "Ingredients: vitamin b12, 12.5% cocoa butter, salt 2g",
			want: []string{"vitamin b12", "cocoa butter", "salt"},
		},
		{
			name: "bare units and quantities dropped",
			text: "Ingredients: salt, 5 g, mg, water, 100%",
			want: []string{"salt", "water"},
		},
		{
			name: "spaced hyphen and stray hyphen",
			text: "Ingredients: corn - syrup, -vinegar, sugar-free gum",
			want: []string{"corn syrup", "vinegar", "sugar-free gum"},
		},
		{
			name: "stoplist fragments",
			text: "Ingredients: water, contains 2% or less of: salt, yeast",
			want: []string{"water", "salt", "yeast"},
		},
		{
			name: "made in line dropped",
			text: "Ingredients: rice, made in thailand",
			want: []string{"rice"},
		},
		{
			name: "abbreviations",
			text: "Ingredients: spices e.g. paprika, salt",
			want: []string{"spices", "paprika", "salt"},
		},
		{
			name: "bullets and sentence punctuation",
			text: "Ingredients: sugar; salt • pepper * garlic! onion? water",
			want: []string{"sugar", "salt", "pepper", "garlic", "onion", "water"},
		},
		{
			name: "accents folded",
			text: "Ingrédients: crème fraîche, sel",
			want: []string{"creme fraiche", "sel"},
		},
		{
			name: "marker priority",
			text: "Contains: milk. Ingredients: sugar, cocoa",
			want: []string{"sugar", "cocoa"},
		},
		{
			name: "later marker inside section",
			text: "Ingredients: sugar, cocoa. Contains: milk",
			want: []string{"sugar", "cocoa", "milk"},
		},
		{
			name: "no marker short text",
			text: "sugar, salt",
			want: []string{"sugar", "salt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIngredients(tt.text))
		})
	}
}

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		marker     string
		confidence Confidence
	}{
		{"marker found", "Made with: oats, honey", "made with:", ConfidenceHigh},
		{"no marker short", "oats, honey", "", ConfidenceMedium},
		{"no marker long", strings.Repeat("flour, ", 50), "", ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.marker, got.Marker)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.NotEmpty(t, got.Ingredients)
		})
	}
}

func TestExtractLongTextWithoutMarker(t *testing.T) {
	text := strings.Repeat("flour, ", 50) + "salt"
	got := Extract(text)
	assert.Equal(t, []string{"flour", "salt"}, got.Ingredients)
	assert.Equal(t, ConfidenceLow, got.Confidence)
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Ingredients: water, sugar (cane), natural flavors, salt and citric acid. Best before 2025"
	first := ExtractIngredients(text)
	second := ExtractIngredients(text)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"water", "sugar", "natural flavors", "salt", "citric acid"}, first)
}

func TestSplitFragmentsKeepsDecimals(t *testing.T) {
	assert.Equal(t, []string{"a 12.5 b", " c", ""}, splitFragments("a 12.5 b. c."))
	assert.Equal(t, []string{"b12", " d"}, splitFragments("b12. d"))
}

func TestStripBrackets(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a (b) c", "a ,  c"},
		{"a (b [c]) d", "a ,  d"},
		{"a ) b", "a ,  b"},
		{"no brackets", "no brackets"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripBrackets(tt.in), tt.in)
	}
}

func TestTruncateDisclaimersRespectsWordBoundaries(t *testing.T) {
	assert.Equal(t, " lowcalories sweetener, ", truncateDisclaimers(" lowcalories sweetener, calories 10"))
	assert.Equal(t, "salt ", truncateDisclaimers("salt best before 2025"))
	assert.Equal(t, "salt", truncateDisclaimers("salt"))
}

func TestLocateSectionPrefersHigherPriorityMarker(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		section string
		marker  string
	}{
		{"later but higher priority", "contains: milk. ingredients: oats, honey", " oats, honey", "ingredients:"},
		{"single low priority marker", "may contain traces of: nuts", " nuts", "may contain traces of:"},
		{"section ends at paragraph", "made with: oats\n\nbest before soon", " oats", "made with:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, marker, confidence := locateSection(tt.text)
			assert.Equal(t, tt.section, section)
			assert.Equal(t, tt.marker, marker)
			assert.Equal(t, ConfidenceHigh, confidence)
		})
	}
}

func TestTruncateDisclaimersCutsAtEarliestHit(t *testing.T) {
	assert.Equal(t, "oats, ", truncateDisclaimers("oats, distributed by acme. nutrition facts calories 10"))
	assert.Equal(t, "oats, honey", truncateDisclaimers("oats, honey"))
}
