package ingredient

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/transform"
)

// Confidence 成分區段定位的可信度
type Confidence string

const (
	// ConfidenceHigh 找到成分標記
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium 沒有標記但全文夠短
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow 沒有標記且全文很長，只能盡力而為
	ConfidenceLow Confidence = "low"
)

// shortTextThreshold 無標記時仍視為成分清單的全文長度上限
const shortTextThreshold = 300

// paragraphBreak 段落分隔，在合併空白前保留下來作為區段邊界
const paragraphBreak = "\n\n"

// Extraction 抽取結果
type Extraction struct {
	Ingredients []string   `json:"ingredients"`
	Marker      string     `json:"marker,omitempty"`
	Confidence  Confidence `json:"confidence"`
}

// markerPhrases 成分區段標記，依優先順序排列
var markerPhrases = []string{
	"ingredients:",
	"contains:",
	"made with:",
	"components:",
	"allergy advice:",
	"allergy information:",
	"may contain traces of:",
}

// disclaimerKeywords 出現後即截斷的非成分文字
var disclaimerKeywords = []string{
	"manufactured by",
	"manufactured for",
	"distributed by",
	"packed by",
	"produced by",
	"best before",
	"best by",
	"use by",
	"expiry",
	"nutrition facts",
	"nutrition information",
	"nutritional information",
	"calories",
	"serving size",
	"store in",
	"keep refrigerated",
	"may contain",
}

// stopWords 整段等於即丟棄
var stopWords = map[string]struct{}{
	"contains":    {},
	"contain":     {},
	"ingredients": {},
	"ingredient":  {},
	"nutrition":   {},
	"facts":       {},
	"allergy":     {},
	"information": {},
	"and":         {},
	"or":          {},
	"with":        {},
	"of":          {},
	"less":        {},
	"e.g":         {},
	"i.e":         {},
	"eg":          {},
	"ie":          {},
}

// stopPrefixes 以這些片語開頭的片段丟棄
var stopPrefixes = []string{
	"made in",
	"processed in",
	"manufactured in",
	"distributed by",
	"best before",
	"use by",
	"less than",
	"less of",
	"contains less",
}

var (
	markerMatcher     = ahocorasick.NewStringMatcher(markerPhrases)
	disclaimerMatcher = ahocorasick.NewStringMatcher(disclaimerKeywords)

	paragraphPattern  = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)
	abbrevPattern     = regexp.MustCompile(`\b(?:e\.g|i\.e)\.?`)
	connectorPattern  = regexp.MustCompile(`\s+(?:and/or|and|or)\s+`)
	strayHyphen       = regexp.MustCompile(`(^|\s)-(\S)`)
	innerBracket      = regexp.MustCompile(`[(\[{][^()\[\]{}]*[)\]}]`)
	loneBracket       = regexp.MustCompile(`[()\[\]{}]`)
	percentPattern    = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	quantityPattern   = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:mg|g|ml|oz|kg|lbs?|cups?|tbsp|tsp|servings?|pieces?|slices?)\b`)
	bareUnitPattern   = regexp.MustCompile(`^(?:mg|g|ml|oz|kg|lbs?|cups?|tbsp|tsp|servings?|pieces?|slices?)$`)
	numericOnly       = regexp.MustCompile(`^[\d\s.,%/]+$`)
	fragmentTrimChars = ",-•*;.:!?'\"` "
)

// ExtractIngredients 將 OCR 原始文字轉為依出現順序去重的候選成分
func ExtractIngredients(rawText string) []string {
	return Extract(rawText).Ingredients
}

// Extract 同 ExtractIngredients，另外回傳使用的標記與可信度
func Extract(rawText string) Extraction {
	if strings.TrimSpace(rawText) == "" {
		return Extraction{Ingredients: []string{}, Confidence: ConfidenceLow}
	}

	text := normalizeText(rawText)
	section, marker, confidence := locateSection(text)
	section = truncateDisclaimers(section)
	section = removeMarkers(section)
	section = normalizeConnectors(section)
	section = normalizeHyphens(section)
	section = stripBrackets(section)

	ingredients := make([]string, 0)
	seen := make(map[string]struct{})
	for _, fragment := range splitFragments(section) {
		cleaned := cleanFragment(fragment)
		if !keepFragment(cleaned) {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		ingredients = append(ingredients, cleaned)
	}

	return Extraction{
		Ingredients: ingredients,
		Marker:      marker,
		Confidence:  confidence,
	}
}

// normalizeText 去重音、小寫，段落分隔保留為 "\n\n"，其餘空白合併為單一空格
func normalizeText(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(strings.ReplaceAll(folded, "\r\n", "\n"))

	paragraphs := paragraphPattern.Split(folded, -1)
	kept := paragraphs[:0]
	for _, p := range paragraphs {
		if collapsed := strings.Join(strings.Fields(p), " "); collapsed != "" {
			kept = append(kept, collapsed)
		}
	}
	return strings.Join(kept, paragraphBreak)
}

// locateSection 依優先順序找第一個出現的標記，取其後到下一個段落分隔為止
func locateSection(text string) (section, marker string, confidence Confidence) {
	// 命中的索引即優先順序，最小者優先
	if hits := markerMatcher.MatchThreadSafe([]byte(text)); len(hits) > 0 {
		best := hits[0]
		for _, i := range hits[1:] {
			if i < best {
				best = i
			}
		}
		marker = markerPhrases[best]
		section = text[strings.Index(text, marker)+len(marker):]
		if end := strings.Index(section, paragraphBreak); end >= 0 {
			section = section[:end]
		}
		return section, marker, ConfidenceHigh
	}

	confidence = ConfidenceMedium
	if len(text) >= shortTextThreshold {
		confidence = ConfidenceLow
	}
	return strings.ReplaceAll(text, paragraphBreak, " "), "", confidence
}

// truncateDisclaimers 從第一個免責或營養標示關鍵字起全部捨棄，只檢查掃描命中的關鍵字
func truncateDisclaimers(section string) string {
	cut := len(section)
	for _, i := range disclaimerMatcher.MatchThreadSafe([]byte(section)) {
		if idx := indexWord(section, disclaimerKeywords[i]); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return section[:cut]
}

// indexWord 找第一個前後皆為字詞邊界的出現位置
func indexWord(s, phrase string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], phrase)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(phrase)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return start
		}
		offset = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r == utf8.RuneError || !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r == utf8.RuneError || !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// removeMarkers 區段內殘留的標記與縮寫改為分隔符
func removeMarkers(section string) string {
	for _, phrase := range markerPhrases {
		section = strings.ReplaceAll(section, phrase, ", ")
	}
	return abbrevPattern.ReplaceAllString(section, ", ")
}

func normalizeConnectors(section string) string {
	return connectorPattern.ReplaceAllString(section, ", ")
}

// normalizeHyphens " - " 與黏在下一個字前的 "-" 改為空格
func normalizeHyphens(section string) string {
	section = strings.ReplaceAll(section, " - ", " ")
	return strayHyphen.ReplaceAllString(section, "$1$2")
}

// stripBrackets 由內而外移除括號內容並留下分隔符，未成對的括號也視為分隔符
func stripBrackets(section string) string {
	for {
		next := innerBracket.ReplaceAllString(section, ", ")
		if next == section {
			break
		}
		section = next
	}
	return loneBracket.ReplaceAllString(section, ", ")
}

// splitFragments 依分隔符切開；句點類標點兩側皆為數字時不切
func splitFragments(section string) []string {
	var (
		fragments []string
		current   strings.Builder
	)
	runes := []rune(section)
	for i, r := range runes {
		split := false
		switch r {
		case ',', ';', ':', '•', '*':
			split = true
		case '.', '!', '?':
			split = !(i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]))
		}
		if split {
			fragments = append(fragments, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	return append(fragments, current.String())
}

// cleanFragment 去頭尾標點、百分比與數量單位並合併空白
func cleanFragment(fragment string) string {
	cleaned := strings.Trim(fragment, fragmentTrimChars)
	cleaned = percentPattern.ReplaceAllString(cleaned, " ")
	cleaned = quantityPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, fragmentTrimChars)
	if bareUnitPattern.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

func keepFragment(fragment string) bool {
	if len(fragment) < 2 || numericOnly.MatchString(fragment) {
		return false
	}
	if _, ok := stopWords[fragment]; ok {
		return false
	}
	for _, prefix := range stopPrefixes {
		if fragment == prefix || strings.HasPrefix(fragment, prefix+" ") {
			return false
		}
	}
	return true
}
