package ingredient

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Entry 查表中的單一成分說明
type Entry struct {
	Description  string   `json:"description"`
	Alternatives []string `json:"alternatives"`
}

// MisleadingProduct 名稱容易誤導的商品
type MisleadingProduct struct {
	Description     string `json:"description"`
	RealIngredients string `json:"realIngredients"`
}

// TableData 建表用的原始資料
type TableData struct {
	Safe       map[string]Entry
	Caution    map[string]Entry
	Harmful    map[string]Entry
	Misleading map[string]MisleadingProduct
	Tips       []string
}

// Table 唯讀成分查表，建立後不再修改，可在多個請求間共用
type Table struct {
	tiers      map[Category]map[string]Entry
	misleading map[string]MisleadingProduct
	tips       []string
}

// Match 查表命中結果
type Match struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Entry    Entry    `json:"entry"`
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName 查表鍵值正規化：去除重音、小寫、去頭尾空白、合併空白
func NormalizeName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// NewTable 複製資料並正規化鍵值後建立查表
func NewTable(data TableData) *Table {
	t := &Table{
		tiers: map[Category]map[string]Entry{
			CategorySafe:    copyEntries(data.Safe),
			CategoryCaution: copyEntries(data.Caution),
			CategoryHarmful: copyEntries(data.Harmful),
		},
		misleading: make(map[string]MisleadingProduct, len(data.Misleading)),
		tips:       append([]string(nil), data.Tips...),
	}
	for name, product := range data.Misleading {
		t.misleading[NormalizeName(name)] = product
	}
	return t
}

func copyEntries(src map[string]Entry) map[string]Entry {
	dst := make(map[string]Entry, len(src))
	for name, entry := range src {
		key := NormalizeName(name)
		if key == "" {
			continue
		}
		dst[key] = Entry{
			Description:  entry.Description,
			Alternatives: append([]string{}, entry.Alternatives...),
		}
	}
	return dst
}

// Lookup 依 safe → caution → harmful 的順序查表，回傳第一個命中
func (t *Table) Lookup(name string) (Match, bool) {
	key := NormalizeName(name)
	if key == "" {
		return Match{}, false
	}
	for _, tier := range tierOrder {
		if entry, ok := t.tiers[tier][key]; ok {
			return Match{
				Name:     key,
				Category: tier,
				Entry: Entry{
					Description:  entry.Description,
					Alternatives: append([]string{}, entry.Alternatives...),
				},
			}, true
		}
	}
	return Match{}, false
}

// Misleading 查詢誤導性商品說明
func (t *Table) Misleading(name string) (MisleadingProduct, bool) {
	product, ok := t.misleading[NormalizeName(name)]
	return product, ok
}

// MisleadingProducts 回傳所有誤導性商品的副本
func (t *Table) MisleadingProducts() map[string]MisleadingProduct {
	out := make(map[string]MisleadingProduct, len(t.misleading))
	for name, product := range t.misleading {
		out[name] = product
	}
	return out
}

// Tips 回傳閱讀標籤的小技巧
func (t *Table) Tips() []string {
	return append([]string(nil), t.tips...)
}

// Size 各分級的成分數量
func (t *Table) Size() map[Category]int {
	out := make(map[Category]int, len(t.tiers))
	for tier, entries := range t.tiers {
		out[tier] = len(entries)
	}
	return out
}
