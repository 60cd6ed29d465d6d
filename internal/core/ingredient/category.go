// Package ingredient 實作成分標籤的抽取、分類、過敏重評與總分計算。
package ingredient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category 成分健康分級
type Category int

const (
	// CategoryUnknown 外部知識來源也無法判斷
	CategoryUnknown Category = iota
	// CategorySafe 一般認為安全、天然
	CategorySafe
	// CategoryCaution 需要留意或名稱具誤導性
	CategoryCaution
	// CategoryHarmful 有害、高度加工或為使用者過敏原
	CategoryHarmful
)

// tierOrder 查表優先順序，先命中者為準
var tierOrder = [...]Category{CategorySafe, CategoryCaution, CategoryHarmful}

// String 實現 fmt.Stringer
func (c Category) String() string {
	switch c {
	case CategorySafe:
		return "safe"
	case CategoryCaution:
		return "caution"
	case CategoryHarmful:
		return "harmful"
	default:
		return "unknown"
	}
}

// IsTier 是否為三個查表分級之一
func (c Category) IsTier() bool {
	return c == CategorySafe || c == CategoryCaution || c == CategoryHarmful
}

// ParseCategory 不分大小寫解析分級，接受紅黃綠燈與 safe/caution/harmful 兩種詞彙
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe", "green":
		return CategorySafe, true
	case "caution", "yellow":
		return CategoryCaution, true
	case "harmful", "red":
		return CategoryHarmful, true
	case "unknown":
		return CategoryUnknown, true
	default:
		return CategoryUnknown, false
	}
}

// MarshalJSON 以字串輸出
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 接受 ParseCategory 認得的所有寫法
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseCategory(s)
	if !ok {
		return fmt.Errorf("unknown category %q", s)
	}
	*c = parsed
	return nil
}
