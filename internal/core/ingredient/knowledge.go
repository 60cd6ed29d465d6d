package ingredient

import "context"

//go:generate mockgen -source=knowledge.go -destination=knowledge_mock.go -package=ingredient

// KnowledgeEntry 外部知識來源對單一成分的回覆
type KnowledgeEntry struct {
	HealthCategory string   `json:"healthCategory"`
	Description    string   `json:"description"`
	Alternatives   []string `json:"alternatives"`
}

// KnowledgeSource 查表未命中時的外部知識來源，每次分類最多呼叫一次
type KnowledgeSource interface {
	QueryUnknown(ctx context.Context, names []string, allergies []string) (map[string]KnowledgeEntry, error)
}
