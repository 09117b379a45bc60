package domain

import "github.com/google/uuid"

// Category labels transactions of exactly one type. Icon and color are
// opaque tokens resolved by the presentation layer; the core never
// interprets them.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Type  TransactionType `json:"type"`
}

// NewCategory creates a new Category instance with a fresh id.
func NewCategory(name, icon, color string, txType TransactionType) *Category {
	return &Category{
		ID:    uuid.NewString(),
		Name:  name,
		Icon:  icon,
		Color: color,
		Type:  txType,
	}
}
