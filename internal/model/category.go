package model

import "time"

// Category groups transactions of a single type.
type Category struct {
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UserID    *string         `json:"user_id,omitempty"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	IsCustom  bool            `json:"is_custom"`
}

// CategoryDraft is the payload for creating a custom category.
type CategoryDraft struct {
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
}

// CategoriesOfType returns the categories whose type matches t, in their original order.
func CategoriesOfType(categories []Category, t TransactionType) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
