package entity

import (
	"fmt"

	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// InventoryItem represents a stock item managed from the back office
type InventoryItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	Brand       string          `json:"brand,omitempty"`
	Type        string          `json:"type,omitempty"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	IsOil       bool            `json:"is_oil"`
	Volumes     []Volume        `json:"volumes,omitempty"`
}

// Kind returns whether the item is an oil item priced by volume or a simple item
func (i *InventoryItem) Kind() enum.ItemKind {
	if i.IsOil {
		return enum.ItemKindOil
	}
	return enum.ItemKindSimple
}

// Clone returns a deep copy so callers never share the Volumes backing array
func (i InventoryItem) Clone() InventoryItem {
	if i.Volumes != nil {
		volumes := make([]Volume, len(i.Volumes))
		copy(volumes, i.Volumes)
		i.Volumes = volumes
	}
	return i
}

// CategoryCount is a category together with the number of items filed under it
type CategoryCount struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// CopyName returns the name for a copy of source: "<source> (n)" with the smallest
// n >= 1 not reported as taken. The match is literal, so copying "Widget (1)"
// yields "Widget (1) (1)".
func CopyName(source string, taken func(name string) bool) string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", source, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
