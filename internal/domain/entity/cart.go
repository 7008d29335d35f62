package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartKeySeparator joins a product ID and its variant in a cart key. Product
// IDs may not contain it, so the first separator always ends the ID.
const CartKeySeparator = ":"

// CartKey builds the composite identity of a cart line: the base product ID,
// followed by the variant discriminator (e.g. the volume size) when there is one.
func CartKey(productID, variant string) string {
	if variant == "" {
		return productID
	}
	return productID + CartKeySeparator + variant
}

// Selection is a staged, not yet committed, pick in a multi-step catalog flow
// (an oil volume or a filter of a chosen brand/type).
type Selection struct {
	Key       string          `json:"key"`
	ProductID string          `json:"product_id"`
	Variant   string          `json:"variant,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price x quantity
func (s Selection) Subtotal() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// CartLine is one line of a POS cart. At most one line exists per Key.
type CartLine struct {
	Key       string          `json:"key"`
	ProductID string          `json:"product_id"`
	Variant   string          `json:"variant,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price x quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MarshalJSON adds the computed subtotal to the line
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		Subtotal decimal.Decimal `json:"subtotal"`
	}{
		Alias:    Alias(l),
		Subtotal: l.Subtotal(),
	})
}

// CartSummary is the read model of a cart. Total is derived from Lines every
// time a summary is built.
type CartSummary struct {
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// StagingSummary is the read model of the staging area. Scope is the oil
// product id, or "category/brand/type" for products picked as a group.
type StagingSummary struct {
	Scope      string          `json:"scope,omitempty"`
	Selections []Selection     `json:"selections"`
	Total      decimal.Decimal `json:"total"`
}
