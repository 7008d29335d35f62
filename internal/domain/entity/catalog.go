package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog category tags
const (
	CategoryOil       = "Oil"
	CategoryFilters   = "Filters"
	CategoryParts     = "Parts"
	CategoryAdditives = "Additives"
)

// Volume is a size/price tier of an oil product, e.g. 5L at 39.99
type Volume struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// Product is a sellable catalog entry. Catalog entries never change at runtime;
// carts reference them by ID only.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Type        string          `json:"type,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Volumes     []Volume        `json:"volumes,omitempty"`
}

// HasVolumes reports whether the product must be sold through a volume selection
func (p *Product) HasVolumes() bool {
	return len(p.Volumes) > 0
}

// VolumeBySize looks up a volume tier by its size label
func (p *Product) VolumeBySize(size string) (Volume, bool) {
	for _, v := range p.Volumes {
		if v.Size == size {
			return v, true
		}
	}
	return Volume{}, false
}

// DisplayName is the name shown on cart lines and receipts, prefixed with the
// brand when the product name does not already carry it.
func (p *Product) DisplayName() string {
	if p.Brand == "" || strings.HasPrefix(p.Name, p.Brand) {
		return p.Name
	}
	return p.Brand + " " + p.Name
}
