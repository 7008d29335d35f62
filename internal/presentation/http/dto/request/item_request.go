package request

import "github.com/shopspring/decimal"

// VolumeRequest is one volume price tier of an oil item
type VolumeRequest struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// CreateItemRequest represents an inventory item creation request.
// Field rules (blank name, negative stock, volume tiers) are enforced by the
// item service so they come back as field errors.
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"max=255"`
	Category    string          `json:"category" binding:"max=100"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	Brand       string          `json:"brand" binding:"max=100"`
	Type        string          `json:"type" binding:"max=100"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" binding:"max=100"`
	IsOil       bool            `json:"is_oil"`
	Volumes     []VolumeRequest `json:"volumes" binding:"omitempty,max=20,dive"`
}

// UpdateItemRequest represents an inventory item update request
type UpdateItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Stock       *int             `json:"stock"`
	Price       *decimal.Decimal `json:"price"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
	Type        *string          `json:"type" binding:"omitempty,max=100"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku" binding:"omitempty,max=100"`
	IsOil       *bool            `json:"is_oil"`
	Volumes     *[]VolumeRequest `json:"volumes"`
}

// ItemFilterRequest represents item list query parameters
type ItemFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
