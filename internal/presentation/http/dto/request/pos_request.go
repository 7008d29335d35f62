package request

import "github.com/sangkips/lubepos-api/internal/domain/enum"

// AddToCartRequest adds a product without variants straight to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartLineRequest sets a cart line's quantity; zero removes the line
type UpdateCartLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SelectVariantRequest stages one unit of a product variant
type SelectVariantRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
}

// AdjustStagedRequest changes a staged selection's quantity by delta
type AdjustStagedRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CheckoutRequest completes the sale for the session's cart
type CheckoutRequest struct {
	PaymentType  *enum.PaymentType `json:"payment_type" binding:"required"`
	Note         string            `json:"note" binding:"max=500"`
	PrintReceipt bool              `json:"print_receipt"`
}
