package entity

import (
	"time"

	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleLine is a cart line frozen at checkout time
type SaleLine struct {
	ProductID string          `json:"product_id"`
	Variant   string          `json:"variant,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Sale is a completed POS transaction
type Sale struct {
	ID          string           `json:"id"`
	ReceiptNo   string           `json:"receipt_no"`
	SessionID   string           `json:"session_id"`
	Lines       []SaleLine       `json:"lines"`
	ItemCount   int              `json:"item_count"`
	Total       decimal.Decimal  `json:"total"`
	PaymentType enum.PaymentType `json:"payment_type"`
	Note        string           `json:"note,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewSaleFromCart freezes a cart summary into a sale
func NewSaleFromCart(cart CartSummary) *Sale {
	sale := &Sale{
		Lines:     make([]SaleLine, 0, len(cart.Lines)),
		ItemCount: cart.ItemCount,
		Total:     cart.Total,
	}
	for _, l := range cart.Lines {
		sale.Lines = append(sale.Lines, SaleLine{
			ProductID: l.ProductID,
			Variant:   l.Variant,
			Name:      l.Name,
			Category:  l.Category,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return sale
}
