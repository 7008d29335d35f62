package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/lubepos-api/internal/application/cart"
	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/utils"
	"go.uber.org/zap"
)

const receiptPrefix = "RCPT"

// POSService runs the till: the per-session staging area and cart, and checkout
type POSService struct {
	sessions    *cart.Sessions
	catalogRepo repository.CatalogRepository
	itemRepo    repository.ItemRepository
	saleRepo    repository.SaleRepository
	printer     *PrinterService
	logger      *zap.Logger
	now         func() time.Time
}

// NewPOSService creates a new POS service
func NewPOSService(
	sessions *cart.Sessions,
	catalogRepo repository.CatalogRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	printer *PrinterService,
	logger *zap.Logger,
) *POSService {
	return &POSService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
		itemRepo:    itemRepo,
		saleRepo:    saleRepo,
		printer:     printer,
		logger:      logger,
		now:         time.Now,
	}
}

// engineError maps cart engine errors to client errors
func engineError(err error) error {
	switch {
	case errors.Is(err, cart.ErrVariantRequired):
		return apperror.NewBadRequestError("A volume must be selected for this product")
	case errors.Is(err, cart.ErrUnknownSelection):
		return apperror.NewBadRequestError("Unknown variant for this product")
	}
	return err
}

// GetCart returns the session's cart
func (s *POSService) GetCart(ctx context.Context, sessionID string) (entity.CartSummary, error) {
	var out entity.CartSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		out = e.Cart()
		return nil
	})
	return out, err
}

// AddToCart adds a product that needs no variant straight to the cart
func (s *POSService) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (entity.CartSummary, error) {
	product, err := s.catalogRepo.GetByID(ctx, productID)
	if err != nil {
		return entity.CartSummary{}, err
	}

	var out entity.CartSummary
	err = s.sessions.With(sessionID, func(e *cart.Engine) error {
		if _, err := e.AddDirect(product, quantity); err != nil {
			return engineError(err)
		}
		out = e.Cart()
		return nil
	})
	return out, err
}

// UpdateCartLine sets a line's quantity exactly; below one removes the line.
// Setting a positive quantity on a missing line is a not-found error.
func (s *POSService) UpdateCartLine(ctx context.Context, sessionID, key string, quantity int) (entity.CartSummary, error) {
	var out entity.CartSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		if !e.SetLineQuantity(key, quantity) && quantity >= 1 {
			return apperror.NewNotFoundError("Cart line")
		}
		out = e.Cart()
		return nil
	})
	return out, err
}

// RemoveCartLine removes a line; removing a missing line is a no-op
func (s *POSService) RemoveCartLine(ctx context.Context, sessionID, key string) (entity.CartSummary, error) {
	var out entity.CartSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		e.RemoveLine(key)
		out = e.Cart()
		return nil
	})
	return out, err
}

// ClearCart empties the session's cart
func (s *POSService) ClearCart(ctx context.Context, sessionID string) (entity.CartSummary, error) {
	var out entity.CartSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		e.Clear()
		out = e.Cart()
		return nil
	})
	return out, err
}

// GetStaging returns the session's staged selections
func (s *POSService) GetStaging(ctx context.Context, sessionID string) (entity.StagingSummary, error) {
	var out entity.StagingSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		out = e.Staging()
		return nil
	})
	return out, err
}

// SelectVariant stages one unit of a product variant
func (s *POSService) SelectVariant(ctx context.Context, sessionID, productID, variant string) (entity.StagingSummary, error) {
	product, err := s.catalogRepo.GetByID(ctx, productID)
	if err != nil {
		return entity.StagingSummary{}, err
	}

	var out entity.StagingSummary
	err = s.sessions.With(sessionID, func(e *cart.Engine) error {
		if _, err := e.SelectVariant(product, strings.TrimSpace(variant)); err != nil {
			return engineError(err)
		}
		out = e.Staging()
		return nil
	})
	return out, err
}

// AdjustStaged changes a staged quantity by delta, dropping entries that reach zero
func (s *POSService) AdjustStaged(ctx context.Context, sessionID, key string, delta int) (entity.StagingSummary, error) {
	var out entity.StagingSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		e.AdjustStaged(key, delta)
		out = e.Staging()
		return nil
	})
	return out, err
}

// CommitStaging moves every staged selection into the cart
func (s *POSService) CommitStaging(ctx context.Context, sessionID string) (entity.CartSummary, error) {
	var out entity.CartSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		e.Commit()
		out = e.Cart()
		return nil
	})
	return out, err
}

// ClearStaging discards the staged selections
func (s *POSService) ClearStaging(ctx context.Context, sessionID string) (entity.StagingSummary, error) {
	var out entity.StagingSummary
	err := s.sessions.With(sessionID, func(e *cart.Engine) error {
		e.ClearStaging()
		out = e.Staging()
		return nil
	})
	return out, err
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	SessionID    string
	PaymentType  enum.PaymentType
	Note         string
	PrintReceipt bool
}

// CheckoutResult is a completed sale plus the outcome of receipt printing
type CheckoutResult struct {
	Sale       *entity.Sale `json:"sale"`
	Printed    bool         `json:"printed"`
	PrintError string       `json:"print_error,omitempty"`
}

// Checkout turns the session's cart into a sale, decrements stock of the
// inventory items sold and clears the cart. An empty cart is rejected.
func (s *POSService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewFieldError("payment_type", "Payment type must be card or cash")
	}

	var sale *entity.Sale
	err := s.sessions.With(input.SessionID, func(e *cart.Engine) error {
		if e.IsEmpty() {
			return apperror.NewBadRequestError("Cart is empty")
		}

		now := s.now()
		sale = entity.NewSaleFromCart(e.Cart())
		sale.ID = utils.NewID()
		sale.ReceiptNo = utils.GenerateReceiptNo(receiptPrefix, now)
		sale.SessionID = input.SessionID
		sale.PaymentType = input.PaymentType
		sale.Note = strings.TrimSpace(input.Note)
		sale.CreatedAt = now

		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		e.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	decrements := make(map[string]int, len(sale.Lines))
	for _, l := range sale.Lines {
		decrements[l.ProductID] += l.Quantity
	}
	if _, err := s.itemRepo.DecrementStock(ctx, decrements); err != nil {
		s.logger.Error("stock decrement failed", zap.String("sale_id", sale.ID), zap.Error(err))
	}

	s.logger.Info("sale completed",
		zap.String("sale_id", sale.ID),
		zap.String("receipt_no", sale.ReceiptNo),
		zap.String("session_id", sale.SessionID),
		zap.String("payment_type", sale.PaymentType.String()),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.Int("items", sale.ItemCount),
	)

	result := &CheckoutResult{Sale: sale}
	if input.PrintReceipt && s.printer != nil {
		if _, err := s.printer.PrintSale(sale); err != nil {
			result.PrintError = err.Error()
		} else {
			result.Printed = true
		}
	}
	return result, nil
}
