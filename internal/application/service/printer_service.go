package service

import (
	"context"
	"fmt"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	saleRepo    repository.SaleRepository
	header      entity.ReceiptHeader
	printerType string
	charWidth   int
	logger      *zap.Logger
}

// PrinterServiceConfig carries the shop header and paper settings.
type PrinterServiceConfig struct {
	Header      entity.ReceiptHeader
	PrinterType string
	CharWidth   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, saleRepo repository.SaleRepository, cfg PrinterServiceConfig, logger *zap.Logger) *PrinterService {
	return &PrinterService{
		printer:     p,
		saleRepo:    saleRepo,
		header:      cfg.Header,
		printerType: cfg.PrinterType,
		charWidth:   cfg.CharWidth,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// The receipt is returned even when printing fails so it can be shown instead.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    s.header,
		ReceiptNo: "TEST-001",
		Date:      "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Total: decimal.NewFromInt(20),
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.charWidth)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintSaleReceipt fetches a sale and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID string) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return s.PrintSale(sale)
}

// PrintSale prints the receipt of an already loaded sale.
func (s *PrinterService) PrintSale(sale *entity.Sale) (*entity.Receipt, error) {
	receipt := s.BuildReceipt(sale)

	if err := s.printer.Print(FormatReceipt(receipt, s.charWidth)); err != nil {
		s.logger.Error("printer error",
			zap.String("sale_id", sale.ID),
			zap.String("receipt_no", sale.ReceiptNo),
			zap.Error(err),
		)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// BuildReceipt composes the printable view of a sale.
func (s *PrinterService) BuildReceipt(sale *entity.Sale) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:      s.header,
		ReceiptNo:   sale.ReceiptNo,
		Date:        sale.CreatedAt.Format("2006-01-02 15:04"),
		PaymentType: sale.PaymentType.String(),
		Note:        sale.Note,
		Items:       make([]entity.ReceiptItem, 0, len(sale.Lines)),
		Total:       sale.Total,
	}
	for _, l := range sale.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Subtotal,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for paper of the given width.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewReceiptDoc(charWidth).
		Banner(r.Header.StoreName, r.Header.Address, r.Header.Phone).
		Field("Receipt:", r.ReceiptNo).
		Field("Date:", r.Date).
		Field("Payment:", r.PaymentType).
		Rule()

	for _, item := range r.Items {
		doc.SaleLine(item.Quantity, item.Name, item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
	}

	return doc.Rule().
		Total("TOTAL:", r.Total.StringFixed(2)).
		Note(r.Note).
		Finish("Thank you for your business!")
}
