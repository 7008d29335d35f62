package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SaleHandler handles sale history and receipt reprints
type SaleHandler struct {
	saleService    *service.SaleService
	printerService *service.PrinterService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, printerService *service.PrinterService) *SaleHandler {
	return &SaleHandler{saleService: saleService, printerService: printerService}
}

// List handles listing sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := saleFilterParams(&filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

func saleFilterParams(filter *request.SaleFilterRequest) (*repository.SaleFilterParams, error) {
	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	if filter.PaymentType != "" {
		pt, ok := enum.ParsePaymentType(filter.PaymentType)
		if !ok {
			return nil, apperror.NewBadRequestErrorf("Invalid payment type %q", filter.PaymentType)
		}
		params.PaymentType = &pt
	}

	if filter.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, filter.StartDate, time.Local)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid start_date, expected YYYY-MM-DD")
		}
		params.StartDate = &start
	}

	if filter.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, filter.EndDate, time.Local)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid end_date, expected YYYY-MM-DD")
		}
		// end date is inclusive
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	return params, nil
}

// Get handles getting a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Print reprints the receipt of a sale
func (h *SaleHandler) Print(c *gin.Context) {
	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		// If receipt was built but printing failed, return receipt with warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
