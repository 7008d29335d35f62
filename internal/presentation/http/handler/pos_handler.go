package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
)

// POSHandler handles the till: staging, cart and checkout of one session
type POSHandler struct {
	posService *service.POSService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(posService *service.POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

// GetCart returns the session's cart
func (h *POSHandler) GetCart(c *gin.Context) {
	cart, err := h.posService.GetCart(c.Request.Context(), GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", cart)
}

// AddToCart adds a product without variants to the cart
func (h *POSHandler) AddToCart(c *gin.Context) {
	var req request.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.posService.AddToCart(c.Request.Context(), GetSessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", cart)
}

// UpdateCartLine sets the quantity of a cart line
func (h *POSHandler) UpdateCartLine(c *gin.Context) {
	var req request.UpdateCartLineRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.posService.UpdateCartLine(c.Request.Context(), GetSessionID(c), c.Param("key"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", cart)
}

// RemoveCartLine removes a line from the cart. Unknown keys are ignored.
func (h *POSHandler) RemoveCartLine(c *gin.Context) {
	cart, err := h.posService.RemoveCartLine(c.Request.Context(), GetSessionID(c), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", cart)
}

// ClearCart empties the cart
func (h *POSHandler) ClearCart(c *gin.Context) {
	cart, err := h.posService.ClearCart(c.Request.Context(), GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", cart)
}

// GetStaging returns the staged variant selections
func (h *POSHandler) GetStaging(c *gin.Context) {
	staging, err := h.posService.GetStaging(c.Request.Context(), GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staging retrieved successfully", staging)
}

// SelectVariant stages one unit of a product variant
func (h *POSHandler) SelectVariant(c *gin.Context) {
	var req request.SelectVariantRequest
	if !bindJSON(c, &req) {
		return
	}

	staging, err := h.posService.SelectVariant(c.Request.Context(), GetSessionID(c), req.ProductID, req.Variant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Variant selected", staging)
}

// AdjustStaged changes a staged selection's quantity
func (h *POSHandler) AdjustStaged(c *gin.Context) {
	var req request.AdjustStagedRequest
	if !bindJSON(c, &req) {
		return
	}

	staging, err := h.posService.AdjustStaged(c.Request.Context(), GetSessionID(c), c.Param("key"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Selection updated", staging)
}

// CommitStaging moves every staged selection into the cart
func (h *POSHandler) CommitStaging(c *gin.Context) {
	cart, err := h.posService.CommitStaging(c.Request.Context(), GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Selections added to cart", cart)
}

// ClearStaging drops every staged selection
func (h *POSHandler) ClearStaging(c *gin.Context) {
	staging, err := h.posService.ClearStaging(c.Request.Context(), GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staging cleared", staging)
}

// Checkout records the sale for the session's cart
func (h *POSHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.posService.Checkout(c.Request.Context(), &service.CheckoutInput{
		SessionID:    GetSessionID(c),
		PaymentType:  *req.PaymentType,
		Note:         req.Note,
		PrintReceipt: req.PrintReceipt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale completed successfully"
	if result.PrintError != "" {
		message = "Sale completed but the receipt could not be printed"
	}
	response.Created(c, message, result)
}
