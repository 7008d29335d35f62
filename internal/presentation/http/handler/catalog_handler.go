package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the product catalog the till browses
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts lists catalog products, optionally for one category
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// GetProduct returns one catalog product with its volumes
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Brands lists the brands of a category
func (h *CatalogHandler) Brands(c *gin.Context) {
	brands, err := h.catalogService.Brands(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Brands retrieved successfully", brands)
}

// Types lists the product types of a category and brand
func (h *CatalogHandler) Types(c *gin.Context) {
	types, err := h.catalogService.Types(c.Request.Context(), c.Query("category"), c.Query("brand"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Types retrieved successfully", types)
}

// Variants lists the products matching category, brand and type
func (h *CatalogHandler) Variants(c *gin.Context) {
	products, err := h.catalogService.Variants(c.Request.Context(), c.Query("category"), c.Query("brand"), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Variants retrieved successfully", products)
}
