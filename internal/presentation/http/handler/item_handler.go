package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

// maxImportSize caps the uploaded CSV file
const maxImportSize = 5 << 20

// ItemHandler handles inventory item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func toVolumes(in []request.VolumeRequest) []entity.Volume {
	if in == nil {
		return nil
	}
	out := make([]entity.Volume, len(in))
	for i, v := range in {
		out[i] = entity.Volume{Size: v.Size, Price: v.Price}
	}
	return out
}

// List handles listing items. "?category=" with an empty value lists uncategorized items.
func (h *ItemHandler) List(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:   filter.Search,
		Category: optionalQuery(c, "category"),
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Items retrieved successfully", result)
}

// Create handles creating an item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Stock:       req.Stock,
		Price:       req.Price,
		Brand:       req.Brand,
		Type:        req.Type,
		Image:       req.Image,
		Description: req.Description,
		SKU:         req.SKU,
		IsOil:       req.IsOil,
		Volumes:     toVolumes(req.Volumes),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles getting an item by ID
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles a partial item update
func (h *ItemHandler) Update(c *gin.Context) {
	var req request.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateItemInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Stock:       req.Stock,
		Price:       req.Price,
		Brand:       req.Brand,
		Type:        req.Type,
		Image:       req.Image,
		Description: req.Description,
		SKU:         req.SKU,
		IsOil:       req.IsOil,
	}
	if req.Volumes != nil {
		volumes := toVolumes(*req.Volumes)
		if volumes == nil {
			volumes = []entity.Volume{}
		}
		input.Volumes = &volumes
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting an item. Deleting an unknown ID succeeds.
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Duplicate handles copying an item under the next free name
func (h *ItemHandler) Duplicate(c *gin.Context) {
	item, err := h.itemService.DuplicateItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item duplicated successfully", item)
}

// GetLowStock returns the items at or below the stock alert threshold
func (h *ItemHandler) GetLowStock(c *gin.Context) {
	items, err := h.itemService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", gin.H{
		"threshold": h.itemService.LowStockThreshold(),
		"items":     items,
	})
}

// Export streams the whole inventory as a CSV attachment
func (h *ItemHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("inventory-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := h.itemService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Import handles a multipart CSV upload in the "file" field
func (h *ItemHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A CSV file is required in the \"file\" field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.itemService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := fmt.Sprintf("Imported %d of %d items", result.Successful, result.TotalRows)
	response.OK(c, message, result)
}
