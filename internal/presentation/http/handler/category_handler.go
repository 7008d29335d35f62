package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns the categories. With ?counts=true each carries its item count.
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("counts") == "true" {
		counts, err := h.categoryService.ListCategoryCounts(ctx)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Categories retrieved successfully", counts)
		return
	}

	categories, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}

// Create adds a category. Adding an existing one answers 200 instead of 201.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	name, created, err := h.categoryService.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{"name": name, "created": created}
	if !created {
		response.Success(c, http.StatusOK, "Category already exists", data)
		return
	}
	response.Created(c, "Category created successfully", data)
}

// Delete removes a category and clears it from every item
func (h *CategoryHandler) Delete(c *gin.Context) {
	result, err := h.categoryService.RemoveCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category removed successfully", result)
}
