package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
	"github.com/sangkips/lubepos-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ItemService handles inventory item operations
type ItemService struct {
	itemRepo          repository.ItemRepository
	lowStockThreshold int
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, lowStockThreshold int) *ItemService {
	return &ItemService{
		itemRepo:          itemRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name        string
	Category    string
	Stock       int
	Price       decimal.Decimal
	Brand       string
	Type        string
	Image       string
	Description string
	SKU         string
	IsOil       bool
	Volumes     []entity.Volume
}

// CreateItem validates the input and appends a new item with a fresh ID
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		Price:       input.Price,
		Brand:       input.Brand,
		Type:        input.Type,
		Image:       input.Image,
		Description: input.Description,
		SKU:         input.SKU,
		IsOil:       input.IsOil,
		Volumes:     normalizeVolumes(input.Volumes),
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// ListItems lists items in insertion order with optional search and category filter
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItemInput represents the update item input. Nil fields are left unchanged.
type UpdateItemInput struct {
	ID          string
	Name        *string
	Category    *string
	Stock       *int
	Price       *decimal.Decimal
	Brand       *string
	Type        *string
	Image       *string
	Description *string
	SKU         *string
	IsOil       *bool
	Volumes     *[]entity.Volume
}

// UpdateItem merges the provided fields into the item. The merge and
// validation run inside the repository's write lock, so concurrent stock
// decrements and patches of other fields are not lost, and a rejected update
// changes nothing.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.InventoryItem, error) {
	return s.itemRepo.Patch(ctx, input.ID, func(item *entity.InventoryItem) error {
		input.apply(item)
		return validateItem(item)
	})
}

func (input *UpdateItemInput) apply(item *entity.InventoryItem) {
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Type != nil {
		item.Type = *input.Type
	}
	if input.Image != nil {
		item.Image = *input.Image
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.Volumes != nil {
		item.Volumes = normalizeVolumes(*input.Volumes)
	}
	if input.IsOil != nil {
		item.IsOil = *input.IsOil
		if !item.IsOil {
			item.Volumes = nil
		}
	}
}

// DeleteItem removes an item. Removing an absent item is not an error.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	_, err := s.itemRepo.Delete(ctx, id)
	return err
}

// DuplicateItem copies an item under a new ID and the next free "<name> (n)" name
func (s *ItemService) DuplicateItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.itemRepo.Duplicate(ctx, id, utils.NewID())
}

// GetLowStockItems returns items at or below the configured stock threshold
func (s *ItemService) GetLowStockItems(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.itemRepo.GetLowStock(ctx, s.lowStockThreshold)
}

// LowStockThreshold returns the configured threshold
func (s *ItemService) LowStockThreshold() int {
	return s.lowStockThreshold
}

func normalizeVolumes(volumes []entity.Volume) []entity.Volume {
	if len(volumes) == 0 {
		return nil
	}
	out := make([]entity.Volume, len(volumes))
	for i, v := range volumes {
		out[i] = entity.Volume{Size: strings.TrimSpace(v.Size), Price: v.Price}
	}
	return out
}

func validateItem(item *entity.InventoryItem) error {
	errs := itemFieldErrors(item)
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func itemFieldErrors(item *entity.InventoryItem) []apperror.FieldError {
	var errs []apperror.FieldError
	add := func(field, msg string) {
		errs = append(errs, apperror.FieldError{Field: field, Message: msg})
	}

	if item.Name == "" {
		add("name", "Name is required")
	}
	if item.Stock < 0 {
		add("stock", "Stock cannot be negative")
	}
	if item.Price.IsNegative() {
		add("price", "Price cannot be negative")
	}

	if !item.IsOil {
		if len(item.Volumes) > 0 {
			add("volumes", "Only oil items can have volumes")
		}
		return errs
	}

	if len(item.Volumes) == 0 {
		add("volumes", "Oil items need at least one volume")
	}
	seen := make(map[string]bool, len(item.Volumes))
	for i, v := range item.Volumes {
		field := fmt.Sprintf("volumes[%d]", i)
		switch {
		case v.Size == "":
			add(field+".size", "Size is required")
		case seen[v.Size]:
			add(field+".size", fmt.Sprintf("Duplicate size '%s'", v.Size))
		}
		seen[v.Size] = true
		if v.Price.IsNegative() {
			add(field+".price", "Price cannot be negative")
		}
	}
	return errs
}
