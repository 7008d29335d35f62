package repository

import (
	"context"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

// ItemRepository defines the interface for inventory item operations.
// Insertion order is significant and preserved by List.
type ItemRepository interface {
	// Create appends the item. The category must be empty or an existing category.
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Patch applies fn to a copy of the stored item while holding the write
	// lock, then stores the copy in place. An error from fn or the category
	// check leaves the stored item unchanged.
	Patch(ctx context.Context, id string, fn func(item *entity.InventoryItem) error) (*entity.InventoryItem, error)
	// Delete removes the item. Returns false when the id was already absent.
	Delete(ctx context.Context, id string) (bool, error)
	// Duplicate copies the source item under newID with the next free "<name> (n)" name
	Duplicate(ctx context.Context, sourceID, newID string) (*entity.InventoryItem, error)
	List(ctx context.Context, params *ItemFilterParams) ([]entity.InventoryItem, int64, error)
	GetLowStock(ctx context.Context, threshold int) ([]entity.InventoryItem, error)
	// DecrementStock subtracts quantities per item id, flooring at zero.
	// Unknown ids are skipped; the ids that were applied are returned.
	DecrementStock(ctx context.Context, decrements map[string]int) ([]string, error)
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams // nil returns every match
	Search     string
	Category   *string
}

// CategoryRepository defines the interface for the category collection
type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	// Add inserts the name unless present. Returns false when it already existed.
	Add(ctx context.Context, name string) (bool, error)
	// Remove deletes the name and blanks the category of every item filed under it,
	// in one step. Returns whether the name existed and how many items were cleared.
	Remove(ctx context.Context, name string) (bool, int, error)
	Exists(ctx context.Context, name string) (bool, error)
	// Counts returns every category with the number of items referencing it
	Counts(ctx context.Context) ([]entity.CategoryCount, error)
}
