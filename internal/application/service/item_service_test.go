package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewItemService(env.items, 10)

	item, err := svc.CreateItem(ctx, &CreateItemInput{
		Name:     "  Coolant  ",
		Category: "Additives",
		Stock:    12,
		Price:    d("8.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Coolant", item.Name)

	other, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Coolant", Price: d("1")})
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, other.ID)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestCreateItemValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	tests := []struct {
		name  string
		input CreateItemInput
		field string
	}{
		{"missing name", CreateItemInput{Price: d("1")}, "name"},
		{"negative stock", CreateItemInput{Name: "A", Stock: -1}, "stock"},
		{"negative price", CreateItemInput{Name: "A", Price: d("-0.01")}, "price"},
		{"oil without volumes", CreateItemInput{Name: "A", IsOil: true}, "volumes"},
		{"simple item with volumes", CreateItemInput{Name: "A", Volumes: []entity.Volume{{Size: "1L", Price: d("2")}}}, "volumes"},
		{"blank volume size", CreateItemInput{Name: "A", IsOil: true, Volumes: []entity.Volume{{Size: " ", Price: d("2")}}}, "volumes[0].size"},
		{"duplicate volume size", CreateItemInput{Name: "A", IsOil: true, Volumes: []entity.Volume{{Size: "1L", Price: d("2")}, {Size: "1L", Price: d("3")}}}, "volumes[1].size"},
		{"negative volume price", CreateItemInput{Name: "A", IsOil: true, Volumes: []entity.Volume{{Size: "1L", Price: d("-2")}}}, "volumes[0].price"},
		{"unknown category", CreateItemInput{Name: "A", Category: "Tyres"}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, &tt.input)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}
}

func TestAddThenRemoveShrinksCollection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewItemService(env.items, 10)

	before, err := svc.ListItems(ctx, &repository.ItemFilterParams{})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Wiper Blades", Category: "Parts", Stock: 3, Price: d("12")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	after, err := svc.ListItems(ctx, &repository.ItemFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, before.Pagination.Total, after.Pagination.Total)
	for _, it := range after.Items {
		assert.NotEqual(t, item.ID, it.ID)
	}

	// removing an absent id changes nothing and is not an error
	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	again, err := svc.ListItems(ctx, &repository.ItemFilterParams{})
	require.NoError(t, err)
	assert.Equal(t, after.Pagination.Total, again.Pagination.Total)
}

func TestUpdateItemMergesFields(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	stock := 7
	updated, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: "part-1", Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Brake Pads", updated.Name)
	assert.Equal(t, "Parts", updated.Category)
	assert.True(t, d("45.99").Equal(updated.Price))
}

func TestUpdateItemTurningOffOilClearsVolumes(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	isOil := false
	updated, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: "oil-1", IsOil: &isOil})
	require.NoError(t, err)
	assert.False(t, updated.IsOil)
	assert.Empty(t, updated.Volumes)
}

func TestUpdateItemRejectedLeavesItemUntouched(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	name := "Renamed"
	stock := -5
	_, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: "part-1", Name: &name, Stock: &stock})
	require.Error(t, err)

	item, err := svc.GetItem(ctx, "part-1")
	require.NoError(t, err)
	assert.Equal(t, "Brake Pads", item.Name)
	assert.Equal(t, 30, item.Stock)
}

// checkoutDuringUpdate sells stock between an update's read and its write
type checkoutDuringUpdate struct {
	repository.ItemRepository
	sell map[string]int
	once sync.Once
}

func (r *checkoutDuringUpdate) checkout(ctx context.Context) {
	r.once.Do(func() {
		_, _ = r.ItemRepository.DecrementStock(ctx, r.sell)
	})
}

func (r *checkoutDuringUpdate) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := r.ItemRepository.GetByID(ctx, id)
	r.checkout(ctx)
	return item, err
}

func (r *checkoutDuringUpdate) Patch(ctx context.Context, id string, fn func(*entity.InventoryItem) error) (*entity.InventoryItem, error) {
	r.checkout(ctx)
	return r.ItemRepository.Patch(ctx, id, fn)
}

func TestUpdateItemKeepsStockSoldMidUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	stock := 10
	_, err := NewItemService(env.items, 10).UpdateItem(ctx, &UpdateItemInput{ID: "part-1", Stock: &stock})
	require.NoError(t, err)

	svc := NewItemService(&checkoutDuringUpdate{ItemRepository: env.items, sell: map[string]int{"part-1": 3}}, 10)
	name := "Brake Pads - Ceramic"
	updated, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: "part-1", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	item, err := env.items.GetByID(ctx, "part-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Stock)
	assert.Equal(t, "Brake Pads - Ceramic", item.Name)
}

func TestConcurrentUpdatesAndCheckoutsAllLand(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewItemService(env.items, 10)

	const sales = 20
	name := "Brake Pads - Ceramic"
	brand := "Brembo"
	sku := "BRK-PAD-002"
	price := d("49.99")
	updates := []*UpdateItemInput{
		{ID: "part-1", Name: &name},
		{ID: "part-1", Brand: &brand},
		{ID: "part-1", SKU: &sku},
		{ID: "part-1", Price: &price},
	}

	var wg sync.WaitGroup
	for i := 0; i < sales; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.items.DecrementStock(ctx, map[string]int{"part-1": 1})
			assert.NoError(t, err)
		}()
	}
	for _, input := range updates {
		wg.Add(1)
		go func(input *UpdateItemInput) {
			defer wg.Done()
			_, err := svc.UpdateItem(ctx, input)
			assert.NoError(t, err)
		}(input)
	}
	wg.Wait()

	item, err := env.items.GetByID(ctx, "part-1")
	require.NoError(t, err)
	assert.Equal(t, 30-sales, item.Stock)
	assert.Equal(t, name, item.Name)
	assert.Equal(t, brand, item.Brand)
	assert.Equal(t, sku, item.SKU)
	assert.True(t, price.Equal(item.Price))
}

func TestUpdateAndDuplicateMissingItem(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	name := "x"
	_, err := svc.UpdateItem(ctx, &UpdateItemInput{ID: "nope", Name: &name})
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.DuplicateItem(ctx, "nope")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDuplicateItemNaming(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewItemService(env.items, 10)

	widget, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Widget", Category: "Parts", Stock: 4, Price: d("2.50"), SKU: "W-1"})
	require.NoError(t, err)
	first, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Widget (1)", Category: "Parts", Price: d("2.50")})
	require.NoError(t, err)

	dup, err := svc.DuplicateItem(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget (2)", dup.Name)
	assert.NotEqual(t, widget.ID, dup.ID)
	assert.Equal(t, widget.SKU, dup.SKU)
	assert.Equal(t, widget.Stock, dup.Stock)
	assert.True(t, widget.Price.Equal(dup.Price))

	dupOfCopy, err := svc.DuplicateItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget (1) (1)", dupOfCopy.Name)

	// a deleted copy frees its slot
	require.NoError(t, svc.DeleteItem(ctx, first.ID))
	again, err := svc.DuplicateItem(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget (1)", again.Name)
}

func TestDuplicateOilItemCopiesVolumes(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	dup, err := svc.DuplicateItem(ctx, "oil-1")
	require.NoError(t, err)
	assert.Equal(t, "0W-20 (1)", dup.Name)
	assert.True(t, dup.IsOil)
	assert.Len(t, dup.Volumes, 4)
}

func TestListItemsFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	oil := entity.CategoryOil
	result, err := svc.ListItems(ctx, &repository.ItemFilterParams{Category: &oil})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Equal(t, "oil-1", result.Items[0].ID)
	assert.Equal(t, "oil-2", result.Items[1].ID)

	result, err = svc.ListItems(ctx, &repository.ItemFilterParams{Search: "brk-pad"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "part-1", result.Items[0].ID)
}

func TestGetLowStockItems(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 50)

	low, err := svc.GetLowStockItems(ctx)
	require.NoError(t, err)

	ids := []string{}
	for _, item := range low {
		ids = append(ids, item.ID)
	}
	assert.ElementsMatch(t, []string{"filter-2", "part-1"}, ids)
}
