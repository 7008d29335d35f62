package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededInventory(t *testing.T) *InventoryStore {
	t.Helper()
	store := NewInventoryStore()
	require.NoError(t, Seed(context.Background(), store, NewUserRepository()))
	return store
}

func TestItemRepositoryCreateAndRemove(t *testing.T) {
	ctx := context.Background()
	items := newSeededInventory(t).Items()

	_, before, err := items.List(ctx, nil)
	require.NoError(t, err)

	item := &entity.InventoryItem{ID: "x-1", Name: "Coolant", Category: "Additives", Stock: 4, Price: decimal.NewFromInt(9)}
	require.NoError(t, items.Create(ctx, item))

	list, total, err := items.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, total)
	assert.Equal(t, "x-1", list[len(list)-1].ID, "new items are appended")

	removed, err := items.Delete(ctx, "x-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = items.Delete(ctx, "x-1")
	require.NoError(t, err)
	assert.False(t, removed)

	_, total, err = items.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, before, total)
}

func TestItemRepositoryRejectsUnknownCategory(t *testing.T) {
	items := newSeededInventory(t).Items()

	err := items.Create(context.Background(), &entity.InventoryItem{ID: "x", Name: "Thing", Category: "Nope"})

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestItemRepositoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	items := newSeededInventory(t).Items()

	got, err := items.GetByID(ctx, "oil-1")
	require.NoError(t, err)
	got.Volumes[0].Size = "mutated"
	got.Name = "mutated"

	again, err := items.GetByID(ctx, "oil-1")
	require.NoError(t, err)
	assert.Equal(t, "0W-20", again.Name)
	assert.Equal(t, "5L", again.Volumes[0].Size)

	_, err = items.GetByID(ctx, "missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestItemRepositoryDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	items := store.Items()
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "w", Name: "Widget"}))
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "w1", Name: "Widget (1)"}))

	dup, err := items.Duplicate(ctx, "w", "w2")
	require.NoError(t, err)
	assert.Equal(t, "Widget (2)", dup.Name)

	dup, err = items.Duplicate(ctx, "w1", "w3")
	require.NoError(t, err)
	assert.Equal(t, "Widget (1) (1)", dup.Name)

	_, err = items.Duplicate(ctx, "missing", "w4")
	assert.True(t, apperror.IsNotFound(err))

	_, total, err := items.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestItemRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	items := newSeededInventory(t).Items()

	filters := entity.CategoryFilters
	list, total, err := items.List(ctx, &domainRepo.ItemFilterParams{Category: &filters})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "filter-1", list[0].ID)

	list, _, err = items.List(ctx, &domainRepo.ItemFilterParams{Search: "toyota"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, total, err = items.List(ctx, &domainRepo.ItemFilterParams{
		Pagination: &pagination.PaginationParams{Page: 2, PerPage: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, list, 2)
}

func TestItemRepositoryPatch(t *testing.T) {
	ctx := context.Background()
	items := newSeededInventory(t).Items()

	patched, err := items.Patch(ctx, "part-1", func(item *entity.InventoryItem) error {
		item.ID = "hijack"
		item.Name = "Brake Pads - Ceramic"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "part-1", patched.ID, "the id cannot be rewritten")
	assert.Equal(t, 30, patched.Stock)

	_, err = items.Patch(ctx, "part-1", func(item *entity.InventoryItem) error {
		item.Name = "Ignored"
		item.Category = "Nope"
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = items.Patch(ctx, "part-1", func(item *entity.InventoryItem) error {
		item.Name = "Ignored"
		return apperror.NewFieldError("name", "rejected")
	})
	require.Error(t, err)

	stored, err := items.GetByID(ctx, "part-1")
	require.NoError(t, err)
	assert.Equal(t, "Brake Pads - Ceramic", stored.Name)
	assert.Equal(t, "Parts", stored.Category)

	_, err = items.Patch(ctx, "ghost", func(*entity.InventoryItem) error { return nil })
	assert.True(t, apperror.IsNotFound(err))
}

func TestItemRepositoryDecrementStock(t *testing.T) {
	ctx := context.Background()
	items := newSeededInventory(t).Items()

	applied, err := items.DecrementStock(ctx, map[string]int{"part-1": 5, "add-1": 1000, "ghost": 1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"part-1", "add-1"}, applied)

	part, _ := items.GetByID(ctx, "part-1")
	assert.Equal(t, 25, part.Stock)
	additive, _ := items.GetByID(ctx, "add-1")
	assert.Equal(t, 0, additive.Stock)
}

func TestCategoryRepositoryAddIsSetSemantics(t *testing.T) {
	ctx := context.Background()
	categories := NewInventoryStore().Categories()

	created, err := categories.Add(ctx, "Oil")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = categories.Add(ctx, "Oil")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = categories.Add(ctx, "Parts")
	require.NoError(t, err)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oil", "Parts"}, list)
}

func TestCategoryRepositoryRemoveCascades(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	categories, items := store.Categories(), store.Items()

	_, _ = categories.Add(ctx, "Filters")
	_, _ = categories.Add(ctx, "Parts")
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "a", Name: "A", Category: "Filters"}))
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "b", Name: "B", Category: "Filters"}))
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "c", Name: "C", Category: "Parts"}))

	removed, cleared, err := categories.Remove(ctx, "Filters")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 2, cleared)

	list, _ := categories.List(ctx)
	assert.Equal(t, []string{"Parts"}, list)

	all, _, _ := items.List(ctx, nil)
	for _, item := range all {
		assert.NotEqual(t, "Filters", item.Category)
	}
	c, _ := items.GetByID(ctx, "c")
	assert.Equal(t, "Parts", c.Category)

	counts, err := categories.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.CategoryCount{{Name: "Parts", Items: 1}}, counts)
}

func TestCategoryRemoveIsAtomicForReaders(t *testing.T) {
	ctx := context.Background()
	store := NewInventoryStore()
	categories, items := store.Categories(), store.Items()

	_, _ = categories.Add(ctx, "Filters")
	_, _ = categories.Add(ctx, "Parts")
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: id, Name: id, Category: "Filters"}))
	}
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "p", Name: "p", Category: "Parts"}))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < 200; i++ {
				all, _, err := items.List(ctx, nil)
				assert.NoError(t, err)
				filed := 0
				for _, item := range all {
					if item.Category == "Filters" {
						filed++
					}
				}
				assert.Contains(t, []int{0, 4, 5}, filed, "a reader saw a half-cleared category")

				counts, err := categories.Counts(ctx)
				assert.NoError(t, err)
				for _, c := range counts {
					if c.Name == "Filters" {
						assert.Contains(t, []int{4, 5}, c.Items)
					}
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		_, err := items.Patch(ctx, "p", func(item *entity.InventoryItem) error {
			item.Category = "Filters"
			return nil
		})
		if err != nil {
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
		}
	}()

	close(start)
	removed, _, err := categories.Remove(ctx, "Filters")
	require.NoError(t, err)
	assert.True(t, removed)
	wg.Wait()

	names, err := categories.List(ctx)
	require.NoError(t, err)
	all, _, err := items.List(ctx, nil)
	require.NoError(t, err)
	for _, item := range all {
		if item.Category != "" {
			assert.Contains(t, names, item.Category, "item %s points at a removed category", item.ID)
		}
	}
}
