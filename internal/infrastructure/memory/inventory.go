package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

// InventoryStore owns the item and category collections. Both live under one
// lock because removing a category rewrites items in the same step.
type InventoryStore struct {
	mu         sync.RWMutex
	items      []entity.InventoryItem
	categories []string
}

// NewInventoryStore creates an empty inventory store
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		items:      []entity.InventoryItem{},
		categories: []string{},
	}
}

// Items returns the item collection view
func (s *InventoryStore) Items() domainRepo.ItemRepository {
	return &itemRepository{store: s}
}

// Categories returns the category collection view
func (s *InventoryStore) Categories() domainRepo.CategoryRepository {
	return &categoryRepository{store: s}
}

// callers must hold the lock
func (s *InventoryStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *InventoryStore) hasCategory(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *InventoryStore) hasName(name string) bool {
	for i := range s.items {
		if s.items[i].Name == name {
			return true
		}
	}
	return false
}

func (s *InventoryStore) checkCategory(category string) error {
	if category != "" && !s.hasCategory(category) {
		return apperror.NewFieldError("category", "Category '"+category+"' does not exist")
	}
	return nil
}

type itemRepository struct {
	store *InventoryStore
}

func (r *itemRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(item.ID) >= 0 {
		return apperror.NewConflictError("Item with this ID already exists")
	}
	if err := s.checkCategory(item.Category); err != nil {
		return err
	}

	s.items = append(s.items, item.Clone())
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Item")
	}
	item := s.items[idx].Clone()
	return &item, nil
}

func (r *itemRepository) Patch(ctx context.Context, id string, fn func(item *entity.InventoryItem) error) (*entity.InventoryItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Item")
	}

	item := s.items[idx].Clone()
	if err := fn(&item); err != nil {
		return nil, err
	}
	item.ID = id
	if err := s.checkCategory(item.Category); err != nil {
		return nil, err
	}

	s.items[idx] = item
	out := item.Clone()
	return &out, nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true, nil
}

func (r *itemRepository) Duplicate(ctx context.Context, sourceID, newID string) (*entity.InventoryItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sourceID)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Item")
	}
	if s.indexOf(newID) >= 0 {
		return nil, apperror.NewConflictError("Item with this ID already exists")
	}

	dup := s.items[idx].Clone()
	dup.ID = newID
	dup.Name = entity.CopyName(dup.Name, s.hasName)
	s.items = append(s.items, dup)

	out := dup.Clone()
	return &out, nil
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.InventoryItem, int64, error) {
	s := r.store
	s.mu.RLock()
	matches := make([]entity.InventoryItem, 0, len(s.items))
	for i := range s.items {
		if params == nil || matchItem(&s.items[i], params) {
			matches = append(matches, s.items[i].Clone())
		}
	}
	s.mu.RUnlock()

	total := int64(len(matches))
	if params == nil || params.Pagination == nil {
		return matches, total, nil
	}
	return pagination.Paginate(matches, params.Pagination).Items, total, nil
}

func matchItem(item *entity.InventoryItem, params *domainRepo.ItemFilterParams) bool {
	if params.Category != nil && item.Category != *params.Category {
		return false
	}
	if params.Search == "" {
		return true
	}
	q := strings.ToLower(params.Search)
	return strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.SKU), q) ||
		strings.Contains(strings.ToLower(item.Brand), q)
}

func (r *itemRepository) GetLowStock(ctx context.Context, threshold int) ([]entity.InventoryItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	low := []entity.InventoryItem{}
	for i := range s.items {
		if s.items[i].Stock <= threshold {
			low = append(low, s.items[i].Clone())
		}
	}
	return low, nil
}

func (r *itemRepository) DecrementStock(ctx context.Context, decrements map[string]int) ([]string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := make([]string, 0, len(decrements))
	for i := range s.items {
		qty, ok := decrements[s.items[i].ID]
		if !ok {
			continue
		}
		s.items[i].Stock -= qty
		if s.items[i].Stock < 0 {
			s.items[i].Stock = 0
		}
		applied = append(applied, s.items[i].ID)
	}
	return applied, nil
}

type categoryRepository struct {
	store *InventoryStore
}

func (r *categoryRepository) List(ctx context.Context) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (r *categoryRepository) Add(ctx context.Context, name string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasCategory(name) {
		return false, nil
	}
	s.categories = append(s.categories, name)
	return true, nil
}

func (r *categoryRepository) Remove(ctx context.Context, name string) (bool, int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c == name {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.categories = kept

	cleared := 0
	for i := range s.items {
		if s.items[i].Category == name {
			s.items[i].Category = ""
			cleared++
		}
	}
	return removed, cleared, nil
}

func (r *categoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasCategory(name), nil
}

func (r *categoryRepository) Counts(ctx context.Context) ([]entity.CategoryCount, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make([]entity.CategoryCount, len(s.categories))
	for i, c := range s.categories {
		counts[i].Name = c
		for j := range s.items {
			if s.items[j].Category == c {
				counts[i].Items++
			}
		}
	}
	return counts, nil
}
