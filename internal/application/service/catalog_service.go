package service

import (
	"context"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
)

// CatalogService serves the POS product catalog and its brand -> type -> variant drill-down
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ListProducts returns catalog products, optionally limited to one category
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]entity.Product, error) {
	return s.catalogRepo.List(ctx, category)
}

// GetProduct retrieves a catalog product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.catalogRepo.GetByID(ctx, id)
}

// Brands returns the distinct brands of a category in catalog order
func (s *CatalogService) Brands(ctx context.Context, category string) ([]string, error) {
	products, err := s.catalogRepo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return distinct(products, func(p *entity.Product) string { return p.Brand }), nil
}

// Types returns the distinct product types of a brand within a category
func (s *CatalogService) Types(ctx context.Context, category, brand string) ([]string, error) {
	products, err := s.catalogRepo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	filtered := products[:0]
	for _, p := range products {
		if p.Brand == brand {
			filtered = append(filtered, p)
		}
	}
	return distinct(filtered, func(p *entity.Product) string { return p.Type }), nil
}

// Variants returns the products matching a category, brand and type: the
// choices offered in the volume and filter pickers.
func (s *CatalogService) Variants(ctx context.Context, category, brand, productType string) ([]entity.Product, error) {
	products, err := s.catalogRepo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	out := []entity.Product{}
	for _, p := range products {
		if p.Brand == brand && p.Type == productType {
			out = append(out, p)
		}
	}
	return out, nil
}

func distinct(products []entity.Product, key func(p *entity.Product) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for i := range products {
		k := key(&products[i])
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
