package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
)

// catalogRepository never changes after construction, so it needs no lock
type catalogRepository struct {
	products []entity.Product
}

// NewCatalogRepository creates a read-only catalog over the given products.
// IDs must be non-empty, unique and free of the cart key separator.
func NewCatalogRepository(products []entity.Product) (domainRepo.CatalogRepository, error) {
	owned := make([]entity.Product, len(products))
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("catalog product %q has no id", p.Name)
		case strings.Contains(p.ID, entity.CartKeySeparator):
			return nil, fmt.Errorf("catalog product id %q must not contain %q", p.ID, entity.CartKeySeparator)
		case seen[p.ID]:
			return nil, fmt.Errorf("duplicate catalog product id %q", p.ID)
		}
		seen[p.ID] = true
		owned[i] = cloneProduct(p)
	}
	return &catalogRepository{products: owned}, nil
}

func cloneProduct(p entity.Product) entity.Product {
	if p.Volumes != nil {
		volumes := make([]entity.Volume, len(p.Volumes))
		copy(volumes, p.Volumes)
		p.Volumes = volumes
	}
	return p
}

func (r *catalogRepository) List(ctx context.Context, category string) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			product := cloneProduct(p)
			return &product, nil
		}
	}
	return nil, apperror.NewNotFoundError("Product")
}
