package repository

import (
	"context"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
)

// CatalogRepository is the read-only product catalog the POS sells from
type CatalogRepository interface {
	// List returns products in catalog order; an empty category returns all
	List(ctx context.Context, category string) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
