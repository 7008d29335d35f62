package repository

import (
	"context"
	"time"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

// SaleRepository stores completed sales
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List returns sales newest first
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination  *pagination.PaginationParams // nil returns every match
	PaymentType *enum.PaymentType
	StartDate   *time.Time
	EndDate     *time.Time
}
