package memory

import (
	"context"
	"sync"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

type saleRepository struct {
	mu    sync.RWMutex
	sales []entity.Sale // append order, oldest first
}

// NewSaleRepository creates an in-memory sale repository
func NewSaleRepository() domainRepo.SaleRepository {
	return &saleRepository{sales: []entity.Sale{}}
}

func copySale(s entity.Sale) entity.Sale {
	lines := make([]entity.SaleLine, len(s.Lines))
	copy(lines, s.Lines)
	s.Lines = lines
	return s
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sales {
		if r.sales[i].ID == sale.ID {
			return apperror.NewConflictError("Sale with this ID already exists")
		}
	}
	r.sales = append(r.sales, copySale(*sale))
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.sales {
		if r.sales[i].ID == id {
			sale := copySale(r.sales[i])
			return &sale, nil
		}
	}
	return nil, apperror.NewNotFoundError("Sale")
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.RLock()
	matches := make([]entity.Sale, 0, len(r.sales))
	for i := len(r.sales) - 1; i >= 0; i-- {
		if params == nil || matchSale(&r.sales[i], params) {
			matches = append(matches, copySale(r.sales[i]))
		}
	}
	r.mu.RUnlock()

	total := int64(len(matches))
	if params == nil || params.Pagination == nil {
		return matches, total, nil
	}
	return pagination.Paginate(matches, params.Pagination).Items, total, nil
}

func matchSale(s *entity.Sale, params *domainRepo.SaleFilterParams) bool {
	if params.PaymentType != nil && s.PaymentType != *params.PaymentType {
		return false
	}
	if params.StartDate != nil && s.CreatedAt.Before(*params.StartDate) {
		return false
	}
	if params.EndDate != nil && !s.CreatedAt.Before(*params.EndDate) {
		return false
	}
	return true
}
