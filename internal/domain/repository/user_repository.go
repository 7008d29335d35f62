package repository

import (
	"context"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/pkg/pagination"
)

// UserRepository defines the interface for user data operations.
// Emails are unique; Create and Patch return a conflict error otherwise.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Patch applies fn to a copy of the stored user under the write lock and
	// stores it when fn and the email check succeed
	Patch(ctx context.Context, id string, fn func(user *entity.User) error) (*entity.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
}
