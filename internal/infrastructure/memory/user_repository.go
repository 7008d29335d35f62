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

type userRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

// NewUserRepository creates an in-memory user repository
func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{users: []entity.User{}}
}

func (r *userRepository) indexOf(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

// emailTaken reports whether another user already uses the email
func (r *userRepository) emailTaken(email, exceptID string) bool {
	for i := range r.users {
		if r.users[i].ID != exceptID && strings.EqualFold(r.users[i].Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(user.ID) >= 0 {
		return apperror.NewConflictError("User with this ID already exists")
	}
	if r.emailTaken(user.Email, "") {
		return apperror.NewConflictError("Email already in use")
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("User")
	}
	user := r.users[idx]
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, apperror.NewNotFoundError("User")
}

func (r *userRepository) Patch(ctx context.Context, id string, fn func(user *entity.User) error) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("User")
	}

	user := r.users[idx]
	if err := fn(&user); err != nil {
		return nil, err
	}
	user.ID = id
	if r.emailTaken(user.Email, id) {
		return nil, apperror.NewConflictError("Email already in use")
	}

	r.users[idx] = user
	out := user
	return &out, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	r.users = append(r.users[:idx], r.users[idx+1:]...)
	return true, nil
}

func (r *userRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	q := strings.ToLower(search)

	r.mu.RLock()
	matches := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		if q == "" || strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			matches = append(matches, u)
		}
	}
	r.mu.RUnlock()

	total := int64(len(matches))
	if params == nil {
		return matches, total, nil
	}
	return pagination.Paginate(matches, params).Items, total, nil
}
