package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/sangkips/lubepos-api/pkg/pagination"
	"github.com/sangkips/lubepos-api/pkg/utils"
)

// UserService handles user management operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersInput represents the input for listing users
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsers returns a page of users in insertion order
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*pagination.PaginatedResult[entity.User], error) {
	params := &pagination.PaginationParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name  string
	Email string
	Role  enum.UserRole
}

// CreateUser adds a user with a fresh ID
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	user := &entity.User{
		ID:    utils.NewID(),
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Role:  input.Role,
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the update user input. Nil fields are left unchanged.
type UpdateUserInput struct {
	ID    string
	Name  *string
	Email *string
	Role  *enum.UserRole
}

// UpdateUser merges the provided fields into the user under the repository lock
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	return s.userRepo.Patch(ctx, input.ID, func(user *entity.User) error {
		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			user.Email = strings.TrimSpace(*input.Email)
		}
		if input.Role != nil {
			user.Role = *input.Role
		}
		return validateUser(user)
	})
}

// DeleteUser removes a user. Removing an absent user is not an error.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	_, err := s.userRepo.Delete(ctx, id)
	return err
}

func validateUser(user *entity.User) error {
	var errs []apperror.FieldError
	if user.Name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if !user.Role.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "role", Message: "Role must be one of admin, manager, staff"})
	}

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}
