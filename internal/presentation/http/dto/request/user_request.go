package request

// CreateUserRequest represents a back-office user creation request
type CreateUserRequest struct {
	Name  string `json:"name" binding:"max=255"`
	Email string `json:"email" binding:"max=255"`
	Role  string `json:"role"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,max=255"`
	Role  *string `json:"role"`
}

// UserFilterRequest represents user list query parameters
type UserFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
