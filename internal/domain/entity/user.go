package entity

import "github.com/sangkips/lubepos-api/internal/domain/enum"

// User represents a back-office user
type User struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  enum.UserRole `json:"role"`
}
