package enum

import (
	"encoding/json"
	"fmt"
)

// UserRole is the access level of a back-office user
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleStaff   UserRole = "staff"
)

// UserRoles lists every valid role in display order
var UserRoles = []UserRole{UserRoleAdmin, UserRoleManager, UserRoleStaff}

func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether r is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleStaff:
		return true
	}
	return false
}

// ParseUserRole converts a string into a UserRole
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
