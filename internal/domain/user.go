package domain

import "time"

// Role application role of a user
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// User application profile linked to an identity provider account
type User struct {
	ID          string
	FirebaseUID string
	Email       string
	Phone       *string
	FirstName   string
	LastName    string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Actor the authenticated user performing an operation
type Actor struct {
	UserID string
	Role   Role
}

// Is reports whether the actor has one of the given roles
func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// UserUpdate partial update of a user profile, nil fields are left as is
type UserUpdate struct {
	Email     *string
	Phone     *string
	FirstName *string
	LastName  *string
	Role      *Role
}
