package model

import "time"

// Role distinguishes the audiences of the service.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleWasher   Role = "washer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleWasher || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	// Active is false for accounts an admin has deactivated.
	Active bool
}

// Identity is the authenticated caller carried through requests.
type Identity struct {
	UserID int64
	Role   Role
}
