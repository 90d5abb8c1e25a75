package models

import (
	"time"
)

// User represents an account known to the directory. The identity itself is
// established by the (out-of-scope) authentication layer; this engine only
// consumes the opaque id.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"admin":  true,
	"member": true,
}

// RoleAdmin is the platform-administrator role
const RoleAdmin = "admin"
