package models

import (
	"time"
)

// Role defines the staff role tier. The set is fixed: three tiers, totally
// ordered by privilege (SUPER_ADMIN > ADMIN > FACULTY).
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleFaculty    Role = "FACULTY"
)

// Valid reports whether the role is one of the known tiers
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleFaculty:
		return true
	}
	return false
}

// User defines a staff account based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the account
	Name      string    `json:"name" db:"name" example:"Super Admin"`                    // Display name
	Email     string    `json:"email" db:"email" example:"admin@college.edu"`            // Unique login email
	Password  string    `json:"-" db:"password"`                                         // Hashed password (excluded from JSON)
	Role      Role      `json:"role" db:"role" example:"FACULTY"`                        // Staff role tier
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
}
