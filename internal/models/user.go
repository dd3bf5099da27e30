package models

import "time"

// UserRole represents the fixed account roles. A role is assigned at
// registration and never changes.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleProfessor UserRole = "professor"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether the given value is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// User represents a portal account stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	AcademicID   string    `db:"academic_id" json:"academic_id"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
