package domain

import "time"

// UserRole controls what a user may do across the system. Who may approve is
// a policy outside this core; the role only feeds authorization middleware.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User is a person who works cases. The complaint aggregate references users
// by display name only (responsibles, removed member, history actor).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
