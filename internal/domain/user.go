package domain

import "time"

// UserRole controls what a dashboard operator may change.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleViewer UserRole = "viewer"
)

// User is a dashboard operator authenticated with basic auth.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
}

// CanWrite reports whether the user may create or modify records.
func (u *User) CanWrite() bool {
	return u != nil && u.Active && u.Role == UserRoleAdmin
}
