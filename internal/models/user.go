// Package models contains data structures for the application's domain models.
package models

import "time"

// Member roles. Admins manage events and membership.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a club member account.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null;index" json:"name"`
	Avatar    string    `gorm:"type:text" json:"avatar"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
