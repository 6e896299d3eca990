package models

import "time"

type Role string

const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
	RoleChef    Role = "chef"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role coming from a request.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleCourier, RoleChef, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Surname string `gorm:"not null" json:"surname"`
	Phone   string `gorm:"uniqueIndex;not null" json:"phone"`
	Email   string `gorm:"uniqueIndex;not null" json:"email"`
	// SHA-256 hex digest of the password.
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:VARCHAR(20)" json:"role"`
	Blocked  bool   `json:"blocked"`
	// Bumped whenever the profile changes; tokens minted before the
	// bump stop validating, forcing a fresh login.
	TokenVersion int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display name stamped onto orders.
func (u User) FullName() string {
	return u.Name + " " + u.Surname
}
