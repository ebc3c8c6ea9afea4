package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Name     string   `gorm:"uniqueIndex;size:80;not null"`
	Password string   `gorm:"size:255;not null"` // bcrypt hash, never plaintext
	Role     UserRole `gorm:"type:varchar(20);not null;default:client"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
