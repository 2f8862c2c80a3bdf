package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	Role     string `gorm:"size:32;default:user" json:"role"`

	ProfilePicture string `gorm:"column:profile_picture;size:512" json:"profile_picture"`
}
