package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`
	Role         string `gorm:"default:user" json:"role"` // user, admin
	Avatar       string `json:"avatar"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}
