package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username    string     `gorm:"unique;not null" json:"username"`
	PhoneNumber string     `gorm:"type:varchar(50);not null" json:"phoneNumber"`
	Role        string     `gorm:"default:'ADMIN'" json:"role"`
	Password    string     `gorm:"not null" json:"-"`
	LastLogin   *time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
