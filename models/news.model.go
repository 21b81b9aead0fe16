package models

import (
	"gorm.io/gorm"
)

// News model
type News struct {
	gorm.Model
	AuthorID        uint   `gorm:"not null;index" json:"authorId"`
	NewsImage       string `gorm:"type:varchar(255)" json:"newsImage"`
	NewsName        string `gorm:"type:varchar(255);not null" json:"newsName"`
	NewsDescription string `gorm:"type:text;not null" json:"newsDescription"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (News) TableName() string {
	return "news"
}
