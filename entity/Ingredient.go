package entity

import (
	"gorm.io/gorm"
)

type Ingredient struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
}
