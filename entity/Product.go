package entity

import (
	"gorm.io/gorm"
)

// Price is stored in minor currency units.
type Product struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	ImageURL string `json:"imageUrl"`
	Price    int64  `json:"price"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`
}
