package entity

import (
	"gorm.io/gorm"
)

// Cart belongs to a user or, for guests, only to its token.
// Token is assigned once at creation and never changes.
type Cart struct {
	gorm.Model
	Token       string `json:"token" gorm:"uniqueIndex;not null"`
	UserID      *uint  `json:"userId" gorm:"uniqueIndex"`
	User        *User  `json:"-"`
	TotalAmount int64  `json:"totalAmount"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
