package entity

import (
	"gorm.io/gorm"
)

// CartItem is one line of a cart: a product with a set of extra
// ingredients. Two lines in the same cart never share the same
// (product, ingredient set) pair; adds merge into the quantity instead.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"product"`

	Quantity int `json:"quantity"`

	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:cart_item_ingredients;"`
}
