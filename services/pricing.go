package services

import "github.com/IonPetrascu/pizza-backend/entity"

// ComputeTotal folds a cart's lines into its total amount. A line's
// unit price is the product price plus the price of every selected
// ingredient; a line with no ingredients costs the product price alone.
func ComputeTotal(items []entity.CartItem) int64 {
	var total int64
	for _, it := range items {
		unit := it.Product.Price
		for _, ing := range it.Ingredients {
			unit += ing.Price
		}
		total += unit * int64(it.Quantity)
	}
	return total
}
