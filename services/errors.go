package services

import "errors"

// Sentinel errors controllers translate to HTTP statuses.
var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrNotCartOwner       = errors.New("cart does not belong to caller")
	ErrIdentityRequired   = errors.New("identity required")
	ErrProductNotFound    = errors.New("product not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
