package services

import (
	"errors"

	"github.com/IonPetrascu/pizza-backend/entity"
	"github.com/IonPetrascu/pizza-backend/repository"
	"gorm.io/gorm"
)

// Identity is the caller's resolved identity for a cart operation:
// an authenticated user id, a guest cart token, or neither. It is
// passed explicitly into every operation; there is no ambient request
// state.
type Identity struct {
	UserID    *uint
	CartToken string
}

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	Catalog  *repository.CatalogRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, cat *repository.CatalogRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, Catalog: cat}
}

type AddItemIn struct {
	ProductID   uint   `json:"productId" binding:"required"`
	Ingredients []uint `json:"ingredients"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1"`
}

// Get returns the cart for the identity, or an empty placeholder when
// none exists yet.
func (s *CartService) Get(id Identity) (*entity.Cart, error) {
	return s.CartRepo.FindByIdentity(id.CartToken, id.UserID)
}

// StartGuestCart creates a fresh guest cart with a new token.
func (s *CartService) StartGuestCart() (*entity.Cart, error) {
	return s.CartRepo.FindOrCreate("", nil)
}

// AddItem puts a product with its ingredient selection into the
// caller's cart, creating the cart on first use. Identical selections
// merge into one line. Returns the refreshed cart with its new total.
func (s *CartService) AddItem(id Identity, in *AddItemIn) (*entity.Cart, error) {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	product, err := s.Catalog.ProductByID(in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	ids := dedupe(in.Ingredients)
	ingredients, err := s.Catalog.IngredientsByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, ErrIngredientNotFound
	}

	cart, err := s.CartRepo.FindOrCreate(id.CartToken, id.UserID)
	if err != nil {
		return nil, err
	}

	var out *entity.Cart
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.UpsertItem(tx, cart.ID, product.ID, ingredients, qty); err != nil {
			return err
		}
		out, err = s.recomputeTotal(tx, cart.ID)
		return err
	})
	return out, err
}

// UpdateItemQuantity sets a line's quantity to the exact value after
// the ownership check.
func (s *CartService) UpdateItemQuantity(id Identity, itemID uint, qty int) (*entity.Cart, error) {
	item, err := s.authorizeItem(id, itemID)
	if err != nil {
		return nil, err
	}

	var out *entity.Cart
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.UpdateItemQuantity(tx, itemID, qty); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		out, err = s.recomputeTotal(tx, item.CartID)
		return err
	})
	return out, err
}

// RemoveItem deletes a line after the ownership check.
func (s *CartService) RemoveItem(id Identity, itemID uint) (*entity.Cart, error) {
	item, err := s.authorizeItem(id, itemID)
	if err != nil {
		return nil, err
	}

	var out *entity.Cart
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.RemoveItem(tx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		out, err = s.recomputeTotal(tx, item.CartID)
		return err
	})
	return out, err
}

// RecomputeTotal reloads the cart and persists a freshly derived total.
func (s *CartService) RecomputeTotal(cartID uint) (*entity.Cart, error) {
	var out *entity.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.recomputeTotal(tx, cartID)
		return err
	})
	return out, err
}

// MergeCarts folds the guest cart into the user cart: lines matching by
// product and exact ingredient set sum their quantities, the rest move
// over as new lines. The guest cart is consumed and deleted once empty.
// Everything, including the total recompute, is one transaction, so a
// failure mid-merge leaves no partial state.
func (s *CartService) MergeCarts(guestCartID, userCartID uint) (*entity.Cart, error) {
	var merged *entity.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		guestItems, err := s.CartRepo.ItemsWithIngredients(tx, guestCartID)
		if err != nil {
			return err
		}

		for _, gi := range guestItems {
			if err := s.CartRepo.UpsertItem(tx, userCartID, gi.ProductID, gi.Ingredients, gi.Quantity); err != nil {
				return err
			}
			if err := s.CartRepo.RemoveItem(tx, gi.ID); err != nil {
				return err
			}
		}

		remaining, err := s.CartRepo.CountItems(tx, guestCartID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := s.CartRepo.DeleteCart(tx, guestCartID); err != nil {
				return err
			}
		}

		merged, err = s.recomputeTotal(tx, userCartID)
		return err
	})
	return merged, err
}

// MergeOnLogin reconciles a guest session with the user's cart at login
// and returns the token the client should keep using.
func (s *CartService) MergeOnLogin(cartToken string, userID uint) (string, error) {
	if cartToken == "" {
		userCart, err := s.CartRepo.FindOrCreate("", &userID)
		if err != nil {
			return "", err
		}
		return userCart.Token, nil
	}

	guestCart, err := s.CartRepo.FindOrCreate(cartToken, nil)
	if err != nil {
		return "", err
	}
	userCart, err := s.CartRepo.FindOrCreate("", &userID)
	if err != nil {
		return "", err
	}
	if guestCart.ID != userCart.ID {
		if _, err := s.MergeCarts(guestCart.ID, userCart.ID); err != nil {
			return "", err
		}
	}
	return userCart.Token, nil
}

// AdoptOnRegister hands the guest cart to a freshly registered user. A
// new account has no cart of its own yet, so the guest cart simply
// becomes the user cart.
func (s *CartService) AdoptOnRegister(cartToken string, userID uint) (string, error) {
	if cartToken == "" {
		cart, err := s.CartRepo.FindOrCreate("", &userID)
		if err != nil {
			return "", err
		}
		return cart.Token, nil
	}

	cart, err := s.CartRepo.FindOrCreate(cartToken, nil)
	if err != nil {
		return "", err
	}
	if cart.UserID == nil {
		if err := s.CartRepo.AttachToUser(cart.ID, userID); err != nil {
			return "", err
		}
	}
	return cart.Token, nil
}

func (s *CartService) AllCarts() ([]entity.Cart, error) {
	return s.CartRepo.AllCarts()
}

// authorizeItem loads the item with its owning cart and checks the
// caller may mutate it. A resolved user id takes precedence over the
// cart token; with neither the caller is anonymous and rejected.
func (s *CartService) authorizeItem(id Identity, itemID uint) (*entity.CartItem, error) {
	item, err := s.CartRepo.FindItemWithCart(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	switch {
	case id.UserID != nil:
		if item.Cart.UserID == nil || *item.Cart.UserID != *id.UserID {
			return nil, ErrNotCartOwner
		}
	case id.CartToken != "":
		if item.Cart.Token != id.CartToken {
			return nil, ErrNotCartOwner
		}
	default:
		return nil, ErrIdentityRequired
	}
	return item, nil
}

func (s *CartService) recomputeTotal(tx *gorm.DB, cartID uint) (*entity.Cart, error) {
	cart, err := s.CartRepo.GetByID(tx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	cart.TotalAmount = ComputeTotal(cart.Items)
	if err := s.CartRepo.SaveTotal(tx, cart.ID, cart.TotalAmount); err != nil {
		return nil, err
	}
	return cart, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
