package repository

import (
	"errors"

	"github.com/IonPetrascu/pizza-backend/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// withRelations loads items newest-first with their product and
// ingredient rows, the shape every cart response uses.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id DESC")
		}).
		Preload("Items.Product").
		Preload("Items.Ingredients")
}

// find looks the cart up by token first, then by user id. With neither
// query there is nothing to find.
func find(db *gorm.DB, dst *entity.Cart, token string, userID *uint) error {
	switch {
	case token != "":
		return db.Where("token = ?", token).First(dst).Error
	case userID != nil:
		return db.Where("user_id = ?", *userID).First(dst).Error
	default:
		return gorm.ErrRecordNotFound
	}
}

// FindByIdentity returns the caller's cart fully loaded. A cart that
// does not exist yet comes back as an empty value so the storefront can
// still render it.
func (r *CartRepository) FindByIdentity(token string, userID *uint) (*entity.Cart, error) {
	var c entity.Cart
	err := find(withRelations(r.DB), &c, token, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{Token: token, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOrCreate resolves the cart for the identity, creating one when
// none exists. The supplied guest token is reused; otherwise a fresh
// one is generated. Concurrent calls for the same identity converge on
// a single row: the unique indexes on token and user_id reject the
// loser, which then re-reads the winner.
func (r *CartRepository) FindOrCreate(token string, userID *uint) (*entity.Cart, error) {
	var c entity.Cart
	err := find(r.DB, &c, token, userID)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := token
	if t == "" {
		t = uuid.NewString()
	}
	c = entity.Cart{Token: t, UserID: userID}
	if createErr := r.DB.Create(&c).Error; createErr != nil {
		var again entity.Cart
		if err := find(r.DB, &again, token, userID); err == nil {
			return &again, nil
		}
		return nil, createErr
	}
	return &c, nil
}

func (r *CartRepository) GetByID(tx *gorm.DB, cartID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := withRelations(tx).First(&c, cartID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertItem merges the add into an existing line when the cart already
// holds the same product with exactly the same ingredient set; otherwise
// it inserts a new line.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, productID uint, ingredients []entity.Ingredient, qty int) error {
	want := make(map[uint]bool, len(ingredients))
	for _, ing := range ingredients {
		want[ing.ID] = true
	}

	var rows []entity.CartItem
	if err := tx.Preload("Ingredients").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Find(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		if matchesIngredientSet(rows[i].Ingredients, want) {
			return tx.Model(&rows[i]).Update("quantity", rows[i].Quantity+qty).Error
		}
	}

	row := entity.CartItem{
		CartID:      cartID,
		ProductID:   productID,
		Quantity:    qty,
		Ingredients: ingredients,
	}
	return tx.Create(&row).Error
}

// matchesIngredientSet is strict set equality: same cardinality, same
// members. A one-directional subset check would silently merge lines
// whose selections differ.
func matchesIngredientSet(have []entity.Ingredient, want map[uint]bool) bool {
	if len(have) != len(want) {
		return false
	}
	for _, ing := range have {
		if !want[ing.ID] {
			return false
		}
	}
	return true
}

func (r *CartRepository) UpdateItemQuantity(tx *gorm.DB, itemID uint, qty int) error {
	res := tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, itemID uint) error {
	var it entity.CartItem
	if err := tx.First(&it, itemID).Error; err != nil {
		return err
	}
	// hard delete: a soft-deleted row would keep shadowing the
	// (product, ingredient set) slot; Select clears the join rows too
	return tx.Unscoped().Select("Ingredients").Delete(&it).Error
}

// FindItemWithCart loads an item together with its owning cart for
// ownership checks.
func (r *CartRepository) FindItemWithCart(itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := r.DB.Preload("Cart").Preload("Ingredients").First(&it, itemID).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) ItemsWithIngredients(tx *gorm.DB, cartID uint) ([]entity.CartItem, error) {
	var rows []entity.CartItem
	err := tx.Preload("Ingredients").Where("cart_id = ?", cartID).Find(&rows).Error
	return rows, err
}

func (r *CartRepository) CountItems(tx *gorm.DB, cartID uint) (int64, error) {
	var n int64
	err := tx.Model(&entity.CartItem{}).Where("cart_id = ?", cartID).Count(&n).Error
	return n, err
}

func (r *CartRepository) SaveTotal(tx *gorm.DB, cartID uint, total int64) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).Update("total_amount", total).Error
}

func (r *CartRepository) AttachToUser(cartID, userID uint) error {
	return r.DB.Model(&entity.Cart{}).Where("id = ?", cartID).Update("user_id", userID).Error
}

// DeleteCart removes the cart row for good; a soft delete would keep
// the unique token occupied.
func (r *CartRepository) DeleteCart(tx *gorm.DB, cartID uint) error {
	return tx.Unscoped().Delete(&entity.Cart{}, cartID).Error
}

// AllCarts is the administrative dump, relations included.
func (r *CartRepository) AllCarts() ([]entity.Cart, error) {
	var carts []entity.Cart
	err := withRelations(r.DB).Find(&carts).Error
	return carts, err
}
