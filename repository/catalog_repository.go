package repository

import (
	"github.com/IonPetrascu/pizza-backend/entity"
	"gorm.io/gorm"
)

// CatalogRepository reads products, categories and ingredients. The
// catalog is read-only from the shop's perspective; rows come from
// seeding or an external admin tool.
type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) Products() ([]entity.Product, error) {
	var products []entity.Product
	err := r.DB.Find(&products).Error
	return products, err
}

func (r *CatalogRepository) ProductByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) Categories() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.DB.Preload("Products").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) CategoryByID(id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) Ingredients() ([]entity.Ingredient, error) {
	var ingredients []entity.Ingredient
	err := r.DB.Find(&ingredients).Error
	return ingredients, err
}

func (r *CatalogRepository) IngredientByID(id uint) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := r.DB.First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *CatalogRepository) IngredientsByIDs(ids []uint) ([]entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []entity.Ingredient
	err := r.DB.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}
