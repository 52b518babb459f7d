package configs

import (
	"log"

	"github.com/IonPetrascu/pizza-backend/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account from env, once.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     "ADMIN",
	}
	return db.Create(&admin).Error
}

// SeedCatalog fills the read-only catalog with a starter menu.
func SeedCatalog() error {
	db := DB()

	pizzas := entity.Category{Name: "Pizzas"}
	snacks := entity.Category{Name: "Snacks"}
	drinks := entity.Category{Name: "Drinks"}
	for _, c := range []*entity.Category{&pizzas, &snacks, &drinks} {
		if err := db.FirstOrCreate(c, entity.Category{Name: c.Name}).Error; err != nil {
			return err
		}
	}

	products := []entity.Product{
		{Name: "Pepperoni", Price: 550, CategoryID: pizzas.ID},
		{Name: "Margherita", Price: 450, CategoryID: pizzas.ID},
		{Name: "Four Cheese", Price: 600, CategoryID: pizzas.ID},
		{Name: "Garlic Bread", Price: 200, CategoryID: snacks.ID},
		{Name: "Cola 0.5l", Price: 120, CategoryID: drinks.ID},
	}
	for i := range products {
		if err := db.FirstOrCreate(&products[i], entity.Product{Name: products[i].Name}).Error; err != nil {
			return err
		}
	}

	ingredients := []entity.Ingredient{
		{Name: "Mozzarella", Price: 100},
		{Name: "Cheese Border", Price: 150},
		{Name: "Bacon", Price: 120},
		{Name: "Mushrooms", Price: 80},
		{Name: "Jalapeno", Price: 60},
	}
	for i := range ingredients {
		if err := db.FirstOrCreate(&ingredients[i], entity.Ingredient{Name: ingredients[i].Name}).Error; err != nil {
			return err
		}
	}
	return nil
}
