package configs

import (
	"github.com/IonPetrascu/pizza-backend/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	database, err := gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Product{}, &entity.Ingredient{},
		&entity.Cart{}, &entity.CartItem{},
	)
}
