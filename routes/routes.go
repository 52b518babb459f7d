package routes

import (
	"github.com/IonPetrascu/pizza-backend/configs"
	"github.com/IonPetrascu/pizza-backend/controllers"
	"github.com/IonPetrascu/pizza-backend/middlewares"
	"github.com/IonPetrascu/pizza-backend/repository"
	"github.com/IonPetrascu/pizza-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	cartSvc := services.NewCartService(db, cartRepo, catalogRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cartSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	productCtrl := controllers.NewProductController(catalogRepo)
	categoryCtrl := controllers.NewCategoryController(catalogRepo)
	ingredientCtrl := controllers.NewIngredientController(catalogRepo)

	api := r.Group("/api/v1")
	api.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "API - 👋🌎🌍🌏"})
	})

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg), authCtrl.Me)
	}

	// Catalog (read-only)
	api.GET("/products", productCtrl.List)
	api.GET("/products/:id", productCtrl.Detail)
	api.GET("/categories", categoryCtrl.List)
	api.GET("/categories/:id", categoryCtrl.Detail)
	api.GET("/ingredients", ingredientCtrl.List)
	api.GET("/ingredients/:id", ingredientCtrl.Detail)

	// Cart: guests carry X-Cart-Token, users a bearer token; an invalid
	// bearer is rejected instead of falling back to guest mode
	cart := api.Group("/cart", middlewares.OptionalAuth(cfg))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("", cartCtrl.Add)
		cart.PATCH("/:id", cartCtrl.UpdateQuantity)
		cart.DELETE("/:id", cartCtrl.RemoveItem)
	}

	// Admin
	api.GET("/cart/all", middlewares.AuthMiddleware(cfg, "ADMIN"), cartCtrl.All)
}
