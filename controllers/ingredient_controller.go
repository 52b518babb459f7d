package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/IonPetrascu/pizza-backend/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IngredientController struct{ Catalog *repository.CatalogRepository }

func NewIngredientController(cat *repository.CatalogRepository) *IngredientController {
	return &IngredientController{Catalog: cat}
}

// GET /ingredients
func (h *IngredientController) List(c *gin.Context) {
	ingredients, err := h.Catalog.Ingredients()
	if err != nil {
		log.Println("[INGREDIENTS] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GET /ingredients/:id
func (h *IngredientController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	ingredient, err := h.Catalog.IngredientByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "ingredient not found"})
			return
		}
		log.Println("[INGREDIENTS] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
