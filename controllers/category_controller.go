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

type CategoryController struct{ Catalog *repository.CatalogRepository }

func NewCategoryController(cat *repository.CatalogRepository) *CategoryController {
	return &CategoryController{Catalog: cat}
}

// GET /categories — products included, the storefront renders by group
func (h *CategoryController) List(c *gin.Context) {
	categories, err := h.Catalog.Categories()
	if err != nil {
		log.Println("[CATEGORIES] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /categories/:id
func (h *CategoryController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	category, err := h.Catalog.CategoryByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
			return
		}
		log.Println("[CATEGORIES] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, category)
}
