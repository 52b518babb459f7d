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

type ProductController struct{ Catalog *repository.CatalogRepository }

func NewProductController(cat *repository.CatalogRepository) *ProductController {
	return &ProductController{Catalog: cat}
}

// GET /products
func (h *ProductController) List(c *gin.Context) {
	products, err := h.Catalog.Products()
	if err != nil {
		log.Println("[PRODUCTS] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (h *ProductController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ID"})
		return
	}

	product, err := h.Catalog.ProductByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		log.Println("[PRODUCTS] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, product)
}
