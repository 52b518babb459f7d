package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/IonPetrascu/pizza-backend/services"
	"github.com/IonPetrascu/pizza-backend/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// resolveIdentity combines the bearer identity set by OptionalAuth with
// the userId query parameter and the X-Cart-Token header. A query
// userId that contradicts the token's user is forbidden; a query
// userId without a bearer token is rejected outright. Writes the error
// response itself and returns ok=false on failure.
func resolveIdentity(c *gin.Context) (services.Identity, bool) {
	id := services.Identity{CartToken: c.GetHeader("X-Cart-Token")}

	var queryID uint
	if q := c.Query("userId"); q != "" {
		n, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return id, false
		}
		queryID = uint(n)
	}

	uid := utils.CurrentUserID(c)
	if uid != 0 {
		if queryID != 0 && queryID != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "user ID does not match authenticated user"})
			return id, false
		}
		id.UserID = &uid
		return id, true
	}

	if queryID != 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bearer token is required to access cart by userId"})
		return id, false
	}
	return id, true
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	id, ok := resolveIdentity(c)
	if !ok {
		return
	}

	if id.UserID != nil {
		cart, err := h.Svc.Get(services.Identity{UserID: id.UserID})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
		return
	}

	if id.CartToken != "" {
		cart, err := h.Svc.Get(services.Identity{CartToken: id.CartToken})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
		return
	}

	// no identity at all: open a guest cart and hand out its token
	cart, err := h.Svc.StartGuestCart()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "token": cart.Token})
}

// POST /cart
func (h *CartController) Add(c *gin.Context) {
	id, ok := resolveIdentity(c)
	if !ok {
		return
	}

	var req services.AddItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.Svc.AddItem(id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "token": cart.Token})
}

// PATCH /cart/:id
func (h *CartController) UpdateQuantity(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	id, ok := resolveIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.Svc.UpdateItemQuantity(id, itemID, body.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DELETE /cart/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	id, ok := resolveIdentity(c)
	if !ok {
		return
	}

	cart, err := h.Svc.RemoveItem(id, itemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GET /cart/all (admin)
func (h *CartController) All(c *gin.Context) {
	carts, err := h.Svc.AllCarts()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func itemIDParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item ID"})
		return 0, false
	}
	return uint(n), true
}

func (h *CartController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartItemNotFound), errors.Is(err, services.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotCartOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrIdentityRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrIngredientNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Println("[CART] store error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
