package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/IonPetrascu/pizza-backend/pkg/resp"
	"github.com/IonPetrascu/pizza-backend/services"
	"github.com/IonPetrascu/pizza-backend/utils"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	CartToken string `json:"cartToken"`
}

type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	CartToken string `json:"cartToken"`
}

type AuthController struct {
	Svc     *services.AuthService
	CartSvc *services.CartService
}

func NewAuthController(s *services.AuthService, cs *services.CartService) *AuthController {
	return &AuthController{Svc: s, CartSvc: cs}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Svc.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			resp.Conflict(c, err.Error())
			return
		}
		log.Println("[AUTH_REGISTER] server error:", err)
		resp.ServerError(c)
		return
	}

	// a guest cart brought to registration becomes the user's cart
	cartToken, err := a.CartSvc.AdoptOnRegister(req.CartToken, user.ID)
	if err != nil {
		log.Println("[AUTH_REGISTER] cart adoption failed:", err)
		resp.ServerError(c)
		return
	}

	token, err := a.Svc.IssueToken(user)
	if err != nil {
		log.Println("[AUTH_REGISTER] token issue failed:", err)
		resp.ServerError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
		"token": token, "cartToken": cartToken,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.Svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			resp.Unauthorized(c, err.Error())
			return
		}
		log.Println("[AUTH_LOGIN] server error:", err)
		resp.ServerError(c)
		return
	}

	// fold the guest session into the user cart before replying
	cartToken, err := a.CartSvc.MergeOnLogin(req.CartToken, user.ID)
	if err != nil {
		log.Println("[AUTH_LOGIN] cart merge failed:", err)
		resp.ServerError(c)
		return
	}

	token, err := a.Svc.IssueToken(user)
	if err != nil {
		log.Println("[AUTH_LOGIN] token issue failed:", err)
		resp.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
		"token": token, "cartToken": cartToken,
	})
}

// GET /auth/me (requires bearer)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.BadRequest(c, "user not found")
		return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
	})
}
