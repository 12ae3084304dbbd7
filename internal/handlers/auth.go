package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mehulj/noteshare/internal/service"
)

// AuthHandler serves signup and login.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var in signupRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, service.ErrMissingDetails)
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "User created successfully", gin.H{"user": user})
}

// Login verifies credentials and hands out a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, service.ErrMissingDetails)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, "Success, here is your token", gin.H{
		"token": token,
		"user":  user,
	})
}
