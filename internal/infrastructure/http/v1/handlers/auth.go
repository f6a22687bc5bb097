package handlers

import (
	"github.com/gin-gonic/gin"

	"abarrote/internal/domain/auth"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates an account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	respondCreated(c, user)
}

// Login verifies credentials and issues a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in auth.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		failBinding(c, err)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	respondOK(c, gin.H{"user": user, "token": token})
}
