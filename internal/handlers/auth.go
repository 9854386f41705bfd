package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/middleware"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
)

type AuthHandler struct {
	platform *platform.Platform
	settings AuthSettings
}

func NewAuthHandler(p *platform.Platform, settings AuthSettings) *AuthHandler {
	return &AuthHandler{platform: p, settings: settings}
}

func (h *AuthHandler) issue(c *gin.Context, status int, u *domain.User, message string) {
	tokenString, err := middleware.GenerateToken(h.settings.Secret, int(u.ID), u.Username, h.settings.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, models.AuthResponse{
		Token:   tokenString,
		User:    models.UserSummary{ID: int(u.ID), Username: u.Username},
		Message: message,
	})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.platform.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issue(c, http.StatusCreated, user, "User registered successfully")
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.platform.Login(input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issue(c, http.StatusOK, user, "Login successful")
}

// GetMe returns the authenticated user's profile
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.platform.User(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
