package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
)

type UserHandler struct {
	platform *platform.Platform
}

func NewUserHandler(p *platform.Platform) *UserHandler {
	return &UserHandler{platform: p}
}

// GetUserProfile returns a user's profile with score and relations
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.platform.User(domain.UserID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// FollowUser follows a user
func (h *UserHandler) FollowUser(c *gin.Context) {
	followingID, ok := paramID(c, "id")
	if !ok {
		return
	}
	followerID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.platform.Follow(c.Request.Context(), followerID, domain.UserID(followingID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

// UnfollowUser unfollows a user
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	followingID, ok := paramID(c, "id")
	if !ok {
		return
	}
	followerID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.platform.Unfollow(c.Request.Context(), followerID, domain.UserID(followingID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

// AddInterest subscribes the current user to a topic
func (h *UserHandler) AddInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.InterestRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic_id is required"})
		return
	}

	if err := h.platform.AddInterest(c.Request.Context(), userID, domain.TopicID(input.TopicID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic added to interests"})
}
