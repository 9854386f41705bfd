package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/platform"
	"github.com/emilythestrangee/cuoora/backend/internal/retrieval"
)

type FeedHandler struct {
	platform *platform.Platform
}

func NewFeedHandler(p *platform.Platform) *FeedHandler {
	return &FeedHandler{platform: p}
}

// GetFeed returns the current user's feed.
// Query: kind (social, topics, news, popular_today; default social) and max
// (default from config; 0 returns an empty feed).
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	kind, err := retrieval.ParseKind(c.DefaultQuery("kind", string(retrieval.KindSocial)))
	if err != nil {
		respondError(c, err)
		return
	}

	maxQuestions := h.platform.Limits().Default
	if raw, set := c.GetQuery("max"); set {
		maxQuestions, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max must be an integer"})
			return
		}
	}

	questions, err := h.platform.Feed(userID, kind, maxQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":      kind,
		"questions": questions,
	})
}
