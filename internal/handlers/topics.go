package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
)

type TopicHandler struct {
	platform *platform.Platform
}

func NewTopicHandler(p *platform.Platform) *TopicHandler {
	return &TopicHandler{platform: p}
}

func (h *TopicHandler) GetTopics(c *gin.Context) {
	c.JSON(http.StatusOK, h.platform.Topics())
}

func (h *TopicHandler) GetTopicQuestions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	questions, err := h.platform.TopicQuestions(domain.TopicID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateTopic adds a topic (PROTECTED)
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var input models.CreateTopicRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	t, err := h.platform.CreateTopic(c.Request.Context(), input.Name, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          t.ID,
		"name":        t.Name,
		"description": t.Description,
	})
}
