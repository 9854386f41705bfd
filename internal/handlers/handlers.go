package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/middleware"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
	"github.com/emilythestrangee/cuoora/backend/internal/retrieval"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Topic    *TopicHandler
	User     *UserHandler
	Feed     *FeedHandler
}

type AuthSettings struct {
	Secret   []byte
	TokenTTL time.Duration
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(p *platform.Platform, auth AuthSettings) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(p, auth),
		Question: NewQuestionHandler(p),
		Topic:    NewTopicHandler(p),
		User:     NewUserHandler(p),
		Feed:     NewFeedHandler(p),
	}
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateVote),
		errors.Is(err, domain.ErrDuplicateTopic),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrDuplicateInterest),
		errors.Is(err, domain.ErrUsernameTaken):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, domain.ErrNotFollowing),
		errors.Is(err, retrieval.ErrUnknownKind),
		errors.Is(err, retrieval.ErrInvalidMaxQuestions):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, platform.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	}

	c.JSON(status, gin.H{"error": message})
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (domain.UserID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return domain.UserID(id), true
}
