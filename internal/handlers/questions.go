package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
	"github.com/emilythestrangee/cuoora/backend/internal/platform"
)

type QuestionHandler struct {
	platform *platform.Platform
}

func NewQuestionHandler(p *platform.Platform) *QuestionHandler {
	return &QuestionHandler{platform: p}
}

// GetQuestion returns a question with its answers and best answer
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.platform.Question(domain.QuestionID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateQuestion posts a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	topics := make([]domain.TopicID, 0, len(input.TopicIDs))
	for _, t := range input.TopicIDs {
		topics = append(topics, domain.TopicID(t))
	}

	q, err := h.platform.PostQuestion(c.Request.Context(), domain.QuestionDraft{
		Author:      userID,
		Title:       input.Title,
		Description: input.Description,
		Topics:      topics,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.platform.Question(q.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// CreateAnswer answers a question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}

	a, err := h.platform.PostAnswer(c.Request.Context(), domain.AnswerDraft{
		Question:    domain.QuestionID(questionID),
		Author:      userID,
		Description: input.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          a.ID,
		"question_id": a.Question,
		"author_id":   a.Author,
		"description": a.Description,
		"created_at":  a.CreatedAt,
	})
}

// AttachTopic tags a question with a topic (PROTECTED)
func (h *QuestionHandler) AttachTopic(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := currentUser(c); !ok {
		return
	}

	var input models.AttachTopicRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic_id is required"})
		return
	}

	err := h.platform.AttachTopic(c.Request.Context(), domain.QuestionID(questionID), domain.TopicID(input.TopicID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic attached"})
}

// VoteQuestion casts a first vote on a question (PROTECTED)
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	h.vote(c, "id", false, false)
}

// ChangeQuestionVote flips an existing vote on a question (PROTECTED)
func (h *QuestionHandler) ChangeQuestionVote(c *gin.Context) {
	h.vote(c, "id", false, true)
}

// VoteAnswer casts a first vote on an answer (PROTECTED)
func (h *QuestionHandler) VoteAnswer(c *gin.Context) {
	h.vote(c, "answerId", true, false)
}

// ChangeAnswerVote flips an existing vote on an answer (PROTECTED)
func (h *QuestionHandler) ChangeAnswerVote(c *gin.Context) {
	h.vote(c, "answerId", true, true)
}

func (h *QuestionHandler) vote(c *gin.Context, param string, answer, change bool) {
	id, ok := paramID(c, param)
	if !ok {
		return
	}
	voterID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be -1 or 1"})
		return
	}

	target := domain.VoteTarget{Question: domain.QuestionID(id)}
	if answer {
		target = domain.VoteTarget{Answer: domain.AnswerID(id)}
	}

	var err error
	if change {
		_, err = h.platform.ChangeVote(c.Request.Context(), target, voterID, input.Like())
	} else {
		_, err = h.platform.Vote(c.Request.Context(), target, voterID, input.Like())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if change {
		c.JSON(http.StatusOK, gin.H{"message": "Vote updated"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded"})
}
