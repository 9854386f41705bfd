package models

import "time"

// Vote model - one row per user per question or answer
type Vote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;uniqueIndex:idx_vote_question;uniqueIndex:idx_vote_answer" json:"user_id"`
	QuestionID *int      `gorm:"uniqueIndex:idx_vote_question" json:"question_id,omitempty"` // set for question votes
	AnswerID   *int      `gorm:"uniqueIndex:idx_vote_answer" json:"answer_id,omitempty"`     // set for answer votes
	IsLike     bool      `gorm:"not null" json:"is_like"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VoteRequest follows the 1 / -1 convention for like / dislike.
type VoteRequest struct {
	VoteType int `json:"vote_type" binding:"required,oneof=-1 1"`
}

func (r VoteRequest) Like() bool {
	return r.VoteType == 1
}
