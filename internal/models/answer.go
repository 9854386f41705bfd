package models

import "time"

type Answer struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	QuestionID  int       `gorm:"not null;index" json:"question_id"`
	Question    Question  `gorm:"foreignKey:QuestionID" json:"-"`
	AuthorID    int       `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateAnswerRequest struct {
	Description string `json:"description" binding:"required"`
}
