package models

import "time"

type Question struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	AuthorID    int       `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuestionTopic tags a question with a topic. ID keeps attach order.
type QuestionTopic struct {
	ID         int      `gorm:"primaryKey" json:"id"`
	QuestionID int      `gorm:"not null;uniqueIndex:idx_question_topic" json:"question_id"`
	TopicID    int      `gorm:"not null;uniqueIndex:idx_question_topic" json:"topic_id"`
	Question   Question `gorm:"foreignKey:QuestionID" json:"-"`
	Topic      Topic    `gorm:"foreignKey:TopicID" json:"-"`
}

type CreateQuestionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TopicIDs    []int  `json:"topic_ids"`
}

type AttachTopicRequest struct {
	TopicID int `json:"topic_id" binding:"required,gt=0"`
}
