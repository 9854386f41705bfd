package models

import "time"

type Topic struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Interest is a user's subscription to a topic. ID keeps subscription order.
type Interest struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_user_topic" json:"user_id"`
	TopicID   int       `gorm:"not null;uniqueIndex:idx_user_topic" json:"topic_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Topic     Topic     `gorm:"foreignKey:TopicID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTopicRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type InterestRequest struct {
	TopicID int `json:"topic_id" binding:"required,gt=0"`
}
