package domain

import "time"

type AnswerID int

type Answer struct {
	VoteLedger

	ID          AnswerID
	Question    QuestionID
	Author      UserID
	Description string
	CreatedAt   time.Time
}

type AnswerDraft struct {
	Question    QuestionID
	Author      UserID
	Description string
	CreatedAt   time.Time
}
