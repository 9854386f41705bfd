package domain

import (
	"slices"
	"time"
)

type QuestionID int

type Question struct {
	VoteLedger

	ID          QuestionID
	Author      UserID
	Title       string
	Description string
	CreatedAt   time.Time

	answers []AnswerID
	topics  []TopicID
}

// QuestionDraft is the input to Network.PostQuestion.
type QuestionDraft struct {
	Author      UserID
	Title       string
	Description string
	Topics      []TopicID
	CreatedAt   time.Time
}

func (q *Question) Answers() []AnswerID {
	return slices.Clone(q.answers)
}

func (q *Question) Topics() []TopicID {
	return slices.Clone(q.topics)
}

func (q *Question) HasTopic(id TopicID) bool {
	return slices.Contains(q.topics, id)
}

// PostedOn reports whether the question was created on the calendar day of
// day, evaluated in day's location.
func (q *Question) PostedOn(day time.Time) bool {
	y1, m1, d1 := q.CreatedAt.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// bestAnswer returns the answer with the highest margin. On equal margins the
// earlier answer wins.
func bestAnswer(answers []*Answer) (*Answer, bool) {
	var best *Answer
	for _, a := range answers {
		if best == nil || a.Margin() > best.Margin() {
			best = a
		}
	}
	return best, best != nil
}
