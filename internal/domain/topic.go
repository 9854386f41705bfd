package domain

import "slices"

type TopicID int

type Topic struct {
	ID          TopicID
	Name        string
	Description string

	questions []QuestionID
}

// Questions lists the questions tagged with the topic, in attach order.
func (t *Topic) Questions() []QuestionID {
	return slices.Clone(t.questions)
}
