package domain

import "slices"

type UserID int

// User holds back-references for traversal only. Followed users and topics
// are owned by the Network, not by the user.
type User struct {
	ID       UserID
	Username string
	// Password is the stored credential, a bcrypt hash once it reaches the
	// platform layer.
	Password string

	questions []QuestionID
	answers   []AnswerID
	interests []TopicID
	following []UserID
	votes     []*Vote
}

func (u *User) Questions() []QuestionID {
	return slices.Clone(u.questions)
}

func (u *User) Answers() []AnswerID {
	return slices.Clone(u.answers)
}

func (u *User) Interests() []TopicID {
	return slices.Clone(u.interests)
}

func (u *User) Following() []UserID {
	return slices.Clone(u.following)
}

func (u *User) IsFollowing(id UserID) bool {
	return slices.Contains(u.following, id)
}

// Votes is the user's own voting history. The votes belong to the question
// or answer they were cast on.
func (u *User) Votes() []*Vote {
	return slices.Clone(u.votes)
}
