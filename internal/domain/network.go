package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Network is the arena holding every user, question, answer and topic.
// Entities are addressed by id and stored at index id-1; relationships are
// kept as id lists. A Network is not safe for concurrent use.
type Network struct {
	users     []*User
	questions []*Question
	answers   []*Answer
	topics    []*Topic

	now func() time.Time
}

type Option func(*Network)

// WithClock sets the clock used to stamp new entities and votes.
func WithClock(now func() time.Time) Option {
	return func(n *Network) {
		if now != nil {
			n.now = now
		}
	}
}

func NewNetwork(opts ...Option) *Network {
	n := &Network{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Network) stamp(at time.Time) time.Time {
	if at.IsZero() {
		return n.now()
	}
	return at
}

// Commit applies a change built by one of the Prepare methods. Nothing is
// visible in the network until it runs. The network must not be mutated
// between a Prepare call and its Commit.
type Commit func()

func (n *Network) AddUser(username, password string) (*User, error) {
	u, commit, err := n.PrepareUser(username, password)
	if err != nil {
		return nil, err
	}
	commit()
	return u, nil
}

// PrepareUser validates a new user and reserves the next user id.
func (n *Network) PrepareUser(username, password string) (*User, Commit, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil, fmt.Errorf("username: %w", ErrInvalidInput)
	}
	if _, ok := n.UserByName(username); ok {
		return nil, nil, fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	u := &User{
		ID:       UserID(len(n.users) + 1),
		Username: username,
		Password: password,
	}
	return u, func() { n.users = append(n.users, u) }, nil
}

func (n *Network) AddTopic(name, description string) (*Topic, error) {
	t, commit, err := n.PrepareTopic(name, description)
	if err != nil {
		return nil, err
	}
	commit()
	return t, nil
}

func (n *Network) PrepareTopic(name, description string) (*Topic, Commit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, fmt.Errorf("topic name: %w", ErrInvalidInput)
	}
	t := &Topic{
		ID:          TopicID(len(n.topics) + 1),
		Name:        name,
		Description: description,
	}
	return t, func() { n.topics = append(n.topics, t) }, nil
}

// PostQuestion creates a question, registers it with its author and attaches
// the draft's topics in order. A repeated topic in the draft fails with
// ErrDuplicateTopic before anything is created.
func (n *Network) PostQuestion(d QuestionDraft) (*Question, error) {
	q, commit, err := n.PrepareQuestion(d)
	if err != nil {
		return nil, err
	}
	commit()
	return q, nil
}

// PrepareQuestion builds the question with its topics already set. Commit
// links it to its author and topics.
func (n *Network) PrepareQuestion(d QuestionDraft) (*Question, Commit, error) {
	author, err := n.User(d.Author)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(d.Title) == "" {
		return nil, nil, fmt.Errorf("question title: %w", ErrInvalidInput)
	}
	for i, tid := range d.Topics {
		if _, err := n.Topic(tid); err != nil {
			return nil, nil, err
		}
		if slices.Contains(d.Topics[:i], tid) {
			return nil, nil, fmt.Errorf("topic %d: %w", tid, ErrDuplicateTopic)
		}
	}

	q := &Question{
		ID:          QuestionID(len(n.questions) + 1),
		Author:      author.ID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   n.stamp(d.CreatedAt),
		topics:      slices.Clone(d.Topics),
	}
	if q.topics == nil {
		q.topics = []TopicID{}
	}
	return q, func() {
		n.questions = append(n.questions, q)
		author.questions = append(author.questions, q.ID)
		for _, tid := range q.topics {
			n.topics[tid-1].questions = append(n.topics[tid-1].questions, q.ID)
		}
	}, nil
}

func (n *Network) PostAnswer(d AnswerDraft) (*Answer, error) {
	a, commit, err := n.PrepareAnswer(d)
	if err != nil {
		return nil, err
	}
	commit()
	return a, nil
}

func (n *Network) PrepareAnswer(d AnswerDraft) (*Answer, Commit, error) {
	q, err := n.Question(d.Question)
	if err != nil {
		return nil, nil, err
	}
	author, err := n.User(d.Author)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(d.Description) == "" {
		return nil, nil, fmt.Errorf("answer description: %w", ErrInvalidInput)
	}
	a := &Answer{
		ID:          AnswerID(len(n.answers) + 1),
		Question:    q.ID,
		Author:      author.ID,
		Description: d.Description,
		CreatedAt:   n.stamp(d.CreatedAt),
	}
	return a, func() {
		n.answers = append(n.answers, a)
		q.answers = append(q.answers, a.ID)
		author.answers = append(author.answers, a.ID)
	}, nil
}

// AttachTopic tags a question with a topic. Attaching the same topic twice
// fails with ErrDuplicateTopic and leaves both lists unchanged.
func (n *Network) AttachTopic(qid QuestionID, tid TopicID) error {
	return apply(n.PrepareAttachTopic(qid, tid))
}

func (n *Network) PrepareAttachTopic(qid QuestionID, tid TopicID) (Commit, error) {
	q, err := n.Question(qid)
	if err != nil {
		return nil, err
	}
	t, err := n.Topic(tid)
	if err != nil {
		return nil, err
	}
	if q.HasTopic(tid) {
		return nil, fmt.Errorf("topic %q on question %d: %w", t.Name, qid, ErrDuplicateTopic)
	}
	return func() {
		q.topics = append(q.topics, tid)
		t.questions = append(t.questions, qid)
	}, nil
}

func (n *Network) Follow(follower, followee UserID) error {
	return apply(n.PrepareFollow(follower, followee))
}

func (n *Network) PrepareFollow(follower, followee UserID) (Commit, error) {
	u, err := n.User(follower)
	if err != nil {
		return nil, err
	}
	if _, err := n.User(followee); err != nil {
		return nil, err
	}
	if follower == followee {
		return nil, ErrSelfFollow
	}
	if u.IsFollowing(followee) {
		return nil, fmt.Errorf("user %d: %w", followee, ErrAlreadyFollowing)
	}
	return func() { u.following = append(u.following, followee) }, nil
}

func (n *Network) Unfollow(follower, followee UserID) error {
	return apply(n.PrepareUnfollow(follower, followee))
}

func (n *Network) PrepareUnfollow(follower, followee UserID) (Commit, error) {
	u, err := n.User(follower)
	if err != nil {
		return nil, err
	}
	if !u.IsFollowing(followee) {
		return nil, fmt.Errorf("user %d: %w", followee, ErrNotFollowing)
	}
	return func() {
		i := slices.Index(u.following, followee)
		u.following = slices.Delete(u.following, i, i+1)
	}, nil
}

func (n *Network) AddInterest(uid UserID, tid TopicID) error {
	return apply(n.PrepareInterest(uid, tid))
}

func (n *Network) PrepareInterest(uid UserID, tid TopicID) (Commit, error) {
	u, err := n.User(uid)
	if err != nil {
		return nil, err
	}
	if _, err := n.Topic(tid); err != nil {
		return nil, err
	}
	if slices.Contains(u.interests, tid) {
		return nil, fmt.Errorf("topic %d: %w", tid, ErrDuplicateInterest)
	}
	return func() { u.interests = append(u.interests, tid) }, nil
}

func (n *Network) VoteQuestion(qid QuestionID, d VoteDraft) (*Vote, error) {
	return n.Vote(VoteTarget{Question: qid}, d)
}

func (n *Network) VoteAnswer(aid AnswerID, d VoteDraft) (*Vote, error) {
	return n.Vote(VoteTarget{Answer: aid}, d)
}

// ChangeQuestionVote flips the polarity of an existing vote in place.
func (n *Network) ChangeQuestionVote(qid QuestionID, voter UserID, like bool) (*Vote, error) {
	return n.ChangeVote(VoteTarget{Question: qid}, voter, like)
}

func (n *Network) ChangeAnswerVote(aid AnswerID, voter UserID, like bool) (*Vote, error) {
	return n.ChangeVote(VoteTarget{Answer: aid}, voter, like)
}

func apply(commit Commit, err error) error {
	if err != nil {
		return err
	}
	commit()
	return nil
}

// BestAnswer returns the question's answer with the highest margin. The
// boolean is false when the question has no answers.
func (n *Network) BestAnswer(qid QuestionID) (*Answer, bool, error) {
	answers, err := n.AnswersOf(qid)
	if err != nil {
		return nil, false, err
	}
	a, ok := bestAnswer(answers)
	return a, ok, nil
}

func (n *Network) User(id UserID) (*User, error) {
	if id < 1 || int(id) > len(n.users) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return n.users[id-1], nil
}

func (n *Network) UserByName(username string) (*User, bool) {
	for _, u := range n.users {
		if u.Username == username {
			return u, true
		}
	}
	return nil, false
}

func (n *Network) Question(id QuestionID) (*Question, error) {
	if id < 1 || int(id) > len(n.questions) {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return n.questions[id-1], nil
}

func (n *Network) Answer(id AnswerID) (*Answer, error) {
	if id < 1 || int(id) > len(n.answers) {
		return nil, fmt.Errorf("answer %d: %w", id, ErrNotFound)
	}
	return n.answers[id-1], nil
}

func (n *Network) Topic(id TopicID) (*Topic, error) {
	if id < 1 || int(id) > len(n.topics) {
		return nil, fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}
	return n.topics[id-1], nil
}

func (n *Network) Users() []*User {
	return slices.Clone(n.users)
}

func (n *Network) Questions() []*Question {
	return slices.Clone(n.questions)
}

func (n *Network) Topics() []*Topic {
	return slices.Clone(n.topics)
}

func (n *Network) AnswersOf(qid QuestionID) ([]*Answer, error) {
	q, err := n.Question(qid)
	if err != nil {
		return nil, err
	}
	out := make([]*Answer, 0, len(q.answers))
	for _, aid := range q.answers {
		out = append(out, n.answers[aid-1])
	}
	return out, nil
}

// Following lists the users followed by id, in follow order. Unknown users
// follow nobody.
func (n *Network) Following(id UserID) []UserID {
	u, err := n.User(id)
	if err != nil {
		return nil
	}
	return u.Following()
}

func (n *Network) Interests(id UserID) []TopicID {
	u, err := n.User(id)
	if err != nil {
		return nil
	}
	return u.Interests()
}

// QuestionsBy lists the questions authored by id, in posting order.
func (n *Network) QuestionsBy(id UserID) []*Question {
	u, err := n.User(id)
	if err != nil {
		return nil
	}
	return n.resolve(u.questions)
}

// QuestionsIn lists the questions tagged with a topic, in attach order.
func (n *Network) QuestionsIn(id TopicID) []*Question {
	t, err := n.Topic(id)
	if err != nil {
		return nil
	}
	return n.resolve(t.questions)
}

func (n *Network) resolve(ids []QuestionID) []*Question {
	out := make([]*Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.questions[id-1])
	}
	return out
}
