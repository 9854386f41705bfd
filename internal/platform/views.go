package platform

import (
	"time"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
)

type UserRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type TopicView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Questions   int    `json:"questions"`
}

type AnswerView struct {
	ID          int       `json:"id"`
	QuestionID  int       `json:"question_id"`
	Author      UserRef   `json:"author"`
	Description string    `json:"description"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuestionView struct {
	ID           int          `json:"id"`
	Author       UserRef      `json:"author"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Topics       []TopicView  `json:"topics"`
	Upvotes      int          `json:"upvotes"`
	Downvotes    int          `json:"downvotes"`
	AnswerCount  int          `json:"answer_count"`
	CreatedAt    time.Time    `json:"created_at"`
	Answers      []AnswerView `json:"answers,omitempty"`
	BestAnswerID *int         `json:"best_answer_id,omitempty"`
}

type UserView struct {
	UserRef
	Score     domain.ScoreBreakdown `json:"score"`
	Following []UserRef             `json:"following"`
	Interests []TopicView           `json:"interests"`
	Questions []int                 `json:"question_ids"`
	Answers   []int                 `json:"answer_ids"`
}

func (p *Platform) userRef(id domain.UserID) UserRef {
	u, err := p.network.User(id)
	if err != nil {
		return UserRef{ID: int(id)}
	}
	return UserRef{ID: int(u.ID), Username: u.Username}
}

func topicView(t *domain.Topic) TopicView {
	return TopicView{
		ID:          int(t.ID),
		Name:        t.Name,
		Description: t.Description,
		Questions:   len(t.Questions()),
	}
}

func (p *Platform) topicViews(ids []domain.TopicID) []TopicView {
	out := make([]TopicView, 0, len(ids))
	for _, id := range ids {
		if t, err := p.network.Topic(id); err == nil {
			out = append(out, topicView(t))
		}
	}
	return out
}

// summarize builds a question view without answers. Callers hold the lock.
func (p *Platform) summarize(q *domain.Question) QuestionView {
	return QuestionView{
		ID:          int(q.ID),
		Author:      p.userRef(q.Author),
		Title:       q.Title,
		Description: q.Description,
		Topics:      p.topicViews(q.Topics()),
		Upvotes:     len(q.PositiveVotes()),
		Downvotes:   len(q.NegativeVotes()),
		AnswerCount: len(q.Answers()),
		CreatedAt:   q.CreatedAt,
	}
}

func (p *Platform) answerView(a *domain.Answer) AnswerView {
	return AnswerView{
		ID:          int(a.ID),
		QuestionID:  int(a.Question),
		Author:      p.userRef(a.Author),
		Description: a.Description,
		Upvotes:     len(a.PositiveVotes()),
		Downvotes:   len(a.NegativeVotes()),
		CreatedAt:   a.CreatedAt,
	}
}

// Question returns the question with its answers and best answer.
func (p *Platform) Question(id domain.QuestionID) (QuestionView, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	q, err := p.network.Question(id)
	if err != nil {
		return QuestionView{}, err
	}
	view := p.summarize(q)

	answers, err := p.network.AnswersOf(id)
	if err != nil {
		return QuestionView{}, err
	}
	view.Answers = make([]AnswerView, 0, len(answers))
	for _, a := range answers {
		view.Answers = append(view.Answers, p.answerView(a))
	}
	best, ok, err := p.network.BestAnswer(id)
	if err != nil {
		return QuestionView{}, err
	}
	if ok {
		bestID := int(best.ID)
		view.BestAnswerID = &bestID
	}
	return view, nil
}

func (p *Platform) User(id domain.UserID) (UserView, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, err := p.network.User(id)
	if err != nil {
		return UserView{}, err
	}
	score, err := p.network.ScoreBreakdown(id)
	if err != nil {
		return UserView{}, err
	}

	view := UserView{
		UserRef:   UserRef{ID: int(u.ID), Username: u.Username},
		Score:     score,
		Following: make([]UserRef, 0),
		Interests: p.topicViews(u.Interests()),
		Questions: make([]int, 0),
		Answers:   make([]int, 0),
	}
	for _, f := range u.Following() {
		view.Following = append(view.Following, p.userRef(f))
	}
	for _, q := range u.Questions() {
		view.Questions = append(view.Questions, int(q))
	}
	for _, a := range u.Answers() {
		view.Answers = append(view.Answers, int(a))
	}
	return view, nil
}

func (p *Platform) Topics() []TopicView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	topics := p.network.Topics()
	out := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicView(t))
	}
	return out
}

// TopicQuestions lists the questions tagged with a topic, in attach order.
func (p *Platform) TopicQuestions(id domain.TopicID) ([]QuestionView, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, err := p.network.Topic(id); err != nil {
		return nil, err
	}
	questions := p.network.QuestionsIn(id)
	out := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		out = append(out, p.summarize(q))
	}
	return out, nil
}
