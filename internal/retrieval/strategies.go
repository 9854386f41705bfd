package retrieval

import "github.com/emilythestrangee/cuoora/backend/internal/domain"

// social returns every question written by the users the requester follows.
type social struct{}

func (social) Candidates(g Graph, _ []*domain.Question, user domain.UserID) []*domain.Question {
	var out []*domain.Question
	for _, followed := range g.Following(user) {
		out = append(out, g.QuestionsBy(followed)...)
	}
	return out
}

// topics returns the questions filed under the requester's topics of
// interest, minus the requester's own. A question under two followed topics
// appears twice.
type topics struct{}

func (topics) Candidates(g Graph, _ []*domain.Question, user domain.UserID) []*domain.Question {
	var out []*domain.Question
	for _, topic := range g.Interests(user) {
		for _, q := range g.QuestionsIn(topic) {
			if q.Author != user {
				out = append(out, q)
			}
		}
	}
	return out
}

type news struct {
	now clock
}

func (s news) Candidates(_ Graph, all []*domain.Question, _ domain.UserID) []*domain.Question {
	return postedToday(all, s.now())
}

// popularToday keeps today's questions whose like count is strictly above
// today's average.
type popularToday struct {
	now clock
}

func (s popularToday) Candidates(_ Graph, all []*domain.Question, _ domain.UserID) []*domain.Question {
	today := postedToday(all, s.now())
	// No questions today means no average to compare against.
	if len(today) == 0 {
		return nil
	}

	total := 0
	for _, q := range today {
		total += len(q.PositiveVotes())
	}
	mean := float64(total) / float64(len(today))

	var out []*domain.Question
	for _, q := range today {
		if float64(len(q.PositiveVotes())) > mean {
			out = append(out, q)
		}
	}
	return out
}
