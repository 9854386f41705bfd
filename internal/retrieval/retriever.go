// Package retrieval selects and ranks the questions that make up a user's
// feed. A Strategy picks candidates; Retriever applies the shared ordering
// and size limit.
package retrieval

import (
	"sort"
	"time"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
)

// Graph is the read side of the social network a strategy needs.
type Graph interface {
	Following(user domain.UserID) []domain.UserID
	Interests(user domain.UserID) []domain.TopicID
	QuestionsBy(user domain.UserID) []*domain.Question
	QuestionsIn(topic domain.TopicID) []*domain.Question
}

type Strategy interface {
	Candidates(g Graph, all []*domain.Question, user domain.UserID) []*domain.Question
}

type Retriever struct {
	kind         Kind
	strategy     Strategy
	maxQuestions int
}

func (r *Retriever) Kind() Kind {
	return r.kind
}

func (r *Retriever) MaxQuestions() int {
	return r.maxQuestions
}

// RetrieveSorted orders the strategy's candidates by ascending like count
// and keeps the first MaxQuestions of them. Equal counts keep candidate
// order. The all slice is not modified.
//
// Ascending order means the least liked candidates survive truncation. This
// is the established ranking contract; changing it to "most liked first"
// needs a product decision.
func (r *Retriever) RetrieveSorted(g Graph, all []*domain.Question, user domain.UserID) []*domain.Question {
	candidates := r.strategy.Candidates(g, all, user)
	out := make([]*domain.Question, len(candidates))
	copy(out, candidates)

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].PositiveVotes()) < len(out[j].PositiveVotes())
	})
	if len(out) > r.maxQuestions {
		out = out[:r.maxQuestions]
	}
	return out
}

type clock func() time.Time

func postedToday(all []*domain.Question, now time.Time) []*domain.Question {
	var out []*domain.Question
	for _, q := range all {
		if q.PostedOn(now) {
			out = append(out, q)
		}
	}
	return out
}
