package feed

import (
	"log/slog"
	"time"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/retrieval"
)

// Service holds the global question collection and builds feeds from it.
type Service struct {
	graph     retrieval.Graph
	questions []*domain.Question
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(graph retrieval.Graph, opts ...Option) *Service {
	s := &Service{graph: graph, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddQuestion appends q to the collection. Duplicates are kept.
func (s *Service) AddQuestion(q *domain.Question) {
	s.questions = append(s.questions, q)
}

func (s *Service) Questions() []*domain.Question {
	out := make([]*domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// QuestionsForUser builds the kind retriever bounded by maxQuestions and
// runs it over the collection for user.
func (s *Service) QuestionsForUser(user domain.UserID, kind retrieval.Kind, maxQuestions int) ([]*domain.Question, error) {
	r, err := retrieval.New(kind, maxQuestions, retrieval.WithClock(s.now))
	if err != nil {
		return nil, err
	}
	out := r.RetrieveSorted(s.graph, s.questions, user)

	resolveLogger(s.logger).Debug("feed served",
		"event", "feed_served",
		"module", "feed",
		"layer", "service",
		"user_id", int(user),
		"kind", string(kind),
		"max_questions", maxQuestions,
		"returned", len(out),
	)
	return out, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
