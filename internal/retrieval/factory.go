package retrieval

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownKind         = errors.New("unknown retriever kind")
	ErrInvalidMaxQuestions = errors.New("max questions must be zero or greater")
)

type Kind string

const (
	KindSocial       Kind = "social"
	KindTopics       Kind = "topics"
	KindNews         Kind = "news"
	KindPopularToday Kind = "popular_today"
)

func Kinds() []Kind {
	return []Kind{KindSocial, KindTopics, KindNews, KindPopularToday}
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindSocial:
		return KindSocial, nil
	case KindTopics:
		return KindTopics, nil
	case KindNews:
		return KindNews, nil
	case KindPopularToday:
		return KindPopularToday, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownKind)
	}
}

type options struct {
	now clock
}

type Option func(*options)

// WithClock sets the clock that decides what "today" means for the news and
// popular-today retrievers.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds the retriever for kind. A zero maxQuestions is allowed and
// always yields an empty feed.
func New(kind Kind, maxQuestions int, opts ...Option) (*Retriever, error) {
	if maxQuestions < 0 {
		return nil, fmt.Errorf("%d: %w", maxQuestions, ErrInvalidMaxQuestions)
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var s Strategy
	switch kind {
	case KindSocial:
		s = social{}
	case KindTopics:
		s = topics{}
	case KindNews:
		s = news{now: o.now}
	case KindPopularToday:
		s = popularToday{now: o.now}
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return &Retriever{kind: kind, strategy: s, maxQuestions: maxQuestions}, nil
}
