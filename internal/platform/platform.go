// Package platform is the entry point the HTTP layer uses. It serializes
// access to the in-memory network and writes every mutation through to a
// Store.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/feed"
	"github.com/emilythestrangee/cuoora/backend/internal/retrieval"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Store persists mutations. Ids are the ones assigned by the network.
type Store interface {
	SaveUser(ctx context.Context, u *domain.User) error
	SaveTopic(ctx context.Context, t *domain.Topic) error
	SaveQuestion(ctx context.Context, q *domain.Question) error
	SaveAnswer(ctx context.Context, a *domain.Answer) error
	AttachTopic(ctx context.Context, q domain.QuestionID, t domain.TopicID) error
	SaveFollow(ctx context.Context, follower, followee domain.UserID) error
	DeleteFollow(ctx context.Context, follower, followee domain.UserID) error
	SaveInterest(ctx context.Context, u domain.UserID, t domain.TopicID) error
	SaveVote(ctx context.Context, target domain.VoteTarget, v *domain.Vote) error
	UpdateVote(ctx context.Context, target domain.VoteTarget, voter domain.UserID, like bool) error
}

// FeedLimits bounds feed sizes. Max caps every request; a zero Max leaves
// the size uncapped, which config never produces.
type FeedLimits struct {
	Default int
	Max     int
}

type Options struct {
	Store  Store
	Limits FeedLimits
	Now    func() time.Time
	Logger *slog.Logger
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Platform struct {
	mu      sync.RWMutex
	network *domain.Network
	feed    *feed.Service

	store  Store
	limits FeedLimits
	cost   int
	logger *slog.Logger
}

// New wraps network. Questions already in the network seed the feed
// collection in id order.
func New(network *domain.Network, opts Options) *Platform {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	fs := feed.New(network, feed.WithClock(opts.Now), feed.WithLogger(logger))
	for _, q := range network.Questions() {
		fs.AddQuestion(q)
	}
	return &Platform{
		network: network,
		feed:    fs,
		store:   opts.Store,
		limits:  opts.Limits,
		cost:    cost,
		logger:  logger,
	}
}

func (p *Platform) Limits() FeedLimits {
	return p.limits
}

// persist runs fn against the store when one is configured. Callers hold the
// write lock and commit to the network only after persist succeeds, so a
// failed write leaves no trace in memory and no gap in the ids.
func (p *Platform) persist(op string, fn func(Store) error) error {
	if p.store == nil {
		return nil
	}
	if err := fn(p.store); err != nil {
		p.logger.Error("persist failed",
			"event", "persist_failed",
			"module", "platform",
			"layer", "application",
			"op", op,
			"error", err,
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// commitAfter persists and then applies a prepared change.
func (p *Platform) commitAfter(op string, commit domain.Commit, err error, fn func(Store) error) error {
	if err != nil {
		return err
	}
	if err := p.persist(op, fn); err != nil {
		return err
	}
	commit()
	return nil
}

func (p *Platform) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if _, taken := p.lookupName(username); taken {
		return nil, fmt.Errorf("%q: %w", username, domain.ErrUsernameTaken)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	u, commit, err := p.network.PrepareUser(username, string(hash))
	err = p.commitAfter("save user", commit, err, func(s Store) error { return s.SaveUser(ctx, u) })
	if err != nil {
		return nil, err
	}
	p.logger.Info("user registered", "event", "user_registered", "module", "platform", "user_id", int(u.ID))
	return u, nil
}

func (p *Platform) lookupName(username string) (*domain.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.network.UserByName(username)
}

// Login checks username and password and returns the matching user.
func (p *Platform) Login(username, password string) (*domain.User, error) {
	u, ok := p.lookupName(strings.TrimSpace(username))
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (p *Platform) CreateTopic(ctx context.Context, name, description string) (*domain.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, commit, err := p.network.PrepareTopic(name, description)
	err = p.commitAfter("save topic", commit, err, func(s Store) error { return s.SaveTopic(ctx, t) })
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PostQuestion creates the question and adds it to the feed collection.
func (p *Platform) PostQuestion(ctx context.Context, d domain.QuestionDraft) (*domain.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	q, commit, err := p.network.PrepareQuestion(d)
	err = p.commitAfter("save question", commit, err, func(s Store) error { return s.SaveQuestion(ctx, q) })
	if err != nil {
		return nil, err
	}
	p.feed.AddQuestion(q)
	return q, nil
}

func (p *Platform) PostAnswer(ctx context.Context, d domain.AnswerDraft) (*domain.Answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, commit, err := p.network.PrepareAnswer(d)
	err = p.commitAfter("save answer", commit, err, func(s Store) error { return s.SaveAnswer(ctx, a) })
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (p *Platform) AttachTopic(ctx context.Context, q domain.QuestionID, t domain.TopicID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	commit, err := p.network.PrepareAttachTopic(q, t)
	return p.commitAfter("attach topic", commit, err, func(s Store) error { return s.AttachTopic(ctx, q, t) })
}

func (p *Platform) Follow(ctx context.Context, follower, followee domain.UserID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	commit, err := p.network.PrepareFollow(follower, followee)
	return p.commitAfter("save follow", commit, err, func(s Store) error { return s.SaveFollow(ctx, follower, followee) })
}

func (p *Platform) Unfollow(ctx context.Context, follower, followee domain.UserID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	commit, err := p.network.PrepareUnfollow(follower, followee)
	return p.commitAfter("delete follow", commit, err, func(s Store) error { return s.DeleteFollow(ctx, follower, followee) })
}

func (p *Platform) AddInterest(ctx context.Context, u domain.UserID, t domain.TopicID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	commit, err := p.network.PrepareInterest(u, t)
	return p.commitAfter("save interest", commit, err, func(s Store) error { return s.SaveInterest(ctx, u, t) })
}

// Vote casts a new vote. A second vote by the same user on the same target
// fails with domain.ErrDuplicateVote; use ChangeVote to flip it.
func (p *Platform) Vote(ctx context.Context, target domain.VoteTarget, voter domain.UserID, like bool) (*domain.Vote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, commit, err := p.network.PrepareVote(target, domain.VoteDraft{Voter: voter, Like: like})
	err = p.commitAfter("save vote", commit, err, func(s Store) error { return s.SaveVote(ctx, target, v) })
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Platform) ChangeVote(ctx context.Context, target domain.VoteTarget, voter domain.UserID, like bool) (*domain.Vote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, commit, err := p.network.PrepareChangeVote(target, voter, like)
	err = p.commitAfter("update vote", commit, err, func(s Store) error { return s.UpdateVote(ctx, target, voter, like) })
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Feed returns the user's feed of the given kind. maxQuestions above the
// configured maximum is capped.
func (p *Platform) Feed(user domain.UserID, kind retrieval.Kind, maxQuestions int) ([]QuestionView, error) {
	if p.limits.Max > 0 && maxQuestions > p.limits.Max {
		maxQuestions = p.limits.Max
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, err := p.network.User(user); err != nil {
		return nil, err
	}
	questions, err := p.feed.QuestionsForUser(user, kind, maxQuestions)
	if err != nil {
		return nil, err
	}
	out := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		out = append(out, p.summarize(q))
	}
	return out, nil
}

func (p *Platform) Score(u domain.UserID) (domain.ScoreBreakdown, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.network.ScoreBreakdown(u)
}
