package platform

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/retrieval"
)

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type recordingStore struct {
	calls []string
	fail  error
}

func (s *recordingStore) record(format string, args ...any) error {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
	return s.fail
}

func (s *recordingStore) SaveUser(_ context.Context, u *domain.User) error {
	return s.record("user %d", u.ID)
}

func (s *recordingStore) SaveTopic(_ context.Context, t *domain.Topic) error {
	return s.record("topic %d", t.ID)
}

func (s *recordingStore) SaveQuestion(_ context.Context, q *domain.Question) error {
	return s.record("question %d %v", q.ID, q.Topics())
}

func (s *recordingStore) SaveAnswer(_ context.Context, a *domain.Answer) error {
	return s.record("answer %d on %d", a.ID, a.Question)
}

func (s *recordingStore) AttachTopic(_ context.Context, q domain.QuestionID, t domain.TopicID) error {
	return s.record("attach %d %d", q, t)
}

func (s *recordingStore) SaveFollow(_ context.Context, follower, followee domain.UserID) error {
	return s.record("follow %d %d", follower, followee)
}

func (s *recordingStore) DeleteFollow(_ context.Context, follower, followee domain.UserID) error {
	return s.record("unfollow %d %d", follower, followee)
}

func (s *recordingStore) SaveInterest(_ context.Context, u domain.UserID, t domain.TopicID) error {
	return s.record("interest %d %d", u, t)
}

func (s *recordingStore) SaveVote(_ context.Context, target domain.VoteTarget, v *domain.Vote) error {
	return s.record("vote %+v %d %t", target, v.Voter, v.IsLike())
}

func (s *recordingStore) UpdateVote(_ context.Context, target domain.VoteTarget, voter domain.UserID, like bool) error {
	return s.record("revote %+v %d %t", target, voter, like)
}

func newPlatform(t *testing.T, store Store) *Platform {
	t.Helper()
	return New(domain.NewNetwork(domain.WithClock(clock)), Options{
		Store:      store,
		Limits:     FeedLimits{Default: 10, Max: 3},
		Now:        clock,
		BcryptCost: bcrypt.MinCost,
	})
}

func register(t *testing.T, p *Platform, name string) *domain.User {
	t.Helper()
	u, err := p.Register(context.Background(), name, "password")
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPasswordAndLoginChecksIt(t *testing.T) {
	p := newPlatform(t, nil)
	u := register(t, p, "ann")

	assert.NotEqual(t, "password", u.Password)

	got, err := p.Login("ann", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = p.Login("ann", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.Login("nobody", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Register(context.Background(), "ann", "other")
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestMutationsAreWrittenThrough(t *testing.T) {
	store := &recordingStore{}
	p := newPlatform(t, store)
	ctx := context.Background()

	ann := register(t, p, "ann")
	bob := register(t, p, "bob")
	topic, err := p.CreateTopic(ctx, "go", "")
	require.NoError(t, err)
	q, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "q", Topics: []domain.TopicID{topic.ID}})
	require.NoError(t, err)
	other, err := p.CreateTopic(ctx, "db", "")
	require.NoError(t, err)
	require.NoError(t, p.AttachTopic(ctx, q.ID, other.ID))
	a, err := p.PostAnswer(ctx, domain.AnswerDraft{Question: q.ID, Author: bob.ID, Description: "a"})
	require.NoError(t, err)
	require.NoError(t, p.Follow(ctx, bob.ID, ann.ID))
	require.NoError(t, p.Unfollow(ctx, bob.ID, ann.ID))
	require.NoError(t, p.AddInterest(ctx, bob.ID, topic.ID))
	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, true)
	require.NoError(t, err)
	_, err = p.ChangeVote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, false)
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Answer: a.ID}, ann.ID, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user 1",
		"user 2",
		"topic 1",
		"question 1 [1]",
		"topic 2",
		"attach 1 2",
		"answer 1 on 1",
		"follow 2 1",
		"unfollow 2 1",
		"interest 2 1",
		"vote {Question:1 Answer:0} 2 true",
		"revote {Question:1 Answer:0} 2 false",
		"vote {Question:0 Answer:1} 1 true",
	}, store.calls)
}

func TestRejectedMutationsAreNotPersisted(t *testing.T) {
	store := &recordingStore{}
	p := newPlatform(t, store)
	ctx := context.Background()
	ann := register(t, p, "ann")
	bob := register(t, p, "bob")
	q, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "q"})
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, true)
	require.NoError(t, err)
	before := len(store.calls)

	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, true)
	require.ErrorIs(t, err, domain.ErrDuplicateVote)
	require.ErrorIs(t, p.Follow(ctx, ann.ID, ann.ID), domain.ErrSelfFollow)

	assert.Len(t, store.calls, before)
}

func TestPersistFailureIsReturned(t *testing.T) {
	store := &recordingStore{}
	p := newPlatform(t, store)
	ann := register(t, p, "ann")

	store.fail = errors.New("connection refused")
	_, err := p.PostQuestion(context.Background(), domain.QuestionDraft{Author: ann.ID, Title: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save question")
}

func TestFailedWriteLeavesNetworkUnchanged(t *testing.T) {
	store := &recordingStore{}
	p := newPlatform(t, store)
	ctx := context.Background()
	ann := register(t, p, "ann")
	bob := register(t, p, "bob")
	q, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "stored"})
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, true)
	require.NoError(t, err)

	store.fail = errors.New("connection refused")

	_, err = p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "lost"})
	require.Error(t, err)
	_, err = p.PostAnswer(ctx, domain.AnswerDraft{Question: 2, Author: bob.ID, Description: "on the lost question"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	got, err := p.Feed(ann.ID, retrieval.KindNews, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stored", got[0].Title)

	_, err = p.Register(ctx, "carol", "password")
	require.Error(t, err)
	_, err = p.Login("carol", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Error(t, p.Follow(ctx, bob.ID, ann.ID))
	_, err = p.ChangeVote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, false)
	require.Error(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, ann.ID, true)
	require.Error(t, err)

	view, err := p.User(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Following)
	qv, err := p.Question(q.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qv.Upvotes)
	assert.Equal(t, 0, qv.Downvotes)

	store.fail = nil
	next, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "retried"})
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionID(2), next.ID)
	carol, err := p.Register(ctx, "carol", "password")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(3), carol.ID)

	assert.Equal(t, []string{"question 2 []", "user 3"}, store.calls[len(store.calls)-2:])
}

func TestFeedCapsSizeAndRequiresKnownUser(t *testing.T) {
	p := newPlatform(t, nil)
	ctx := context.Background()
	ann := register(t, p, "ann")
	for i := 0; i < 5; i++ {
		_, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
	}

	got, err := p.Feed(ann.ID, retrieval.KindNews, 50)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = p.Feed(ann.ID, retrieval.KindNews, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Feed(99, retrieval.KindNews, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewSeedsFeedFromExistingQuestions(t *testing.T) {
	n := domain.NewNetwork(domain.WithClock(clock))
	u, err := n.AddUser("ann", "hash")
	require.NoError(t, err)
	_, err = n.PostQuestion(domain.QuestionDraft{Author: u.ID, Title: "restored"})
	require.NoError(t, err)

	p := New(n, Options{Now: clock, Limits: FeedLimits{Default: 5, Max: 5}})
	got, err := p.Feed(u.ID, retrieval.KindNews, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "restored", got[0].Title)
}

func TestQuestionViewIncludesAnswersAndBest(t *testing.T) {
	p := newPlatform(t, nil)
	ctx := context.Background()
	ann := register(t, p, "ann")
	bob := register(t, p, "bob")
	carol := register(t, p, "carol")
	topic, err := p.CreateTopic(ctx, "go", "the language")
	require.NoError(t, err)
	q, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "q", Topics: []domain.TopicID{topic.ID}})
	require.NoError(t, err)

	view, err := p.Question(q.ID)
	require.NoError(t, err)
	assert.Nil(t, view.BestAnswerID)
	assert.Empty(t, view.Answers)

	first, err := p.PostAnswer(ctx, domain.AnswerDraft{Question: q.ID, Author: bob.ID, Description: "first"})
	require.NoError(t, err)
	second, err := p.PostAnswer(ctx, domain.AnswerDraft{Question: q.ID, Author: carol.ID, Description: "second"})
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Answer: second.ID}, ann.ID, true)
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Answer: first.ID}, ann.ID, false)
	require.NoError(t, err)

	view, err = p.Question(q.ID)
	require.NoError(t, err)
	require.Len(t, view.Answers, 2)
	require.NotNil(t, view.BestAnswerID)
	assert.Equal(t, int(second.ID), *view.BestAnswerID)
	assert.Equal(t, "ann", view.Author.Username)
	assert.Equal(t, []TopicView{{ID: 1, Name: "go", Description: "the language", Questions: 1}}, view.Topics)

	_, err = p.Question(42)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserViewReportsScoreAndRelations(t *testing.T) {
	p := newPlatform(t, nil)
	ctx := context.Background()
	ann := register(t, p, "ann")
	bob := register(t, p, "bob")
	topic, err := p.CreateTopic(ctx, "go", "")
	require.NoError(t, err)
	q, err := p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "q"})
	require.NoError(t, err)
	_, err = p.Vote(ctx, domain.VoteTarget{Question: q.ID}, bob.ID, true)
	require.NoError(t, err)
	require.NoError(t, p.Follow(ctx, ann.ID, bob.ID))
	require.NoError(t, p.AddInterest(ctx, ann.ID, topic.ID))

	view, err := p.User(ann.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, view.Score.Total)
	assert.Equal(t, []UserRef{{ID: int(bob.ID), Username: "bob"}}, view.Following)
	assert.Equal(t, []int{int(q.ID)}, view.Questions)
	require.Len(t, view.Interests, 1)
	assert.Equal(t, "go", view.Interests[0].Name)

	score, err := p.Score(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, score.Total)
}

func TestTopicQuestions(t *testing.T) {
	p := newPlatform(t, nil)
	ctx := context.Background()
	ann := register(t, p, "ann")
	topic, err := p.CreateTopic(ctx, "go", "")
	require.NoError(t, err)
	_, err = p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "untagged"})
	require.NoError(t, err)
	_, err = p.PostQuestion(ctx, domain.QuestionDraft{Author: ann.ID, Title: "tagged", Topics: []domain.TopicID{topic.ID}})
	require.NoError(t, err)

	got, err := p.TopicQuestions(topic.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tagged", got[0].Title)
	assert.Len(t, p.Topics(), 1)

	_, err = p.TopicQuestions(7)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
