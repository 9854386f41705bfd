package domain

import (
	"fmt"
	"time"
)

// Vote is a single user's like or dislike on a question or answer. The voter
// never changes; the polarity can be flipped with Like and Dislike.
type Vote struct {
	Voter     UserID
	CreatedAt time.Time
	positive  bool
}

func NewVote(voter UserID, like bool, at time.Time) *Vote {
	return &Vote{Voter: voter, CreatedAt: at, positive: like}
}

func (v *Vote) IsLike() bool {
	return v.positive
}

func (v *Vote) Like() {
	v.positive = true
}

func (v *Vote) Dislike() {
	v.positive = false
}

// VoteDraft describes a vote about to be cast. A zero CreatedAt is replaced
// with the network clock.
type VoteDraft struct {
	Voter     UserID
	Like      bool
	CreatedAt time.Time
}

// VoteTarget names the question or answer a vote was cast on. Exactly one of
// the ids is set.
type VoteTarget struct {
	Question QuestionID
	Answer   AnswerID
}

func (t VoteTarget) IsAnswer() bool {
	return t.Answer != 0
}

func (n *Network) ledger(t VoteTarget) (*VoteLedger, error) {
	if t.IsAnswer() {
		a, err := n.Answer(t.Answer)
		if err != nil {
			return nil, err
		}
		return &a.VoteLedger, nil
	}
	q, err := n.Question(t.Question)
	if err != nil {
		return nil, err
	}
	return &q.VoteLedger, nil
}

// Vote casts d on the target. A second vote by the same voter fails with
// ErrDuplicateVote.
func (n *Network) Vote(t VoteTarget, d VoteDraft) (*Vote, error) {
	v, commit, err := n.PrepareVote(t, d)
	if err != nil {
		return nil, err
	}
	commit()
	return v, nil
}

func (n *Network) PrepareVote(t VoteTarget, d VoteDraft) (*Vote, Commit, error) {
	l, err := n.ledger(t)
	if err != nil {
		return nil, nil, err
	}
	voter, err := n.User(d.Voter)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := l.VoteBy(voter.ID); ok {
		return nil, nil, fmt.Errorf("user %d: %w", voter.ID, ErrDuplicateVote)
	}
	v := NewVote(voter.ID, d.Like, n.stamp(d.CreatedAt))
	return v, func() {
		l.votes = append(l.votes, v)
		voter.votes = append(voter.votes, v)
	}, nil
}

// ChangeVote sets the polarity of voter's existing vote on the target. The
// vote keeps its place and timestamp.
func (n *Network) ChangeVote(t VoteTarget, voter UserID, like bool) (*Vote, error) {
	v, commit, err := n.PrepareChangeVote(t, voter, like)
	if err != nil {
		return nil, err
	}
	commit()
	return v, nil
}

// PrepareChangeVote returns the stored vote; its polarity changes on Commit.
func (n *Network) PrepareChangeVote(t VoteTarget, voter UserID, like bool) (*Vote, Commit, error) {
	l, err := n.ledger(t)
	if err != nil {
		return nil, nil, err
	}
	v, ok := l.VoteBy(voter)
	if !ok {
		return nil, nil, fmt.Errorf("vote by user %d: %w", voter, ErrNotFound)
	}
	return v, func() {
		if like {
			v.Like()
		} else {
			v.Dislike()
		}
	}, nil
}
