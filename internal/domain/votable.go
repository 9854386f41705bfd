package domain

import "fmt"

// Votable is implemented by every entity that accumulates votes.
type Votable interface {
	AddVote(vote *Vote) error
	Votes() []*Vote
	PositiveVotes() []*Vote
	NegativeVotes() []*Vote
}

// VoteLedger records at most one vote per voter, in insertion order.
// Questions and answers embed it.
type VoteLedger struct {
	votes []*Vote
}

func (l *VoteLedger) AddVote(vote *Vote) error {
	if vote == nil {
		return fmt.Errorf("add vote: %w", ErrInvalidInput)
	}
	if _, ok := l.VoteBy(vote.Voter); ok {
		return fmt.Errorf("user %d: %w", vote.Voter, ErrDuplicateVote)
	}
	l.votes = append(l.votes, vote)
	return nil
}

func (l *VoteLedger) Votes() []*Vote {
	out := make([]*Vote, len(l.votes))
	copy(out, l.votes)
	return out
}

func (l *VoteLedger) VoteBy(voter UserID) (*Vote, bool) {
	for _, v := range l.votes {
		if v.Voter == voter {
			return v, true
		}
	}
	return nil, false
}

func (l *VoteLedger) PositiveVotes() []*Vote {
	return l.filter(true)
}

func (l *VoteLedger) NegativeVotes() []*Vote {
	return l.filter(false)
}

// Margin is positive minus negative votes.
func (l *VoteLedger) Margin() int {
	margin := 0
	for _, v := range l.votes {
		if v.IsLike() {
			margin++
		} else {
			margin--
		}
	}
	return margin
}

func (l *VoteLedger) filter(like bool) []*Vote {
	out := make([]*Vote, 0, len(l.votes))
	for _, v := range l.votes {
		if v.IsLike() == like {
			out = append(out, v)
		}
	}
	return out
}

// netPositive reports whether a votable has strictly more likes than dislikes.
func netPositive(v Votable) bool {
	return len(v.PositiveVotes()) > len(v.NegativeVotes())
}
