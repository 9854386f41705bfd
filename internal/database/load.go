package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
)

var ErrIDMismatch = errors.New("stored id does not match network id")

// Load rebuilds a network from the stored rows. Rows are replayed in id
// order so every list keeps its original insertion order.
func (r *Repository) Load(ctx context.Context, opts ...domain.Option) (*domain.Network, error) {
	db := r.db.WithContext(ctx)
	n := domain.NewNetwork(opts...)

	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, row := range users {
		u, err := n.AddUser(row.Username, row.Password)
		if err != nil {
			return nil, fmt.Errorf("restore user %d: %w", row.ID, err)
		}
		if err := checkID("user", row.ID, int(u.ID)); err != nil {
			return nil, err
		}
	}

	var topics []models.Topic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	for _, row := range topics {
		t, err := n.AddTopic(row.Name, row.Description)
		if err != nil {
			return nil, fmt.Errorf("restore topic %d: %w", row.ID, err)
		}
		if err := checkID("topic", row.ID, int(t.ID)); err != nil {
			return nil, err
		}
	}

	var questions []models.Question
	if err := db.Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	for _, row := range questions {
		q, err := n.PostQuestion(domain.QuestionDraft{
			Author:      domain.UserID(row.AuthorID),
			Title:       row.Title,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("restore question %d: %w", row.ID, err)
		}
		if err := checkID("question", row.ID, int(q.ID)); err != nil {
			return nil, err
		}
	}

	var tags []models.QuestionTopic
	if err := db.Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("load question topics: %w", err)
	}
	for _, row := range tags {
		if err := n.AttachTopic(domain.QuestionID(row.QuestionID), domain.TopicID(row.TopicID)); err != nil {
			return nil, fmt.Errorf("restore question topic %d: %w", row.ID, err)
		}
	}

	var answers []models.Answer
	if err := db.Order("id").Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	for _, row := range answers {
		a, err := n.PostAnswer(domain.AnswerDraft{
			Question:    domain.QuestionID(row.QuestionID),
			Author:      domain.UserID(row.AuthorID),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("restore answer %d: %w", row.ID, err)
		}
		if err := checkID("answer", row.ID, int(a.ID)); err != nil {
			return nil, err
		}
	}

	var follows []models.Follow
	if err := db.Order("id").Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	for _, row := range follows {
		if err := n.Follow(domain.UserID(row.FollowerID), domain.UserID(row.FollowingID)); err != nil {
			return nil, fmt.Errorf("restore follow %d: %w", row.ID, err)
		}
	}

	var interests []models.Interest
	if err := db.Order("id").Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("load interests: %w", err)
	}
	for _, row := range interests {
		if err := n.AddInterest(domain.UserID(row.UserID), domain.TopicID(row.TopicID)); err != nil {
			return nil, fmt.Errorf("restore interest %d: %w", row.ID, err)
		}
	}

	var votes []models.Vote
	if err := db.Order("id").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}
	for _, row := range votes {
		target, err := voteTarget(row)
		if err != nil {
			return nil, err
		}
		draft := domain.VoteDraft{Voter: domain.UserID(row.UserID), Like: row.IsLike, CreatedAt: row.CreatedAt}
		if _, err := n.Vote(target, draft); err != nil {
			return nil, fmt.Errorf("restore vote %d: %w", row.ID, err)
		}
	}

	return n, nil
}

func checkID(kind string, stored, assigned int) error {
	if stored != assigned {
		return fmt.Errorf("%s %d restored as %d: %w", kind, stored, assigned, ErrIDMismatch)
	}
	return nil
}

func voteTarget(row models.Vote) (domain.VoteTarget, error) {
	switch {
	case row.QuestionID != nil && row.AnswerID == nil:
		return domain.VoteTarget{Question: domain.QuestionID(*row.QuestionID)}, nil
	case row.AnswerID != nil && row.QuestionID == nil:
		return domain.VoteTarget{Answer: domain.AnswerID(*row.AnswerID)}, nil
	default:
		return domain.VoteTarget{}, fmt.Errorf("vote %d: needs exactly one target: %w", row.ID, domain.ErrInvalidInput)
	}
}
