package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/cuoora/backend/internal/domain"
	"github.com/emilythestrangee/cuoora/backend/internal/models"
)

const uniqueViolation = "23505"

// constraintErrors maps unique constraints to the domain error they enforce.
var constraintErrors = map[string]error{
	"idx_vote_question":      domain.ErrDuplicateVote,
	"idx_vote_answer":        domain.ErrDuplicateVote,
	"idx_question_topic":     domain.ErrDuplicateTopic,
	"idx_follower_following": domain.ErrAlreadyFollowing,
	"idx_user_topic":         domain.ErrDuplicateInterest,
	"uni_users_username":     domain.ErrUsernameTaken,
}

// Repository persists the network with GORM. Row ids are the network ids.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tables.
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Question{},
		&models.Answer{},
		&models.QuestionTopic{},
		&models.Interest{},
		&models.Follow{},
		&models.Vote{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if target, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", target, err)
		}
	}
	return err
}

func (r *Repository) create(ctx context.Context, row any) error {
	return translate(r.db.WithContext(ctx).Create(row).Error)
}

func (r *Repository) SaveUser(ctx context.Context, u *domain.User) error {
	return r.create(ctx, &models.User{
		ID:       int(u.ID),
		Username: u.Username,
		Password: u.Password,
	})
}

func (r *Repository) SaveTopic(ctx context.Context, t *domain.Topic) error {
	return r.create(ctx, &models.Topic{
		ID:          int(t.ID),
		Name:        t.Name,
		Description: t.Description,
	})
}

// SaveQuestion stores the question and its initial topics in one
// transaction.
func (r *Repository) SaveQuestion(ctx context.Context, q *domain.Question) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.Question{
			ID:          int(q.ID),
			AuthorID:    int(q.Author),
			Title:       q.Title,
			Description: q.Description,
			CreatedAt:   q.CreatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, t := range q.Topics() {
			if err := tx.Create(&models.QuestionTopic{QuestionID: row.ID, TopicID: int(t)}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (r *Repository) SaveAnswer(ctx context.Context, a *domain.Answer) error {
	return r.create(ctx, &models.Answer{
		ID:          int(a.ID),
		QuestionID:  int(a.Question),
		AuthorID:    int(a.Author),
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	})
}

func (r *Repository) AttachTopic(ctx context.Context, q domain.QuestionID, t domain.TopicID) error {
	return r.create(ctx, &models.QuestionTopic{QuestionID: int(q), TopicID: int(t)})
}

func (r *Repository) SaveFollow(ctx context.Context, follower, followee domain.UserID) error {
	return r.create(ctx, &models.Follow{FollowerID: int(follower), FollowingID: int(followee)})
}

func (r *Repository) DeleteFollow(ctx context.Context, follower, followee domain.UserID) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", int(follower), int(followee)).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", followee, domain.ErrNotFollowing)
	}
	return nil
}

func (r *Repository) SaveInterest(ctx context.Context, u domain.UserID, t domain.TopicID) error {
	return r.create(ctx, &models.Interest{UserID: int(u), TopicID: int(t)})
}

func voteRow(target domain.VoteTarget, v *domain.Vote) *models.Vote {
	row := &models.Vote{
		UserID:    int(v.Voter),
		IsLike:    v.IsLike(),
		CreatedAt: v.CreatedAt,
	}
	if target.IsAnswer() {
		id := int(target.Answer)
		row.AnswerID = &id
	} else {
		id := int(target.Question)
		row.QuestionID = &id
	}
	return row
}

func (r *Repository) SaveVote(ctx context.Context, target domain.VoteTarget, v *domain.Vote) error {
	return r.create(ctx, voteRow(target, v))
}

func (r *Repository) UpdateVote(ctx context.Context, target domain.VoteTarget, voter domain.UserID, like bool) error {
	q := r.db.WithContext(ctx).Model(&models.Vote{}).Where("user_id = ?", int(voter))
	if target.IsAnswer() {
		q = q.Where("answer_id = ?", int(target.Answer))
	} else {
		q = q.Where("question_id = ?", int(target.Question))
	}
	res := q.Update("is_like", like)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vote by user %d: %w", voter, domain.ErrNotFound)
	}
	return nil
}
