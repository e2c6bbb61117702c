package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expofeedback/internal/models/db_models"
)

type FeedbackFilter struct {
	Page     int
	PageSize int
	Subject  string
	UserRole string
}

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	// AnyWithSubject reports whether one of ids is a feedback row for subject.
	AnyWithSubject(ctx context.Context, ids []uuid.UUID, subject string) (bool, error)
	ListFeedback(ctx context.Context, filter FeedbackFilter) ([]db_models.Feedback, int64, error)
	DeleteFeedback(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) AnyWithSubject(ctx context.Context, ids []uuid.UUID, subject string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Feedback{}).
		Where("id IN ? AND subject = ?", ids, subject).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *FeedbackRepository) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]db_models.Feedback, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Feedback{})
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}
	if filter.UserRole != "" {
		q = q.Where("user_role = ?", filter.UserRole)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feedbacks []db_models.Feedback
	err := q.
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, total, err
}

func (r *FeedbackRepository) DeleteFeedback(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// audit rows outlive the feedback they point at
		if err := tx.Model(&db_models.SubmissionLog{}).
			Where("feedback_id IN ?", ids).
			Update("feedback_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&db_models.Feedback{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
