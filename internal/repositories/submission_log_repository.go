package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expofeedback/internal/models/db_models"
)

type SubmissionLogFilter struct {
	Limit   int
	Offset  int
	Blocked *bool
}

// SubmissionLogRepository is insert-only for application code; rows are never updated.
type SubmissionLogRepository interface {
	Insert(ctx context.Context, log *db_models.SubmissionLog) error
	// SuccessfulFeedbackIDs returns the feedback ids of every non-blocked log for fingerprint.
	SuccessfulFeedbackIDs(ctx context.Context, fingerprint string) ([]uuid.UUID, error)
	// HasSuccessfulSubmission joins logs against feedback in one query.
	HasSuccessfulSubmission(ctx context.Context, fingerprint, subject string) (bool, error)
	List(ctx context.Context, filter SubmissionLogFilter) ([]db_models.SubmissionLog, int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	// DeleteAll removes every log, or only those created before olderThan when it is set.
	DeleteAll(ctx context.Context, olderThan *time.Time) (int64, error)
	CountBlocked(ctx context.Context) (int64, error)
}

type submissionLogRepository struct {
	db *gorm.DB
}

func NewSubmissionLogRepository(db *gorm.DB) SubmissionLogRepository {
	return &submissionLogRepository{db: db}
}

func (r *submissionLogRepository) Insert(ctx context.Context, log *db_models.SubmissionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *submissionLogRepository) SuccessfulFeedbackIDs(ctx context.Context, fingerprint string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.SubmissionLog{}).
		Where("fingerprint_hash = ? AND blocked = ? AND feedback_id IS NOT NULL", fingerprint, false).
		Pluck("feedback_id", &ids).Error
	return ids, err
}

func (r *submissionLogRepository) HasSuccessfulSubmission(ctx context.Context, fingerprint, subject string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("submission_logs AS sl").
		Joins("JOIN feedback AS f ON f.id = sl.feedback_id").
		Where("sl.fingerprint_hash = ? AND sl.blocked = ? AND f.subject = ?", fingerprint, false, subject).
		Count(&count).Error
	return count > 0, err
}

func (r *submissionLogRepository) List(ctx context.Context, filter SubmissionLogFilter) ([]db_models.SubmissionLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.SubmissionLog{})
	if filter.Blocked != nil {
		q = q.Where("blocked = ?", *filter.Blocked)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []db_models.SubmissionLog
	err := q.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *submissionLogRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&db_models.SubmissionLog{})
	return res.RowsAffected, res.Error
}

func (r *submissionLogRepository) DeleteAll(ctx context.Context, olderThan *time.Time) (int64, error) {
	q := r.db.WithContext(ctx)
	if olderThan != nil {
		q = q.Where("created_at < ?", *olderThan)
	} else {
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	res := q.Delete(&db_models.SubmissionLog{})
	return res.RowsAffected, res.Error
}

func (r *submissionLogRepository) CountBlocked(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.SubmissionLog{}).
		Where("blocked = ?", true).
		Count(&count).Error
	return count, err
}
