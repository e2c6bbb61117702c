package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"expofeedback/internal/models/db_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	mem "expofeedback/pkg/memcache"
	"expofeedback/pkg/utils"
)

const maxCommentLength = 2000

type SubmitInput struct {
	Attempt
	UserRole string
	Subject  string
	Ratings  [db_models.QuestionCount]int
	Comment  *string
}

type FeedbackServiceInterface interface {
	// Submit validates, re-checks for a duplicate, stores the feedback and logs the outcome.
	Submit(ctx context.Context, in SubmitInput) (*db_models.Feedback, error)
	ListFeedback(ctx context.Context, filter repositories.FeedbackFilter) (*resp.FeedbackPage, error)
	DeleteFeedback(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
	logRepo      repositories.SubmissionLogRepository
	settings     SettingsServiceInterface
	recorder     SubmissionRecorder
	lock         mem.SubmissionLock
	lockTTL      time.Duration
	log          logger.Interface
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	logRepo repositories.SubmissionLogRepository,
	settings SettingsServiceInterface,
	recorder SubmissionRecorder,
	lock mem.SubmissionLock,
	lockTTL time.Duration,
	log logger.Interface,
) FeedbackServiceInterface {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		logRepo:      logRepo,
		settings:     settings,
		recorder:     recorder,
		lock:         lock,
		lockTTL:      lockTTL,
		log:          log.Named("feedback"),
	}
}

// ComputeScore returns the sum of the ratings and that sum as a percentage of the maximum,
// rounded to two decimals.
func ComputeScore(ratings [db_models.QuestionCount]int) (int, float64) {
	total := 0
	for _, r := range ratings {
		total += r
	}
	maxScore := float64(db_models.QuestionCount * db_models.MaxRating)
	percent := math.Round(float64(total)/maxScore*100*100) / 100
	return total, percent
}

func validateSubmission(in *SubmitInput) error {
	role := db_models.UserRole(strings.TrimSpace(in.UserRole))
	if !role.Valid() {
		return utils.ErrInvalidRole
	}
	in.UserRole = string(role)

	in.Subject = utils.NormalizeSubject(in.Subject)
	if in.Subject == "" {
		return utils.NewFieldError("subject", "Subject is required")
	}
	if utf8.RuneCountInString(in.Subject) > 255 {
		return utils.NewFieldError("subject", "Subject must be at most 255 characters")
	}

	for _, r := range in.Ratings {
		if r < db_models.MinRating || r > db_models.MaxRating {
			return utils.ErrInvalidRating
		}
	}

	if in.Comment != nil {
		c := utils.SanitizeComment(*in.Comment)
		if utf8.RuneCountInString(c) > maxCommentLength {
			return utils.NewFieldError("comment", fmt.Sprintf("Comment must be at most %d characters", maxCommentLength))
		}
		if c == "" {
			in.Comment = nil
		} else {
			in.Comment = &c
		}
	}

	in.Fingerprint = strings.TrimSpace(in.Fingerprint)
	if utf8.RuneCountInString(in.Fingerprint) > db_models.MaxFingerprintLength {
		return utils.ErrFingerprintTooLong
	}
	return nil
}

func (s *FeedbackService) Submit(ctx context.Context, in SubmitInput) (*db_models.Feedback, error) {
	if err := validateSubmission(&in); err != nil {
		return nil, err
	}

	if in.Fingerprint != "" {
		release, err := s.guardDuplicate(ctx, in)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	total, percent := ComputeScore(in.Ratings)
	feedback := &db_models.Feedback{
		UserRole: db_models.UserRole(in.UserRole),
		Subject:  in.Subject,
		Q1:       in.Ratings[0],
		Q2:       in.Ratings[1],
		Q3:       in.Ratings[2],
		Q4:       in.Ratings[3],
		Q5:       in.Ratings[4],
		Q6:       in.Ratings[5],
		Total:    total,
		Percent:  percent,
		Comment:  in.Comment,
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("%w: insert feedback: %v", utils.ErrDatabaseError, err)
	}

	if in.Fingerprint != "" {
		s.recorder.RecordAccepted(ctx, in.Attempt, feedback.ID)
	}

	s.log.Debug("feedback stored", "feedback_id", feedback.ID, "subject", feedback.Subject, "percent", feedback.Percent)
	return feedback, nil
}

// guardDuplicate is the authoritative duplicate check on the write path. It serialises
// concurrent writes for the same (fingerprint, subject) and re-queries the audit trail.
// The returned func releases the lock.
func (s *FeedbackService) guardDuplicate(ctx context.Context, in SubmitInput) (func(), error) {
	noop := func() {}

	enabled, err := s.settings.IsProtectionEnabled(ctx)
	if err != nil {
		s.log.Warn("write-path toggle read failed, skipping duplicate re-check", "error", err)
		return noop, nil
	}
	if !enabled {
		return noop, nil
	}

	reject := func() error {
		s.recorder.RecordBlocked(ctx, in.Attempt, BlockReason{Kind: BlockDuplicateSubjectLateReject, Subject: in.Subject})
		s.log.Info("late duplicate rejected",
			"fingerprint", utils.TruncateFingerprint(in.Fingerprint),
			"subject", in.Subject,
			"ip", in.IPAddress)
		return utils.ErrDuplicateSubmission
	}

	release := noop
	key := in.Fingerprint + "|" + in.Subject
	token, acquired, err := s.lock.Acquire(ctx, key, s.lockTTL)
	switch {
	case err != nil:
		s.log.Warn("submission lock unavailable, continuing without it", "error", err)
	case !acquired:
		return noop, reject()
	default:
		release = func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), key, token); err != nil {
				s.log.Warn("failed to release submission lock", "error", err)
			}
		}
	}

	dup, err := s.logRepo.HasSuccessfulSubmission(ctx, in.Fingerprint, in.Subject)
	if err != nil {
		s.log.Warn("write-path duplicate re-check failed, allowing submission",
			"error", err,
			"fingerprint", utils.TruncateFingerprint(in.Fingerprint),
			"subject", in.Subject)
		return release, nil
	}
	if dup {
		release()
		return noop, reject()
	}
	return release, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, filter repositories.FeedbackFilter) (*resp.FeedbackPage, error) {
	if filter.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	items, total, err := s.feedbackRepo.ListFeedback(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list feedback: %v", utils.ErrDatabaseError, err)
	}
	if items == nil {
		items = []db_models.Feedback{}
	}

	return &resp.FeedbackPage{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, ids []uuid.UUID) (int64, error) {
	n, err := s.feedbackRepo.DeleteFeedback(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%w: delete feedback: %v", utils.ErrDatabaseError, err)
	}
	s.log.Info("feedback deleted", "count", n)
	return n, nil
}
