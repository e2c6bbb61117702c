package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expofeedback/internal/models/db_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

// Attempt identifies who is asking, as far as the server can tell.
type Attempt struct {
	Fingerprint string
	IPAddress   string
	UserAgent   string
}

// SubmissionRecorder appends audit rows. Failures are logged and swallowed: a missing audit
// row is acceptable, a failed submission because of one is not.
type SubmissionRecorder interface {
	RecordBlocked(ctx context.Context, a Attempt, reason BlockReason)
	RecordAccepted(ctx context.Context, a Attempt, feedbackID uuid.UUID)
}

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type DeleteLogsInput struct {
	IDs           []uuid.UUID
	All           bool
	OlderThanDays int
}

type SubmissionLogServiceInterface interface {
	SubmissionRecorder
	ListLogs(ctx context.Context, limit, offset int, blocked *bool) (*resp.SubmissionLogPage, error)
	DeleteLogs(ctx context.Context, in DeleteLogsInput) (int64, error)
}

type SubmissionLogService struct {
	repo repositories.SubmissionLogRepository
	log  logger.Interface
	now  func() time.Time
}

func NewSubmissionLogService(repo repositories.SubmissionLogRepository, log logger.Interface) SubmissionLogServiceInterface {
	return &SubmissionLogService{repo: repo, log: log.Named("submission_log"), now: time.Now}
}

func ipOrUnknown(ip string) string {
	if ip == "" {
		return utils.UnknownIP
	}
	return ip
}

func (s *SubmissionLogService) RecordBlocked(ctx context.Context, a Attempt, reason BlockReason) {
	tag := reason.String()
	entry := &db_models.SubmissionLog{
		IPAddress:       ipOrUnknown(a.IPAddress),
		FingerprintHash: a.Fingerprint,
		UserAgent:       a.UserAgent,
		Blocked:         true,
		BlockReason:     &tag,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.Error("failed to record blocked attempt",
			"error", err,
			"fingerprint", utils.TruncateFingerprint(a.Fingerprint),
			"block_reason", tag)
	}
}

func (s *SubmissionLogService) RecordAccepted(ctx context.Context, a Attempt, feedbackID uuid.UUID) {
	id := feedbackID
	entry := &db_models.SubmissionLog{
		IPAddress:       ipOrUnknown(a.IPAddress),
		FingerprintHash: a.Fingerprint,
		UserAgent:       a.UserAgent,
		FeedbackID:      &id,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.log.Error("failed to record accepted submission",
			"error", err,
			"fingerprint", utils.TruncateFingerprint(a.Fingerprint),
			"feedback_id", feedbackID)
	}
}

func (s *SubmissionLogService) ListLogs(ctx context.Context, limit, offset int, blocked *bool) (*resp.SubmissionLogPage, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.repo.List(ctx, repositories.SubmissionLogFilter{
		Limit:   limit,
		Offset:  offset,
		Blocked: blocked,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list submission logs: %v", utils.ErrDatabaseError, err)
	}

	views := make([]resp.SubmissionLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, toLogView(l))
	}

	return &resp.SubmissionLogPage{
		Logs:   views,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// toLogView shows full IP addresses; admins see them unmasked.
func toLogView(l db_models.SubmissionLog) resp.SubmissionLogView {
	v := resp.SubmissionLogView{
		ID:                 l.ID.String(),
		IPAddress:          l.IPAddress,
		FingerprintHash:    l.FingerprintHash,
		FingerprintDisplay: utils.TruncateFingerprint(l.FingerprintHash),
		UserAgent:          l.UserAgent,
		Blocked:            l.Blocked,
		BlockReason:        l.BlockReason,
		CreatedAt:          l.CreatedAt,
	}
	if l.FeedbackID != nil {
		id := l.FeedbackID.String()
		v.FeedbackID = &id
	}
	return v
}

func (s *SubmissionLogService) DeleteLogs(ctx context.Context, in DeleteLogsInput) (int64, error) {
	var (
		n   int64
		err error
	)

	switch {
	case in.All:
		var olderThan *time.Time
		if in.OlderThanDays > 0 {
			t := s.now().AddDate(0, 0, -in.OlderThanDays)
			olderThan = &t
		}
		n, err = s.repo.DeleteAll(ctx, olderThan)
	case len(in.IDs) > 0:
		n, err = s.repo.DeleteByIDs(ctx, in.IDs)
	default:
		return 0, utils.NewFieldError("ids", "Provide ids or set all to true")
	}

	if err != nil {
		return 0, fmt.Errorf("%w: delete submission logs: %v", utils.ErrDatabaseError, err)
	}
	s.log.Info("submission logs deleted", "count", n, "all", in.All, "older_than_days", in.OlderThanDays)
	return n, nil
}
