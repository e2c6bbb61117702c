package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

type CheckInput struct {
	Attempt
	// Subject is empty for the page-load pre-check.
	Subject string
}

// ProtectionServiceInterface is the duplicate-submission gate.
type ProtectionServiceInterface interface {
	// Check decides whether (fingerprint, subject) may submit. The only errors it returns are
	// utils.ErrFingerprintRequired and utils.ErrFingerprintTooLong; lookup failures are
	// converted into an allow decision.
	Check(ctx context.Context, in CheckInput) (Decision, error)
	Status(ctx context.Context) (bool, error)
}

type ProtectionService struct {
	settings SettingsServiceInterface
	logs     repositories.SubmissionLogRepository
	feedback repositories.FeedbackRepositoryInterface
	recorder SubmissionRecorder
	log      logger.Interface
}

func NewProtectionService(
	settings SettingsServiceInterface,
	logs repositories.SubmissionLogRepository,
	feedback repositories.FeedbackRepositoryInterface,
	recorder SubmissionRecorder,
	log logger.Interface,
) ProtectionServiceInterface {
	return &ProtectionService{
		settings: settings,
		logs:     logs,
		feedback: feedback,
		recorder: recorder,
		log:      log.Named("protection"),
	}
}

func (s *ProtectionService) Status(ctx context.Context) (bool, error) {
	return s.settings.IsProtectionEnabled(ctx)
}

func (s *ProtectionService) Check(ctx context.Context, in CheckInput) (Decision, error) {
	enabled, err := s.settings.IsProtectionEnabled(ctx)
	if err != nil {
		s.failOpen("read protection toggle", err, in)
		return allow(ReasonCheckError), nil
	}
	if !enabled {
		return allow(ReasonProtectionDisabled), nil
	}

	subject := utils.NormalizeSubject(in.Subject)
	if subject == "" {
		// a fingerprint may already have submitted other subjects; never block here
		return allow(ReasonGlobalCheckSkipped), nil
	}

	fingerprint := strings.TrimSpace(in.Fingerprint)
	if fingerprint == "" {
		return Decision{Reason: ReasonError}, utils.ErrFingerprintRequired
	}
	if utf8.RuneCountInString(fingerprint) > db_models.MaxFingerprintLength {
		return Decision{Reason: ReasonError}, utils.ErrFingerprintTooLong
	}

	ids, err := s.logs.SuccessfulFeedbackIDs(ctx, fingerprint)
	if err != nil {
		s.failOpen("look up prior submissions", err, in)
		return allow(ReasonCheckError), nil
	}
	if len(ids) == 0 {
		return allow(ReasonNewVisitor), nil
	}

	match, err := s.feedback.AnyWithSubject(ctx, ids, subject)
	if err != nil {
		s.failOpen("match prior subjects", err, in)
		return allow(ReasonCheckError), nil
	}
	if !match {
		return allow(ReasonNewSubjectSubmission), nil
	}

	in.Fingerprint = fingerprint
	s.recorder.RecordBlocked(ctx, in.Attempt, BlockReason{Kind: BlockDuplicateSubject, Subject: subject})
	s.log.Info("duplicate submission blocked",
		"fingerprint", utils.TruncateFingerprint(fingerprint),
		"subject", subject,
		"ip", in.IPAddress)
	return Decision{Allowed: false, Reason: ReasonDuplicateSubject}, nil
}

func (s *ProtectionService) failOpen(step string, err error, in CheckInput) {
	s.log.Warn("protection check failed, allowing submission",
		"step", step,
		"error", err,
		"fingerprint", utils.TruncateFingerprint(in.Fingerprint),
		"subject", in.Subject)
}
