package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

// =====================================================================
// Fakes
// =====================================================================

type fakeSettings struct {
	enabled bool
	err     error
}

func (f *fakeSettings) IsProtectionEnabled(ctx context.Context) (bool, error) {
	return f.enabled, f.err
}

func (f *fakeSettings) SetProtectionEnabled(ctx context.Context, enabled bool) error {
	f.enabled = enabled
	return f.err
}

type fakeLogRepo struct {
	repositories.SubmissionLogRepository
	ids    []uuid.UUID
	idsErr error
}

func (f *fakeLogRepo) SuccessfulFeedbackIDs(ctx context.Context, fingerprint string) ([]uuid.UUID, error) {
	return f.ids, f.idsErr
}

type fakeFeedbackRepo struct {
	repositories.FeedbackRepositoryInterface
	match    bool
	matchErr error
}

func (f *fakeFeedbackRepo) AnyWithSubject(ctx context.Context, ids []uuid.UUID, subject string) (bool, error) {
	return f.match, f.matchErr
}

type recordedBlock struct {
	attempt Attempt
	reason  BlockReason
}

type fakeRecorder struct {
	mu       sync.Mutex
	blocked  []recordedBlock
	accepted []uuid.UUID
}

func (f *fakeRecorder) RecordBlocked(ctx context.Context, a Attempt, reason BlockReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked = append(f.blocked, recordedBlock{attempt: a, reason: reason})
}

func (f *fakeRecorder) RecordAccepted(ctx context.Context, a Attempt, feedbackID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, feedbackID)
}

func newGate(settings *fakeSettings, logs *fakeLogRepo, fb *fakeFeedbackRepo, rec *fakeRecorder) ProtectionServiceInterface {
	return NewProtectionService(settings, logs, fb, rec, logger.NewNop())
}

// =====================================================================
// State machine
// =====================================================================

func TestProtectionService_Check(t *testing.T) {
	dbErr := errors.New("connection reset")
	someIDs := []uuid.UUID{uuid.New()}

	tests := []struct {
		name        string
		settings    *fakeSettings
		logs        *fakeLogRepo
		feedback    *fakeFeedbackRepo
		input       CheckInput
		wantAllowed bool
		wantReason  Reason
		wantErr     error
		wantBlocked bool
	}{
		{
			name:        "protection disabled allows even a known duplicate",
			settings:    &fakeSettings{enabled: false},
			logs:        &fakeLogRepo{ids: someIDs},
			feedback:    &fakeFeedbackRepo{match: true},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"},
			wantAllowed: true,
			wantReason:  ReasonProtectionDisabled,
		},
		{
			name:        "toggle read failure fails open",
			settings:    &fakeSettings{err: dbErr},
			logs:        &fakeLogRepo{},
			feedback:    &fakeFeedbackRepo{},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"},
			wantAllowed: true,
			wantReason:  ReasonCheckError,
		},
		{
			name:        "pre-check without subject never blocks",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{ids: someIDs},
			feedback:    &fakeFeedbackRepo{match: true},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}},
			wantAllowed: true,
			wantReason:  ReasonGlobalCheckSkipped,
		},
		{
			name:        "whitespace subject is treated as absent",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{},
			feedback:    &fakeFeedbackRepo{},
			input:       CheckInput{Subject: "   "},
			wantAllowed: true,
			wantReason:  ReasonGlobalCheckSkipped,
		},
		{
			name:       "missing fingerprint with subject",
			settings:   &fakeSettings{enabled: true},
			logs:       &fakeLogRepo{},
			feedback:   &fakeFeedbackRepo{},
			input:      CheckInput{Subject: "Math"},
			wantReason: ReasonError,
			wantErr:    utils.ErrFingerprintRequired,
		},
		{
			name:       "fingerprint wider than the log column",
			settings:   &fakeSettings{enabled: true},
			logs:       &fakeLogRepo{},
			feedback:   &fakeFeedbackRepo{},
			input:      CheckInput{Attempt: Attempt{Fingerprint: strings.Repeat("f", 256)}, Subject: "Math"},
			wantReason: ReasonError,
			wantErr:    utils.ErrFingerprintTooLong,
		},
		{
			name:        "no prior submissions",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{},
			feedback:    &fakeFeedbackRepo{},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"},
			wantAllowed: true,
			wantReason:  ReasonNewVisitor,
		},
		{
			name:        "prior lookup failure fails open",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{idsErr: dbErr},
			feedback:    &fakeFeedbackRepo{},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"},
			wantAllowed: true,
			wantReason:  ReasonCheckError,
		},
		{
			name:        "prior submissions for other subjects",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{ids: someIDs},
			feedback:    &fakeFeedbackRepo{match: false},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Science"},
			wantAllowed: true,
			wantReason:  ReasonNewSubjectSubmission,
		},
		{
			name:        "subject match lookup failure fails open",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{ids: someIDs},
			feedback:    &fakeFeedbackRepo{matchErr: dbErr},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"},
			wantAllowed: true,
			wantReason:  ReasonCheckError,
		},
		{
			name:        "duplicate subject is blocked and audited",
			settings:    &fakeSettings{enabled: true},
			logs:        &fakeLogRepo{ids: someIDs},
			feedback:    &fakeFeedbackRepo{match: true},
			input:       CheckInput{Attempt: Attempt{Fingerprint: "abc", IPAddress: "203.0.113.5", UserAgent: "ua"}, Subject: "Math"},
			wantAllowed: false,
			wantReason:  ReasonDuplicateSubject,
			wantBlocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			gate := newGate(tt.settings, tt.logs, tt.feedback, rec)

			d, err := gate.Check(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantReason, d.Reason)

			if tt.wantBlocked {
				require.Len(t, rec.blocked, 1)
				assert.Equal(t, "duplicate_subject:Math", rec.blocked[0].reason.String())
				assert.Equal(t, "203.0.113.5", rec.blocked[0].attempt.IPAddress)
				assert.Equal(t, "ua", rec.blocked[0].attempt.UserAgent)
			} else {
				assert.Empty(t, rec.blocked)
			}
		})
	}
}

func TestProtectionService_Status(t *testing.T) {
	settings := &fakeSettings{enabled: true}
	gate := newGate(settings, &fakeLogRepo{}, &fakeFeedbackRepo{}, &fakeRecorder{})

	for i := 0; i < 3; i++ {
		enabled, err := gate.Status(context.Background())
		require.NoError(t, err)
		assert.True(t, enabled)
	}
}

func TestBlockReason_String(t *testing.T) {
	assert.Equal(t, "duplicate_subject:Math",
		BlockReason{Kind: BlockDuplicateSubject, Subject: "Math"}.String())
	assert.Equal(t, "duplicate_subject_late_reject:Science: Physics",
		BlockReason{Kind: BlockDuplicateSubjectLateReject, Subject: "Science: Physics"}.String())
}

// Settings toggled through storage take effect on the next check.
func TestProtectionService_ToggleReadFresh(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	d, err := env.gate.Check(ctx, CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"})
	require.NoError(t, err)
	assert.Equal(t, ReasonProtectionDisabled, d.Reason, "absent setting defaults to disabled")

	require.NoError(t, env.settings.SetProtectionEnabled(ctx, true))
	d, err = env.gate.Check(ctx, CheckInput{Attempt: Attempt{Fingerprint: "abc"}, Subject: "Math"})
	require.NoError(t, err)
	assert.Equal(t, ReasonNewVisitor, d.Reason)

	var count int64
	require.NoError(t, env.db.Model(&db_models.SubmissionLog{}).Count(&count).Error)
	assert.Zero(t, count, "allowed checks write nothing")
}
