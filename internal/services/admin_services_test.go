package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/internal/testutil"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

func TestSettingsService_DefaultsToDisabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSettingsService(repositories.NewSettingsRepository(db), logger.NewNop())
	ctx := context.Background()

	enabled, err := svc.IsProtectionEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, svc.SetProtectionEnabled(ctx, true))
	enabled, err = svc.IsProtectionEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, svc.SetProtectionEnabled(ctx, false))
	enabled, err = svc.IsProtectionEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSubmissionLogService_ListAndDelete(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()

	env.logs.RecordBlocked(ctx, Attempt{Fingerprint: "fp-aaaaaaaaaaaaaaaa", UserAgent: "ua"},
		BlockReason{Kind: BlockDuplicateSubject, Subject: "Math"})
	env.logs.RecordBlocked(ctx, Attempt{Fingerprint: "fp-b", IPAddress: "198.51.100.1"},
		BlockReason{Kind: BlockDuplicateSubject, Subject: "Art"})
	fb, err := env.feedback.Submit(ctx, validInput("fp-c", "Math"))
	require.NoError(t, err)

	page, err := env.logs.ListLogs(ctx, 0, -5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, defaultLogLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
	require.Len(t, page.Logs, 3)

	blocked := true
	page, err = env.logs.ListLogs(ctx, 10000, 0, &blocked)
	require.NoError(t, err)
	assert.Equal(t, maxLogLimit, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	for _, v := range page.Logs {
		assert.True(t, v.Blocked)
		assert.Nil(t, v.FeedbackID)
		if v.FingerprintHash == "fp-aaaaaaaaaaaaaaaa" {
			assert.Equal(t, utils.UnknownIP, v.IPAddress)
			assert.Equal(t, "fp-aaaaaaaaa...", v.FingerprintDisplay)
		}
	}

	notBlocked := false
	page, err = env.logs.ListLogs(ctx, 10, 0, &notBlocked)
	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	require.NotNil(t, page.Logs[0].FeedbackID)
	assert.Equal(t, fb.ID.String(), *page.Logs[0].FeedbackID)

	_, err = env.logs.DeleteLogs(ctx, DeleteLogsInput{})
	assert.ErrorIs(t, err, utils.ErrValidation)

	id, err := uuid.Parse(page.Logs[0].ID)
	require.NoError(t, err)
	n, err := env.logs.DeleteLogs(ctx, DeleteLogsInput{IDs: []uuid.UUID{id}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = env.logs.DeleteLogs(ctx, DeleteLogsInput{All: true, OlderThanDays: 30})
	require.NoError(t, err)
	assert.Zero(t, n, "fresh rows are kept")

	n, err = env.logs.DeleteLogs(ctx, DeleteLogsInput{All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSubmissionLogService_OlderThan(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewSubmissionLogRepository(db)
	svc := &SubmissionLogService{repo: repo, log: logger.NewNop(), now: time.Now}
	ctx := context.Background()

	old := &db_models.SubmissionLog{IPAddress: "unknown", FingerprintHash: "old", Blocked: true}
	require.NoError(t, repo.Insert(ctx, old))
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -40)).Error)
	require.NoError(t, repo.Insert(ctx, &db_models.SubmissionLog{IPAddress: "unknown", FingerprintHash: "new", Blocked: true}))

	n, err := svc.DeleteLogs(ctx, DeleteLogsInput{All: true, OlderThanDays: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func newAccountService(t *testing.T) AccountServiceInterface {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	return NewAccountService(repositories.NewAdminRepository(db), tokens, time.Hour, bcrypt.MinCost, logger.NewNop())
}

func TestAccountService_CreateAndLogin(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, " curator ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "curator", admin.Username)
	assert.NotEqual(t, "hunter22", admin.PasswordHash)

	_, err = svc.CreateAdmin(ctx, "curator", "another1")
	assert.ErrorIs(t, err, utils.ErrAlreadyExists)

	_, err = svc.CreateAdmin(ctx, "ab", "hunter22")
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = svc.CreateAdmin(ctx, "someone", "123")
	assert.ErrorIs(t, err, utils.ErrValidation)

	res, err := svc.Login(ctx, "curator", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := utils.NewTokenManager("test-secret", time.Hour).ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.AdminID)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Login(ctx, "curator", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestCatalogService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCatalogService(repositories.NewCatalogRepository(db))
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, "  ", "")
	assert.ErrorIs(t, err, utils.ErrValidation)

	p, err := svc.CreateProject(ctx, "Solar Car", " built by 10A ")
	require.NoError(t, err)
	assert.Equal(t, "built by 10A", p.Description)
	assert.True(t, p.Active)

	s, err := svc.CreateSubject(ctx, "Physics")
	require.NoError(t, err)

	projects, err := svc.ListProjects(ctx, true)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	subjects, err := svc.ListSubjects(ctx, false)
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	require.NoError(t, svc.DeleteProject(ctx, p.ID.String()))
	assert.ErrorIs(t, svc.DeleteProject(ctx, p.ID.String()), utils.ErrNotFound)
	require.NoError(t, svc.DeleteSubject(ctx, s.ID.String()))
	assert.ErrorIs(t, svc.DeleteSubject(ctx, uuid.NewString()), utils.ErrNotFound)
}

func TestDashboardService_BuildDashboard(t *testing.T) {
	env := newPipelineEnv(t)
	ctx := context.Background()
	require.NoError(t, env.settings.SetProtectionEnabled(ctx, true))

	dash := NewDashboardService(
		repositories.NewDashboardRepository(env.db),
		repositories.NewSubmissionLogRepository(env.db),
		env.settings,
	)

	empty, err := dash.BuildDashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalFeedback)
	assert.Empty(t, empty.BySubject)
	assert.True(t, empty.ProtectionOn)

	_, err = env.feedback.Submit(ctx, validInput("a", "Math"))
	require.NoError(t, err)
	in := validInput("b", "Math")
	in.UserRole = "parent"
	in.Ratings = [6]int{5, 5, 5, 5, 5, 5}
	_, err = env.feedback.Submit(ctx, in)
	require.NoError(t, err)
	_, err = env.feedback.Submit(ctx, validInput("a", "Math"))
	require.ErrorIs(t, err, utils.ErrDuplicateSubmission)

	report, err := dash.BuildDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalFeedback)
	assert.Equal(t, 90.0, report.AveragePercent)
	assert.Equal(t, 5.0, report.QuestionAverages[0])
	assert.Equal(t, int64(1), report.BlockedAttempts)
	require.Len(t, report.BySubject, 1)
	assert.Equal(t, "Math", report.BySubject[0].Key)
	assert.Equal(t, int64(2), report.BySubject[0].Count)
	assert.Len(t, report.ByRole, 2)
}
