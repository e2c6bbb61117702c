package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expofeedback/internal/api/controllers"
	"expofeedback/internal/config"
	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/internal/testutil"
	"expofeedback/pkg/logger"
	mem "expofeedback/pkg/memcache"
	"expofeedback/pkg/utils"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	log := logger.NewNop()
	tokens := utils.NewTokenManager("router-test", time.Hour)

	settingsRepo := repositories.NewSettingsRepository(db)
	logRepo := repositories.NewSubmissionLogRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	settings := services.NewSettingsService(settingsRepo, log)
	logs := services.NewSubmissionLogService(logRepo, log)
	gate := services.NewProtectionService(settings, logRepo, feedbackRepo, logs, log)
	feedback := services.NewFeedbackService(feedbackRepo, logRepo, settings, logs, mem.NewMemoryLock(), 5*time.Second, log)
	accounts := services.NewAccountService(repositories.NewAdminRepository(db), tokens, time.Hour, bcrypt.MinCost, log)
	dashboard := services.NewDashboardService(repositories.NewDashboardRepository(db), logRepo, settings)
	catalog := services.NewCatalogService(repositories.NewCatalogRepository(db))

	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode, AllowedOrigins: []string{"*"}}}
	engine := NewRouter(RouterParams{
		Config:     cfg,
		Logger:     log,
		Tokens:     tokens,
		Protection: controllers.NewProtectionController(gate, settings, log),
		Feedback:   controllers.NewFeedbackController(feedback),
		Logs:       controllers.NewSubmissionLogController(logs),
		Accounts:   controllers.NewAccountController(accounts),
		Dashboard:  controllers.NewDashboardController(dashboard),
		Catalog:    controllers.NewCatalogController(catalog),
	})

	s := &testServer{engine: engine, db: db}

	_, err := accounts.CreateAdmin(t.Context(), "curator", "exhibit-2024")
	require.NoError(t, err)
	rec := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "curator", "password": "exhibit-2024"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	s.token = login.Data.Token
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) admin(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, body, http.Header{"Authorization": {"Bearer " + s.token}})
}

func feedbackBody(fp, subject string, q1 int) map[string]any {
	return map[string]any{
		"user_role":   "visitor",
		"subject":     subject,
		"q1":          q1,
		"q2":          4,
		"q3":          4,
		"q4":          4,
		"q5":          4,
		"q6":          4,
		"comment":     "loved the robots",
		"fingerprint": fp,
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type checkBody struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
	Error   string `json:"error"`
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestRouter_DuplicateSubmissionFlow(t *testing.T) {
	s := newTestServer(t)
	proxy := http.Header{"X-Forwarded-For": {"198.51.100.7, 10.0.0.1"}, "User-Agent": {"kiosk-3"}}

	rec := s.admin(t, http.MethodPost, "/api/admin/settings/protection", map[string]bool{"enabled": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	status := decode[map[string]bool](t, s.do(t, http.MethodGet, "/api/protection/status", nil, nil))
	assert.True(t, status["enabled"])

	pre := decode[checkBody](t, s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"fingerprint": "abc"}, nil))
	assert.True(t, pre.Allowed)
	assert.Equal(t, "global_check_skipped", pre.Reason)

	check := decode[checkBody](t, s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"fingerprint": "abc", "subject": "Math"}, nil))
	assert.True(t, check.Allowed)
	assert.Equal(t, "new_visitor", check.Reason)

	rec = s.do(t, http.MethodPost, "/api/feedback", feedbackBody("abc", "Math", 5), proxy)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Math", created["subject"])
	assert.EqualValues(t, 25, created["total"])
	assert.EqualValues(t, 83.33, created["percent"])

	check = decode[checkBody](t, s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"fingerprint": "abc", "subject": "Math"}, nil))
	assert.False(t, check.Allowed)
	assert.Equal(t, "duplicate_subject", check.Reason)

	check = decode[checkBody](t, s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"fingerprint": "abc", "subject": "Science"}, nil))
	assert.True(t, check.Allowed)
	assert.Equal(t, "new_subject_submission", check.Reason)

	rec = s.do(t, http.MethodPost, "/api/feedback", feedbackBody("abc", "Math", 5), proxy)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You have already submitted feedback for this subject", decode[utils.APIResponse](t, rec).Error)

	var logs []db_models.SubmissionLog
	require.NoError(t, s.db.Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.False(t, logs[0].Blocked)
	assert.Equal(t, "198.51.100.7", logs[0].IPAddress)
	assert.Equal(t, "kiosk-3", logs[0].UserAgent)
	assert.Equal(t, "duplicate_subject:Math", *logs[1].BlockReason)
	assert.Equal(t, "unknown", logs[1].IPAddress)
	assert.Equal(t, "duplicate_subject_late_reject:Math", *logs[2].BlockReason)
}

func TestRouter_CheckEdgeCases(t *testing.T) {
	s := newTestServer(t)
	s.admin(t, http.MethodPost, "/api/admin/settings/protection", map[string]bool{"enabled": true})

	rec := s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"subject": "Math"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[checkBody](t, rec)
	assert.False(t, body.Allowed)
	assert.Equal(t, "error", body.Reason)
	assert.Equal(t, "fingerprint required", body.Error)

	long := strings.Repeat("f", 256)
	rec = s.do(t, http.MethodPost, "/api/protection/check", map[string]string{"fingerprint": long, "subject": "Math"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fingerprint must be at most 255 characters", decode[checkBody](t, rec).Error)

	rec = s.do(t, http.MethodPost, "/api/protection/check", "{not json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body = decode[checkBody](t, rec)
	assert.True(t, body.Allowed)
	assert.Equal(t, "error", body.Reason)
}

func TestRouter_SubmitValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/feedback", feedbackBody("abc", "Math", 6), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ratings must be between 1 and 5", decode[utils.APIResponse](t, rec).Error)

	missing := feedbackBody("abc", "", 3)
	delete(missing, "subject")
	rec = s.do(t, http.MethodPost, "/api/feedback", missing, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "subject is required", decode[utils.APIResponse](t, rec).Error)

	rec = s.do(t, http.MethodPost, "/api/feedback", feedbackBody(strings.Repeat("f", 256), "Math", 3), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[utils.APIResponse](t, rec).Error, "fingerprint")

	bad := feedbackBody("abc", "Math", 3)
	bad["user_role"] = "alien"
	rec = s.do(t, http.MethodPost, "/api/feedback", bad, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admin/submission-logs", "/api/admin/feedback", "/api/admin/dashboard/stats", "/api/admin/settings/protection"} {
		rec := s.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/admin/feedback", nil, http.Header{"Authorization": {"Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"username": "curator", "password": "wrong-pass"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminLogsAndFeedback(t *testing.T) {
	s := newTestServer(t)
	s.admin(t, http.MethodPost, "/api/admin/settings/protection", map[string]bool{"enabled": true})

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/feedback", feedbackBody("fingerprint-0123456789", "Art", 3), nil).Code)
	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/feedback", feedbackBody("fingerprint-0123456789", "Art", 3), nil).Code)

	rec := s.admin(t, http.MethodGet, "/api/admin/submission-logs?blocked=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logsResp struct {
		Data struct {
			Logs []struct {
				ID                 string `json:"id"`
				FingerprintDisplay string `json:"fingerprint_display"`
				Blocked            bool   `json:"blocked"`
			} `json:"logs"`
			Total int64 `json:"total"`
			Limit int   `json:"limit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logsResp))
	require.Len(t, logsResp.Data.Logs, 1)
	assert.Equal(t, int64(1), logsResp.Data.Total)
	assert.Equal(t, 50, logsResp.Data.Limit)
	assert.Equal(t, "fingerprint-...", logsResp.Data.Logs[0].FingerprintDisplay)

	rec = s.admin(t, http.MethodGet, "/api/admin/submission-logs?blocked=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.admin(t, http.MethodDelete, "/api/admin/submission-logs", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.admin(t, http.MethodGet, "/api/admin/feedback?page=1&page_size=10&subject=Art", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fbResp struct {
		Data struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fbResp))
	require.Len(t, fbResp.Data.Items, 1)

	rec = s.admin(t, http.MethodDelete, "/api/admin/feedback", map[string]any{"ids": []string{fbResp.Data.Items[0].ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the audit row survives with its feedback reference cleared
	var accepted db_models.SubmissionLog
	require.NoError(t, s.db.Where("blocked = ?", false).First(&accepted).Error)
	assert.Nil(t, accepted.FeedbackID)

	rec = s.admin(t, http.MethodDelete, "/api/admin/submission-logs", map[string]any{"all": true})
	require.Equal(t, http.StatusOK, rec.Code)
	var count int64
	require.NoError(t, s.db.Model(&db_models.SubmissionLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRouter_DashboardAndCatalog(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/feedback", feedbackBody("", "Robotics", 5), nil).Code)

	rec := s.admin(t, http.MethodGet, "/api/admin/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Data struct {
			TotalFeedback int64 `json:"total_feedback"`
			ProtectionOn  bool  `json:"protection_enabled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, int64(1), dash.Data.TotalFeedback)
	assert.False(t, dash.Data.ProtectionOn)

	rec = s.admin(t, http.MethodPost, "/api/admin/subjects", map[string]string{"name": "Robotics"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.admin(t, http.MethodPost, "/api/admin/projects", map[string]string{"name": "Line follower", "description": "Grade 9"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/subjects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Robotics")
	rec = s.do(t, http.MethodGet, "/api/projects", nil, nil)
	assert.Contains(t, rec.Body.String(), "Line follower")

	rec = s.admin(t, http.MethodDelete, "/api/admin/subjects/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CatalogDeleteThenRecreate(t *testing.T) {
	s := newTestServer(t)

	type created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	for _, kind := range []string{"subjects", "projects"} {
		t.Run(kind, func(t *testing.T) {
			path := "/api/admin/" + kind
			rec := s.admin(t, http.MethodPost, path, map[string]string{"name": "Robotics"})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			first := decode[created](t, rec)

			rec = s.admin(t, http.MethodPost, path, map[string]string{"name": "Robotics"})
			assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

			rec = s.admin(t, http.MethodDelete, path+"/"+first.Data.ID, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			rec = s.admin(t, http.MethodDelete, path+"/"+first.Data.ID, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = s.admin(t, http.MethodPost, path, map[string]string{"name": "Robotics"})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			second := decode[created](t, rec)
			assert.NotEqual(t, first.Data.ID, second.Data.ID)
		})
	}
}
