package services

import (
	"context"
	"fmt"
	"math"

	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo     repositories.DashboardRepository
	logs     repositories.SubmissionLogRepository
	settings SettingsServiceInterface
}

func NewDashboardService(
	repo repositories.DashboardRepository,
	logs repositories.SubmissionLogRepository,
	settings SettingsServiceInterface,
) DashboardService {
	return &dashboardService{repo: repo, logs: logs, settings: settings}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toGroupStats(rows []repositories.GroupStatRow) []resp.GroupStat {
	out := make([]resp.GroupStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, resp.GroupStat{Key: r.Key, Count: r.Count, AvgPercent: round2(r.AvgPercent)})
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context) (*resp.DashboardReport, error) {
	wrap := func(what string, err error) error {
		return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, what, err)
	}

	// ---------- Core counts ----------
	total, err := s.repo.CountFeedback(ctx)
	if err != nil {
		return nil, wrap("count feedback", err)
	}
	avg, err := s.repo.AveragePercent(ctx)
	if err != nil {
		return nil, wrap("average percent", err)
	}
	blocked, err := s.logs.CountBlocked(ctx)
	if err != nil {
		return nil, wrap("count blocked", err)
	}
	enabled, err := s.settings.IsProtectionEnabled(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Breakdowns ----------
	q, err := s.repo.QuestionAverages(ctx)
	if err != nil {
		return nil, wrap("question averages", err)
	}
	subjects, err := s.repo.SubjectBreakdown(ctx)
	if err != nil {
		return nil, wrap("subject breakdown", err)
	}
	roles, err := s.repo.RoleBreakdown(ctx)
	if err != nil {
		return nil, wrap("role breakdown", err)
	}

	return &resp.DashboardReport{
		TotalFeedback:  total,
		AveragePercent: round2(avg),
		QuestionAverages: [6]float64{
			round2(q.Q1), round2(q.Q2), round2(q.Q3),
			round2(q.Q4), round2(q.Q5), round2(q.Q6),
		},
		BySubject:       toGroupStats(subjects),
		ByRole:          toGroupStats(roles),
		BlockedAttempts: blocked,
		ProtectionOn:    enabled,
	}, nil
}
