package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "expofeedback/internal/models/db_models"
)

type DashboardRepository interface {
	CountFeedback(ctx context.Context) (int64, error)
	AveragePercent(ctx context.Context) (float64, error)
	QuestionAverages(ctx context.Context) (QuestionAveragesRow, error)
	SubjectBreakdown(ctx context.Context) ([]GroupStatRow, error)
	RoleBreakdown(ctx context.Context) ([]GroupStatRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type GroupStatRow struct {
	Key        string  `gorm:"column:group_key"`
	Count      int64   `gorm:"column:count"`
	AvgPercent float64 `gorm:"column:avg_percent"`
}

type QuestionAveragesRow struct {
	Q1 float64 `gorm:"column:q1"`
	Q2 float64 `gorm:"column:q2"`
	Q3 float64 `gorm:"column:q3"`
	Q4 float64 `gorm:"column:q4"`
	Q5 float64 `gorm:"column:q5"`
	Q6 float64 `gorm:"column:q6"`
}

func (r *dashboardRepository) CountFeedback(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Feedback{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) AveragePercent(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Select("COALESCE(AVG(percent), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *dashboardRepository) QuestionAverages(ctx context.Context) (QuestionAveragesRow, error) {
	var row QuestionAveragesRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Select(`COALESCE(AVG(q1), 0) AS q1, COALESCE(AVG(q2), 0) AS q2, COALESCE(AVG(q3), 0) AS q3,
			COALESCE(AVG(q4), 0) AS q4, COALESCE(AVG(q5), 0) AS q5, COALESCE(AVG(q6), 0) AS q6`).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) groupBy(ctx context.Context, column string) ([]GroupStatRow, error) {
	var rows []GroupStatRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Feedback{}).
		Select(column + " AS group_key, COUNT(*) AS count, AVG(percent) AS avg_percent").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) SubjectBreakdown(ctx context.Context) ([]GroupStatRow, error) {
	return r.groupBy(ctx, "subject")
}

func (r *dashboardRepository) RoleBreakdown(ctx context.Context) ([]GroupStatRow, error) {
	return r.groupBy(ctx, "user_role")
}
