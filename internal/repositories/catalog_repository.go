package repositories

import (
	"context"

	"gorm.io/gorm"

	"expofeedback/internal/models/db_models"
)

type CatalogRepository interface {
	ListProjects(ctx context.Context, activeOnly bool) ([]db_models.Project, error)
	CreateProject(ctx context.Context, project *db_models.Project) error
	DeleteProject(ctx context.Context, id string) (int64, error)

	ListSubjects(ctx context.Context, activeOnly bool) ([]db_models.Subject, error)
	CreateSubject(ctx context.Context, subject *db_models.Subject) error
	DeleteSubject(ctx context.Context, id string) (int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func activeScope(activeOnly bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			return db.Where("active = ?", true)
		}
		return db
	}
}

func (r *catalogRepository) ListProjects(ctx context.Context, activeOnly bool) ([]db_models.Project, error) {
	var projects []db_models.Project
	err := r.db.WithContext(ctx).Scopes(activeScope(activeOnly)).Order("name ASC").Find(&projects).Error
	return projects, err
}

func (r *catalogRepository) CreateProject(ctx context.Context, project *db_models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Catalog rows are removed for good so a deleted name can be created again.
func (r *catalogRepository) DeleteProject(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&db_models.Project{})
	return res.RowsAffected, res.Error
}

func (r *catalogRepository) ListSubjects(ctx context.Context, activeOnly bool) ([]db_models.Subject, error) {
	var subjects []db_models.Subject
	err := r.db.WithContext(ctx).Scopes(activeScope(activeOnly)).Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *catalogRepository) CreateSubject(ctx context.Context, subject *db_models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *catalogRepository) DeleteSubject(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&db_models.Subject{})
	return res.RowsAffected, res.Error
}
