package services

import (
	"context"
	"fmt"
	"strings"

	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/utils"
)

type CatalogServiceInterface interface {
	ListProjects(ctx context.Context, activeOnly bool) ([]db_models.Project, error)
	CreateProject(ctx context.Context, name, description string) (*db_models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListSubjects(ctx context.Context, activeOnly bool) ([]db_models.Subject, error)
	CreateSubject(ctx context.Context, name string) (*db_models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
}

type CatalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) CatalogServiceInterface {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProjects(ctx context.Context, activeOnly bool) ([]db_models.Project, error) {
	projects, err := s.repo.ListProjects(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", utils.ErrDatabaseError, err)
	}
	return projects, nil
}

func (s *CatalogService) CreateProject(ctx context.Context, name, description string) (*db_models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewFieldError("name", "Name is required")
	}
	p := &db_models.Project{Name: name, Description: strings.TrimSpace(description), Active: true}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: create project: %v", utils.ErrDatabaseError, err)
	}
	return p, nil
}

func (s *CatalogService) DeleteProject(ctx context.Context, id string) error {
	n, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete project: %v", utils.ErrDatabaseError, err)
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *CatalogService) ListSubjects(ctx context.Context, activeOnly bool) ([]db_models.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: list subjects: %v", utils.ErrDatabaseError, err)
	}
	return subjects, nil
}

func (s *CatalogService) CreateSubject(ctx context.Context, name string) (*db_models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewFieldError("name", "Name is required")
	}
	sub := &db_models.Subject{Name: name, Active: true}
	if err := s.repo.CreateSubject(ctx, sub); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: create subject: %v", utils.ErrDatabaseError, err)
	}
	return sub, nil
}

func (s *CatalogService) DeleteSubject(ctx context.Context, id string) error {
	n, err := s.repo.DeleteSubject(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete subject: %v", utils.ErrDatabaseError, err)
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
