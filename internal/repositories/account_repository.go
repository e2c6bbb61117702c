package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expofeedback/internal/models/db_models"
)

type AdminRepository interface {
	Insert(ctx context.Context, admin *db_models.Admin) error
	FindByUsername(ctx context.Context, username string) (*db_models.Admin, error)
	FindByID(ctx context.Context, id string) (*db_models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (a *adminRepository) Insert(ctx context.Context, admin *db_models.Admin) error {
	return a.db.WithContext(ctx).Create(admin).Error
}

func (a *adminRepository) FindByUsername(ctx context.Context, username string) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := a.db.WithContext(ctx).First(&admin, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (a *adminRepository) FindByID(ctx context.Context, id string) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := a.db.WithContext(ctx).First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}
