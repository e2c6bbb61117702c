package services

import (
	"context"
	"fmt"

	"expofeedback/internal/models/db_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

// SettingsServiceInterface exposes the protection toggle. Every read goes to storage so an
// admin change applies to the very next request.
type SettingsServiceInterface interface {
	IsProtectionEnabled(ctx context.Context) (bool, error)
	SetProtectionEnabled(ctx context.Context, enabled bool) error
}

type SettingsService struct {
	repo repositories.SettingsRepository
	log  logger.Interface
}

func NewSettingsService(repo repositories.SettingsRepository, log logger.Interface) SettingsServiceInterface {
	return &SettingsService{repo: repo, log: log.Named("settings")}
}

func (s *SettingsService) IsProtectionEnabled(ctx context.Context) (bool, error) {
	enabled, found, err := s.repo.GetBool(ctx, db_models.SettingFeedbackProtectionEnabled)
	if err != nil {
		return false, fmt.Errorf("%w: read protection setting: %v", utils.ErrDatabaseError, err)
	}
	if !found {
		return false, nil
	}
	return enabled, nil
}

func (s *SettingsService) SetProtectionEnabled(ctx context.Context, enabled bool) error {
	if err := s.repo.SetBool(ctx, db_models.SettingFeedbackProtectionEnabled, enabled); err != nil {
		return fmt.Errorf("%w: write protection setting: %v", utils.ErrDatabaseError, err)
	}
	s.log.Info("feedback protection toggled", "enabled", enabled)
	return nil
}
