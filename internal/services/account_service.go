package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expofeedback/internal/models/db_models"
	resp "expofeedback/internal/models/response_models"
	"expofeedback/internal/repositories"
	"expofeedback/pkg/logger"
	"expofeedback/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, username, password string) (*resp.LoginResponse, error)
	CreateAdmin(ctx context.Context, username, password string) (*db_models.Admin, error)
}

type AccountService struct {
	adminRepo  repositories.AdminRepository
	tokens     *utils.TokenManager
	tokenTTL   time.Duration
	bcryptCost int
	log        logger.Interface
}

func NewAccountService(
	adminRepo repositories.AdminRepository,
	tokens *utils.TokenManager,
	tokenTTL time.Duration,
	bcryptCost int,
	log logger.Interface,
) AccountServiceInterface {
	return &AccountService{
		adminRepo:  adminRepo,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        log.Named("account"),
	}
}

func (a *AccountService) Login(ctx context.Context, username, password string) (*resp.LoginResponse, error) {
	startTime := time.Now()

	admin, err := a.adminRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%w: find admin: %v", utils.ErrDatabaseError, err)
	}
	if admin == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(admin.PasswordHash, password); err != nil {
		a.log.Warn("admin login rejected", "username", admin.Username)
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	a.log.Info("admin logged in", "username", admin.Username, "took", time.Since(startTime))
	return &resp.LoginResponse{
		Token:     token,
		ExpiresIn: int64(a.tokenTTL.Seconds()),
		Username:  admin.Username,
	}, nil
}

func (a *AccountService) CreateAdmin(ctx context.Context, username, password string) (*db_models.Admin, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, utils.NewFieldError("username", "Username must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, utils.NewFieldError("password", "Password must be at least 6 characters")
	}

	existing, err := a.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: find admin: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrAlreadyExists
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &db_models.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := a.adminRepo.Insert(ctx, admin); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: insert admin: %v", utils.ErrDatabaseError, err)
	}
	return admin, nil
}
